package taskview

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taskdash/internal/api"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
)

// mockClient implements the api.Client interface for testing. Each
// operation can be forced to fail to exercise the engine's no-op-on-
// failure guarantees.
type mockClient struct {
	tasks  map[int64]*domain.Task
	nextID int64

	failList   error
	failCreate error
	failUpdate error
	failDelete error
	failToggle error

	listCalls int
}

// newMockClient creates a new mock api.Client instance
func newMockClient() *mockClient {
	return &mockClient{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

func (m *mockClient) seed(tasks ...*domain.Task) {
	for _, task := range tasks {
		m.tasks[task.ID] = task
		if task.ID >= m.nextID {
			m.nextID = task.ID + 1
		}
	}
}

func (m *mockClient) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{
		User:  domain.User{ID: "user-1", Email: email},
		Token: "mock.token.value",
	}, nil
}

func (m *mockClient) Signup(ctx context.Context, email, password, name string) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{
		User:  domain.User{ID: "user-1", Email: email, Name: name},
		Token: "mock.token.value",
	}, nil
}

func (m *mockClient) ListTasks(ctx context.Context, filter domain.StatusFilter, sortKey domain.SortKey) ([]*domain.Task, error) {
	m.listCalls++
	if m.failList != nil {
		return nil, m.failList
	}

	result := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		if filter == domain.StatusFilterCompleted && !task.Completed {
			continue
		}
		if filter == domain.StatusFilterPending && task.Completed {
			continue
		}
		result = append(result, task)
	}
	// Deterministic order for assertions
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockClient) CreateTask(ctx context.Context, input domain.TaskCreate) (*domain.Task, error) {
	if m.failCreate != nil {
		return nil, m.failCreate
	}

	now := time.Now()
	task := &domain.Task{
		ID:          m.nextID,
		UserID:      "user-1",
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.tasks[task.ID] = task
	m.nextID++
	return task, nil
}

func (m *mockClient) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, exists := m.tasks[id]
	if !exists {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return task, nil
}

func (m *mockClient) UpdateTask(ctx context.Context, id int64, input domain.TaskUpdate) (*domain.Task, error) {
	if m.failUpdate != nil {
		return nil, m.failUpdate
	}

	task, exists := m.tasks[id]
	if !exists {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	updated := *task
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Completed != nil {
		updated.Completed = *input.Completed
	}
	if input.Priority != nil {
		updated.Priority = *input.Priority
	}
	if input.DueDate != nil {
		updated.DueDate = input.DueDate
	}
	updated.UpdatedAt = time.Now()
	m.tasks[id] = &updated
	return &updated, nil
}

func (m *mockClient) DeleteTask(ctx context.Context, id int64) error {
	if m.failDelete != nil {
		return m.failDelete
	}

	if _, exists := m.tasks[id]; !exists {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockClient) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.failToggle != nil {
		return nil, m.failToggle
	}

	task, exists := m.tasks[id]
	if !exists {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	toggled := *task
	toggled.Completed = !task.Completed
	toggled.UpdatedAt = time.Now()
	m.tasks[id] = &toggled
	return &toggled, nil
}

// Compile-time check that the mock satisfies the interface
var _ api.Client = (*mockClient)(nil)
