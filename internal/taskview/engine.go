package taskview

import (
	"context"

	"go.uber.org/zap"

	"taskdash/internal/api"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
)

// Engine owns the authoritative in-memory collection of the signed-in
// user's tasks and the projection parameters (status filter, search
// term, sort key). All mutations go through the backend: the collection
// only changes in response to a confirmed server result, so a failed
// call is always a no-op on state.
//
// The engine follows the client's single-goroutine event model and does
// no locking. Mutations are not serialized per task either: if two
// operations on the same id race, the last response to arrive wins.
type Engine struct {
	client api.Client
	logger *zap.Logger

	tasks        []*domain.Task
	statusFilter domain.StatusFilter
	searchTerm   string
	sortKey      domain.SortKey
}

// NewEngine creates an engine with an empty collection and default
// projection parameters.
func NewEngine(client api.Client, logger *zap.Logger) *Engine {
	return &Engine{
		client:       client,
		logger:       logger,
		tasks:        []*domain.Task{},
		statusFilter: domain.StatusFilterAll,
		sortKey:      domain.SortByCreatedAt,
	}
}

// NewEngineWithDefaults creates an engine whose initial projection
// parameters come from persisted preferences. Invalid values fall back
// to the standard defaults.
func NewEngineWithDefaults(client api.Client, logger *zap.Logger, filter domain.StatusFilter, key domain.SortKey) *Engine {
	engine := NewEngine(client, logger)
	if filter.IsValid() {
		engine.statusFilter = filter
	}
	if key.IsValid() {
		engine.sortKey = key
	}
	return engine
}

// Refresh replaces the authoritative collection wholesale with the
// backend's result. On failure the previous collection is left
// untouched; it is never partially overwritten.
func (e *Engine) Refresh(ctx context.Context) error {
	tasks, err := e.client.ListTasks(ctx, e.statusFilter, e.sortKey)
	if err != nil {
		return err
	}

	e.tasks = tasks
	e.logger.Debug("collection refreshed", zap.Int("count", len(tasks)))
	return nil
}

// Create asks the backend to create a task and appends the confirmed
// result to the collection. Nothing is inserted before the backend ack.
func (e *Engine) Create(ctx context.Context, input domain.TaskCreate) (*domain.Task, error) {
	created, err := e.client.CreateTask(ctx, input)
	if err != nil {
		return nil, err
	}

	e.tasks = append(e.tasks, created)
	return created, nil
}

// Update sends a partial update and replaces the matching task in place
// with the backend's returned object. An unmatched id leaves the
// collection unchanged.
func (e *Engine) Update(ctx context.Context, id int64, input domain.TaskUpdate) (*domain.Task, error) {
	updated, err := e.client.UpdateTask(ctx, id, input)
	if err != nil {
		return nil, err
	}

	e.replace(updated)
	return updated, nil
}

// Toggle asks the backend to flip the task's completion flag and adopts
// the returned object as the new truth for that id. Taking the server's
// object rather than computing the flip locally guards against
// optimistic-update drift.
func (e *Engine) Toggle(ctx context.Context, id int64) (*domain.Task, error) {
	toggled, err := e.client.ToggleTask(ctx, id)
	if err != nil {
		return nil, err
	}

	e.replace(toggled)
	return toggled, nil
}

// Remove deletes a task on the backend and, once confirmed, removes the
// matching task from the collection. All other tasks are untouched.
func (e *Engine) Remove(ctx context.Context, id int64) error {
	if err := e.client.DeleteTask(ctx, id); err != nil {
		return err
	}

	kept := e.tasks[:0]
	for _, task := range e.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	e.tasks = kept
	return nil
}

// SetStatusFilter changes the status filter and refreshes from the
// backend: the server is the source of truth for filtered order. On
// refresh failure the filter change sticks but the collection is
// untouched.
func (e *Engine) SetStatusFilter(ctx context.Context, filter domain.StatusFilter) error {
	if !filter.IsValid() {
		return errors.NewValidationError("invalid status filter: "+string(filter), nil)
	}

	e.statusFilter = filter
	return e.Refresh(ctx)
}

// SetSortKey changes the sort key and refreshes from the backend.
func (e *Engine) SetSortKey(ctx context.Context, key domain.SortKey) error {
	if !key.IsValid() {
		return errors.NewValidationError("invalid sort key: "+string(key), nil)
	}

	e.sortKey = key
	return e.Refresh(ctx)
}

// SetSearchTerm changes the search term. Search is purely local, so no
// backend call is made; only the derived projection changes.
func (e *Engine) SetSearchTerm(term string) {
	e.searchTerm = term
}

// Projection derives the filtered, searched, sorted view handed to the
// presentation layer. It never mutates the authoritative collection.
func (e *Engine) Projection() []*domain.Task {
	return Derive(e.tasks, e.statusFilter, e.searchTerm, e.sortKey)
}

// Tasks returns a copy of the authoritative collection.
func (e *Engine) Tasks() []*domain.Task {
	tasks := make([]*domain.Task, len(e.tasks))
	copy(tasks, e.tasks)
	return tasks
}

// StatusFilter returns the current status filter.
func (e *Engine) StatusFilter() domain.StatusFilter {
	return e.statusFilter
}

// SortKey returns the current sort key.
func (e *Engine) SortKey() domain.SortKey {
	return e.sortKey
}

// SearchTerm returns the current search term.
func (e *Engine) SearchTerm() string {
	return e.searchTerm
}

// replace swaps the task with a matching id for the backend's returned
// object. Unmatched ids are a no-op; they only occur when a stale
// response races a delete.
func (e *Engine) replace(updated *domain.Task) {
	for i, task := range e.tasks {
		if task.ID == updated.ID {
			e.tasks[i] = updated
			return
		}
	}
}
