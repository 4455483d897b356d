package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"taskdash/internal/config"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
	"taskdash/internal/session"
)

// Client defines the interface for all backend operations. Every call
// is a single attempt with no retry; failures are reported as typed
// application errors.
type Client interface {
	// Auth operations
	Login(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	Signup(ctx context.Context, email, password, name string) (*domain.AuthResponse, error)

	// Task operations
	ListTasks(ctx context.Context, filter domain.StatusFilter, sort domain.SortKey) ([]*domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskCreate) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleTask(ctx context.Context, id int64) (*domain.Task, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	session *session.Store
	logger  *zap.Logger
}

// New creates a new API client using the configured base URL and
// per-request timeout. The session store provides the bearer token.
func New(cfg *config.Config, store *session.Store, logger *zap.Logger) Client {
	return &httpClient{
		baseURL: strings.TrimRight(cfg.Server.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Server.RequestTimeout},
		session: store,
		logger:  logger,
	}
}

// Login authenticates with the backend and persists the returned token
// as a side effect.
func (c *httpClient) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var auth domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &auth, requestOpts{operation: "login"}); err != nil {
		return nil, err
	}

	if err := c.session.SetToken(ctx, auth.Token); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Signup registers a new account and persists the returned token as a
// side effect.
func (c *httpClient) Signup(ctx context.Context, email, password, name string) (*domain.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password, "name": name}

	var auth domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &auth, requestOpts{operation: "signup"}); err != nil {
		return nil, err
	}

	if err := c.session.SetToken(ctx, auth.Token); err != nil {
		return nil, err
	}
	return &auth, nil
}

// ListTasks fetches the signed-in user's tasks with the given server-side
// filter and sort. When no user id is resolvable it returns an empty
// list rather than an error: signed out means nothing to show.
func (c *httpClient) ListTasks(ctx context.Context, filter domain.StatusFilter, sort domain.SortKey) ([]*domain.Task, error) {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return []*domain.Task{}, nil
	}

	path := fmt.Sprintf("/api/%s/tasks", url.PathEscape(userID))
	params := url.Values{}
	if filter != "" && filter != domain.StatusFilterAll {
		// Backend expects 'status_filter', not 'status'
		params.Set("status_filter", string(filter))
	}
	if sort != "" {
		params.Set("sort", string(sort))
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw, requestOpts{operation: "list tasks"}); err != nil {
		return nil, err
	}
	return decodeTaskList(raw)
}

// CreateTask creates a task for the signed-in user.
func (c *httpClient) CreateTask(ctx context.Context, input domain.TaskCreate) (*domain.Task, error) {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return nil, errors.NewUnauthenticatedError("create task")
	}

	path := fmt.Sprintf("/api/%s/tasks", url.PathEscape(userID))

	var task domain.Task
	if err := c.do(ctx, http.MethodPost, path, input, &task, requestOpts{operation: "create task"}); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask fetches a single task by id.
func (c *httpClient) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return nil, errors.NewUnauthenticatedError("get task")
	}

	path := fmt.Sprintf("/api/%s/tasks/%d", url.PathEscape(userID), id)

	var task domain.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &task, requestOpts{operation: "get task", taskID: id}); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends a partial update and returns the backend's view of
// the task.
func (c *httpClient) UpdateTask(ctx context.Context, id int64, input domain.TaskUpdate) (*domain.Task, error) {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return nil, errors.NewUnauthenticatedError("update task")
	}

	path := fmt.Sprintf("/api/%s/tasks/%d", url.PathEscape(userID), id)

	var task domain.Task
	if err := c.do(ctx, http.MethodPut, path, input, &task, requestOpts{operation: "update task", taskID: id}); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task by id.
func (c *httpClient) DeleteTask(ctx context.Context, id int64) error {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return errors.NewUnauthenticatedError("delete task")
	}

	path := fmt.Sprintf("/api/%s/tasks/%d", url.PathEscape(userID), id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, requestOpts{operation: "delete task", taskID: id})
}

// ToggleTask asks the backend to flip the task's completion flag and
// returns the backend's resulting task. The client never computes the
// new value itself.
func (c *httpClient) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	userID, ok := c.session.CurrentUserID(ctx)
	if !ok {
		return nil, errors.NewUnauthenticatedError("toggle task")
	}

	path := fmt.Sprintf("/api/%s/tasks/%d/complete", url.PathEscape(userID), id)

	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, path, nil, &task, requestOpts{operation: "toggle task", taskID: id}); err != nil {
		return nil, err
	}
	return &task, nil
}

// requestOpts carries per-request error mapping context. A non-zero
// taskID marks a task operation so a 404 maps to a task not found error.
type requestOpts struct {
	operation string
	taskID    int64
}

// do performs a single JSON request against the backend and decodes a
// successful response into out (when out is non-nil). The bearer token
// is attached when present; requests without a token are still sent and
// surface as unauthorized when the backend rejects them.
func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}, opts requestOpts) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypeValidation, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewNetworkError(opts.operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("path", path), zap.Error(err))
		return errors.NewNetworkError(opts.operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp, opts)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewServerError(opts.operation, resp.StatusCode).
			WithContext("decode_error", err.Error())
	}
	return nil
}

// errorFromResponse maps a non-2xx response to the error taxonomy.
func (c *httpClient) errorFromResponse(resp *http.Response, opts requestOpts) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.NewUnauthorizedError(opts.operation)
	case http.StatusNotFound:
		if opts.taskID != 0 {
			return errors.NewNotFoundError("task", fmt.Sprintf("%d", opts.taskID))
		}
		return errors.NewServerError(opts.operation, resp.StatusCode)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.NewValidationError(detailMessage(resp.Body, opts.operation), nil)
	default:
		return errors.NewServerError(opts.operation, resp.StatusCode)
	}
}

// detailMessage extracts the optional {detail} field servers attach to
// rejected requests, falling back to a generic message.
func detailMessage(body io.Reader, operation string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fmt.Sprintf("invalid input for %s", operation)
}

// decodeTaskList accepts both response shapes the backend is known to
// produce: a bare JSON array, or an object with a tasks property.
func decodeTaskList(raw json.RawMessage) ([]*domain.Task, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []*domain.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, errors.NewServerError("list tasks", http.StatusOK).
				WithContext("decode_error", err.Error())
		}
		if tasks == nil {
			tasks = []*domain.Task{}
		}
		return tasks, nil
	}

	var wrapper struct {
		Tasks []*domain.Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, errors.NewServerError("list tasks", http.StatusOK).
			WithContext("decode_error", err.Error())
	}
	if wrapper.Tasks == nil {
		wrapper.Tasks = []*domain.Task{}
	}
	return wrapper.Tasks, nil
}
