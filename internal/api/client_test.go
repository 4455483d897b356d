package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/config"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
	"taskdash/internal/logging"
	"taskdash/internal/repository/sqlite"
	"taskdash/internal/session"
)

const testUserID = "user-1"

// testToken is a JWT-shaped token whose payload carries the test user id.
// The signature is garbage; the client never verifies it.
func testToken(t *testing.T) string {
	t.Helper()

	payload, err := json.Marshal(map[string]string{
		"user_id": testUserID,
		"email":   "alice@example.com",
	})
	require.NoError(t, err)
	return "h." + base64.RawURLEncoding.EncodeToString(payload) + ".s"
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return session.NewStore(repo)
}

func newTestClient(t *testing.T, handler http.Handler) (Client, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.Server.BaseURL = server.URL
	cfg.Server.RequestTimeout = 2 * time.Second

	store := newTestStore(t)
	return New(cfg, store, logging.NewNop()), store
}

func signIn(t *testing.T, store *session.Store) {
	t.Helper()
	require.NoError(t, store.SetToken(context.Background(), testToken(t)))
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func sampleTask(id int64) *domain.Task {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Task{
		ID:        id,
		UserID:    testUserID,
		Title:     "Buy Milk",
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestClient_Login(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds["email"])
		assert.Equal(t, "secret-password", creds["password"])

		writeJSON(w, http.StatusOK, domain.AuthResponse{
			User:  domain.User{ID: testUserID, Email: "alice@example.com", Name: "Alice"},
			Token: "issued.token.value",
		})
	})

	client, store := newTestClient(t, r)

	auth, err := client.Login(context.Background(), "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "Alice", auth.User.Name)
	assert.Equal(t, "issued.token.value", auth.Token)

	// The token is persisted as a side effect
	token, ok := store.Token(context.Background())
	require.True(t, ok)
	assert.Equal(t, "issued.token.value", token)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
	})

	client, store := newTestClient(t, r)

	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))

	// No token persisted on failure
	_, ok := store.Token(context.Background())
	assert.False(t, ok)
}

func TestClient_Login_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(chi.NewRouter())
	server.Close() // Nothing is listening any more

	cfg := config.NewConfig()
	cfg.Server.BaseURL = server.URL
	client := New(cfg, newTestStore(t), logging.NewNop())

	_, err := client.Login(context.Background(), "alice@example.com", "pw")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNetwork))
	assert.Contains(t, errors.GetUserMessage(err), "backend server is running")
}

func TestClient_Signup(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/signup", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Alice", body["name"])

		writeJSON(w, http.StatusOK, domain.AuthResponse{
			User:  domain.User{ID: testUserID, Email: body["email"], Name: body["name"]},
			Token: "signup.token.value",
		})
	})

	client, store := newTestClient(t, r)

	auth, err := client.Signup(context.Background(), "alice@example.com", "secret-password", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "signup.token.value", auth.Token)

	token, ok := store.Token(context.Background())
	require.True(t, ok)
	assert.Equal(t, "signup.token.value", token)
}

func TestClient_Signup_ValidationError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/signup", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "email already registered"})
	})

	client, _ := newTestClient(t, r)

	_, err := client.Signup(context.Background(), "alice@example.com", "pw12345678", "Alice")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "email already registered")
}

func TestClient_ListTasks_SignedOutReturnsEmpty(t *testing.T) {
	called := false
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		called = true
	})

	client, _ := newTestClient(t, r)

	tasks, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.False(t, called, "no request should be sent when signed out")
}

func TestClient_ListTasks(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, testUserID, chi.URLParam(req, "userID"))
		writeJSON(w, http.StatusOK, []*domain.Task{sampleTask(1), sampleTask(2)})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	tasks, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
}

func TestClient_ListTasks_QueryParamsAndAuthHeader(t *testing.T) {
	var gotAuth, gotFilter, gotSort string
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotFilter = req.URL.Query().Get("status_filter")
		gotSort = req.URL.Query().Get("sort")
		writeJSON(w, http.StatusOK, []*domain.Task{})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.ListTasks(context.Background(), domain.StatusFilterPending, domain.SortByTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken(t), gotAuth)
	assert.Equal(t, "pending", gotFilter)
	assert.Equal(t, "title", gotSort)
}

func TestClient_ListTasks_AllFilterIsOmitted(t *testing.T) {
	var query string
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		query = req.URL.RawQuery
		writeJSON(w, http.StatusOK, []*domain.Task{})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.NoError(t, err)
	assert.NotContains(t, query, "status_filter")
	assert.Contains(t, query, "sort=created_at")
}

func TestClient_ListTasks_WrappedResponseShape(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tasks": []*domain.Task{sampleTask(7)},
		})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	tasks, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(7), tasks[0].ID)
}

func TestClient_ListTasks_Unauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))
}

func TestClient_CreateTask(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		var input domain.TaskCreate
		require.NoError(t, json.NewDecoder(req.Body).Decode(&input))
		assert.Equal(t, "Buy Milk", input.Title)

		created := sampleTask(3)
		created.Title = input.Title
		writeJSON(w, http.StatusCreated, created)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	task, err := client.CreateTask(context.Background(), domain.TaskCreate{Title: "Buy Milk"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), task.ID)
	assert.Equal(t, "Buy Milk", task.Title)
}

func TestClient_CreateTask_SignedOutGuard(t *testing.T) {
	client, _ := newTestClient(t, chi.NewRouter())

	_, err := client.CreateTask(context.Background(), domain.TaskCreate{Title: "Buy Milk"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))
}

func TestClient_CreateTask_ValidationDetail(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "title must not be empty"})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.CreateTask(context.Background(), domain.TaskCreate{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	assert.Contains(t, errors.GetUserMessage(err), "title must not be empty")
}

func TestClient_CreateTask_ValidationWithoutDetail(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.CreateTask(context.Background(), domain.TaskCreate{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestClient_GetTask_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "task not found"})
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.GetTask(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestClient_UpdateTask(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/{userID}/tasks/{id}", func(w http.ResponseWriter, req *http.Request) {
		var input domain.TaskUpdate
		require.NoError(t, json.NewDecoder(req.Body).Decode(&input))
		require.NotNil(t, input.Title)
		assert.Equal(t, "Buy Bread", *input.Title)
		assert.Nil(t, input.Completed, "unset fields must be omitted")

		updated := sampleTask(4)
		updated.Title = *input.Title
		writeJSON(w, http.StatusOK, updated)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	title := "Buy Bread"
	task, err := client.UpdateTask(context.Background(), 4, domain.TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Buy Bread", task.Title)
}

func TestClient_DeleteTask(t *testing.T) {
	deleted := false
	r := chi.NewRouter()
	r.Delete("/api/{userID}/tasks/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "5", chi.URLParam(req, "id"))
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	require.NoError(t, client.DeleteTask(context.Background(), 5))
	assert.True(t, deleted)
}

func TestClient_ToggleTask(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/api/{userID}/tasks/{id}/complete", func(w http.ResponseWriter, req *http.Request) {
		toggled := sampleTask(6)
		toggled.Completed = true
		writeJSON(w, http.StatusOK, toggled)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	task, err := client.ToggleTask(context.Background(), 6)
	require.NoError(t, err)
	assert.True(t, task.Completed, "client must take the backend's value, not compute its own")
}

func TestClient_ServerError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{userID}/tasks", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, store := newTestClient(t, r)
	signIn(t, store)

	_, err := client.ListTasks(context.Background(), domain.StatusFilterAll, domain.SortByCreatedAt)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeServer))

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	code, _ := appErr.GetContext("status_code")
	assert.Equal(t, http.StatusInternalServerError, code)
}
