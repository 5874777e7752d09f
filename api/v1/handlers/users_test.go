package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/exertrack/backend/api/v1/database"
	"github.com/exertrack/backend/api/v1/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the API routes the same way main does, backed by an
// in-memory store that lives for one test.
func newTestRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userHandler := &UserHandler{DB: db}
	exerciseHandler := &ExerciseHandler{DB: db}

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Post("/{id}/exercises", exerciseHandler.CreateExercise)
		r.Get("/{id}/logs", exerciseHandler.GetLog)
	})

	return r, db
}

func registerUser(t *testing.T, db *sql.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username}
	require.NoError(t, database.CreateUser(context.Background(), db, &user))

	return user
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func TestCreateUserReturnsRegistrationView(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, map[string]interface{}{"username": "alice"}, resp)
}

func TestCreateUserDuplicateConflict(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(r, http.MethodPost, "/api/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusConflict, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Username already exists", resp.Message)
}

func TestCreateUserMissingUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{`{}`, `{"username":"   "}`} {
		rr := doJSON(r, http.MethodPost, "/api/users", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestCreateUserInvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/users", `{"username"`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUsersListsEveryUser(t *testing.T) {
	r, db := newTestRouter(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")

	rr := doJSON(r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Equal(t, []models.User{alice, bob}, users)
}

func TestGetUsersEmptyIsAnEmptyList(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetUserByID(t *testing.T) {
	r, db := newTestRouter(t)
	alice := registerUser(t, db, "alice")

	rr := doJSON(r, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, alice, user)
}

func TestGetUserNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	// a malformed id is indistinguishable from an unknown one
	for _, target := range []string{"/api/users/42", "/api/users/not-an-id"} {
		rr := doJSON(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
	}
}
