package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/exertrack/backend/api/v1/database"
	"github.com/exertrack/backend/api/v1/models"
	"github.com/go-chi/chi/v5"
)

// UserHandler holds the database connection
type UserHandler struct {
	DB *sql.DB
}

// CreateUser handles user registration requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var newUser struct {
		Username string `json:"username"`
	}

	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		SendError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	newUser.Username = strings.TrimSpace(newUser.Username)
	if newUser.Username == "" {
		SendError(w, "Username is required", http.StatusBadRequest)
		return
	}

	userModel := models.User{
		Username: newUser.Username,
	}

	err := database.CreateUser(r.Context(), h.DB, &userModel)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameExists):
			SendError(w, "Username already exists", http.StatusConflict)
		case errors.Is(err, database.ErrDatabaseError):
			SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
		default:
			SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	response := struct {
		Username string `json:"username"`
	}{
		Username: userModel.Username,
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetUser retrieves a single user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := resolveUser(w, r, h.DB)
	if !ok {
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// GetUsers lists every registered user
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	users, err := database.GetUsers(r.Context(), h.DB)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDatabaseError):
			SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
		default:
			SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
}

// resolveUser looks up the user named by the {id} path parameter. A malformed
// id is reported the same way as an unknown one, so callers cannot tell the
// two apart.
func resolveUser(w http.ResponseWriter, r *http.Request, db *sql.DB) (models.User, bool) {
	var user models.User

	idStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || userID <= 0 {
		SendError(w, "User not found", http.StatusNotFound)
		return user, false
	}

	err = database.GetUser(r.Context(), db, userID, &user)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUserNotFound):
			SendError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, database.ErrDatabaseError):
			SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
		default:
			SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return user, false
	}

	return user, true
}
