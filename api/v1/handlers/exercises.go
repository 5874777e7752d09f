package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/exertrack/backend/api/v1/database"
	"github.com/exertrack/backend/api/v1/models"
)

// dateLayout is the external calendar-date representation accepted on input.
const dateLayout = "2006-01-02"

// displayLayout renders dates in responses, e.g. "Thu Jan 05 2023"
const displayLayout = "Mon Jan 02 2006"

// ExerciseHandler holds the database connection
type ExerciseHandler struct {
	DB *sql.DB
}

// ExerciseResponse is the view returned after recording an exercise. The id
// and username identify the owning user, not the exercise.
type ExerciseResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// LogEntry is a single record inside a log view
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the assembled, ordered log view for one user
type LogResponse struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// CreateExercise records an exercise against an existing user. The user is
// resolved before anything is stored, so a missing user never leaves an
// orphan record behind.
func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := resolveUser(w, r, h.DB)
	if !ok {
		return
	}

	var newExercise struct {
		Description string `json:"description"`
		Duration    *int   `json:"duration"`
		Date        string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&newExercise); err != nil {
		SendError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	newExercise.Description = strings.TrimSpace(newExercise.Description)
	if newExercise.Description == "" {
		SendError(w, "Description is required", http.StatusBadRequest)
		return
	}

	if newExercise.Duration == nil {
		SendError(w, "Duration is required", http.StatusBadRequest)
		return
	}

	date := time.Now().UTC()
	if newExercise.Date != "" {
		parsed, err := time.Parse(dateLayout, newExercise.Date)
		if err != nil {
			SendError(w, "Date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	exerciseModel := models.Exercise{
		UserID:      user.ID,
		Description: newExercise.Description,
		Duration:    *newExercise.Duration,
		Date:        date,
	}

	err := database.CreateExercise(r.Context(), h.DB, &exerciseModel)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDatabaseError):
			SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
		default:
			SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	response := ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Date:        exerciseModel.Date.Format(displayLayout),
		Duration:    exerciseModel.Duration,
		Description: exerciseModel.Description,
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetLog returns a user's exercises filtered by an optional date range and
// truncated by an optional limit, ascending by date.
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := resolveUser(w, r, h.DB)
	if !ok {
		return
	}

	filter := parseLogFilter(r)

	exercises, err := database.GetExercises(r.Context(), h.DB, user.ID, filter)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDatabaseError):
			SendError(w, "Unable to process request at this time", http.StatusInternalServerError)
		default:
			SendError(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
		return
	}

	log := make([]LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		log = append(log, LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.Format(displayLayout),
		})
	}

	response := LogResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(log),
		Log:      log,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseLogFilter reads from/to/limit query parameters. Unparsable values are
// dropped rather than rejected, matching the permissive external contract.
func parseLogFilter(r *http.Request) database.LogFilter {
	var filter database.LogFilter

	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			filter.From = &parsed
		}
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			filter.To = &parsed
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Limit = &parsed
		}
	}

	return filter
}
