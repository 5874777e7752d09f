package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/exertrack/backend/api/v1/models"
)

// LogFilter narrows an exercise log query. Nil fields mean "no bound".
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

func CreateExercise(ctx context.Context, db *sql.DB, exercise *models.Exercise) error {
	// no user existence check here - callers resolve the user first. The
	// store will happily keep an exercise against any id it is handed.
	insertQuery := `
		INSERT INTO exercises (user_id, description, duration, date)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	err := db.QueryRowContext(
		ctx,
		insertQuery,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date.Unix(),
	).Scan(&exercise.ID)
	if err != nil {
		fmt.Printf("Database error during exercise creation: %v\n", err)
		return fmt.Errorf("%w: failed to create exercise", ErrDatabaseError)
	}

	return nil
}

func GetExercises(ctx context.Context, db *sql.DB, userID int64, filter LogFilter) ([]models.Exercise, error) {
	dataQuery := `
		SELECT id, user_id, description, duration, date
		FROM exercises
		WHERE user_id = ?`
	args := []interface{}{userID}

	// both bounds are inclusive; either may be absent
	if filter.From != nil {
		dataQuery += " AND date >= ?"
		args = append(args, filter.From.Unix())
	}
	if filter.To != nil {
		dataQuery += " AND date <= ?"
		args = append(args, filter.To.Unix())
	}

	dataQuery += " ORDER BY date ASC, id ASC"

	if filter.Limit != nil && *filter.Limit >= 0 {
		dataQuery += " LIMIT ?"
		args = append(args, *filter.Limit)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		fmt.Printf("Database error getting exercises: %v\n", err)
		return nil, fmt.Errorf("%w: failed to get exercises", ErrDatabaseError)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var exercise models.Exercise
		var date int64
		err := rows.Scan(
			&exercise.ID,
			&exercise.UserID,
			&exercise.Description,
			&exercise.Duration,
			&date,
		)
		if err != nil {
			fmt.Printf("Database error scanning exercise row: %v\n", err)
			return nil, fmt.Errorf("%w: failed to scan exercise data", ErrDatabaseError)
		}

		exercise.Date = time.Unix(date, 0).UTC()
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		fmt.Printf("Database error iterating exercises: %v\n", err)
		return nil, fmt.Errorf("%w: failed to iterate exercises", ErrDatabaseError)
	}

	return exercises, nil
}
