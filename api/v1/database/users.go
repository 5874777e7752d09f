package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/exertrack/backend/api/v1/models"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrUserNotFound   = errors.New("user does not exist")
	ErrDatabaseError  = errors.New("database error occurred")
)

func CreateUser(ctx context.Context, db *sql.DB, user *models.User) error {
	// uniqueness is enforced by the UNIQUE constraint on username, so the
	// insert itself fails atomically when the name is taken (no check-then-act)
	insertQuery := `
		INSERT INTO users (username)
		VALUES (?)
		RETURNING id`

	err := db.QueryRowContext(ctx, insertQuery, user.Username).Scan(&user.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: username '%s' is already taken", ErrUsernameExists, user.Username)
		}
		fmt.Printf("Database error during user creation: %v\n", err)
		return fmt.Errorf("%w: failed to create user", ErrDatabaseError)
	}

	return nil
}

func GetUser(ctx context.Context, db *sql.DB, userID int64, user *models.User) error {
	getQuery := `
		SELECT id, username
		FROM users
		WHERE id = ?`

	err := db.QueryRowContext(ctx, getQuery, userID).Scan(
		&user.ID,
		&user.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user with ID %d not found: %w", userID, ErrUserNotFound)
		}

		fmt.Printf("Database error retrieving user ID %d: %v\n", userID, err)
		return fmt.Errorf("%w: failed to retrieve user", ErrDatabaseError)
	}

	return nil
}

func GetUsers(ctx context.Context, db *sql.DB) ([]models.User, error) {
	dataQuery := `
		SELECT id, username
		FROM users
		ORDER BY id`

	rows, err := db.QueryContext(ctx, dataQuery)
	if err != nil {
		fmt.Printf("Database error getting users: %v\n", err)
		return nil, fmt.Errorf("%w: failed to get users", ErrDatabaseError)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			fmt.Printf("Database error scanning user row: %v\n", err)
			return nil, fmt.Errorf("%w: failed to scan user data", ErrDatabaseError)
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		fmt.Printf("Database error iterating users: %v\n", err)
		return nil, fmt.Errorf("%w: failed to iterate users", ErrDatabaseError)
	}

	return users, nil
}
