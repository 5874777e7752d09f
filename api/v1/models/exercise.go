package models

import "time"

type Exercise struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // minutes
	Date        time.Time `json:"date"`
}
