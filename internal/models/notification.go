package models

import "time"

// Notification is an inbox entry addressed to one user.
type Notification struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	ForecastID *string   `db:"forecast_id" json:"forecast_id,omitempty"`
	Message    string    `db:"message" json:"message"`
	Read       bool      `db:"read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
