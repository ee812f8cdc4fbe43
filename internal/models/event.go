package models

import "time"

// Event represents a loggable action in the system, shown on the owner
// dashboard.
type Event struct {
	ID        string    `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`   // e.g. "link.create", "user.signup"
	Level     string    `json:"level" db:"level"` // e.g. "info", "warn"
	Message   string    `json:"message" db:"message"`
	UserID    *string   `json:"userId,omitempty" db:"user_id"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
