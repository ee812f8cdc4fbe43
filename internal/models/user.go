package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"firstname" db:"first_name"`
	LastName     *string   `json:"lastname,omitempty" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose this to the client
	Salt         string    `json:"-" db:"salt"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
