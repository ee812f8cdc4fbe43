package models

import "time"

// Link represents a short code mapped to a target URL. Short codes live in a
// single global namespace; ownership only scopes listing and deletion,
// resolution is public.
type Link struct {
	ID        string    `json:"id" db:"id"`
	ShortCode string    `json:"shortCode" db:"short_code"`
	TargetURL string    `json:"targetUrl" db:"target_url"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
