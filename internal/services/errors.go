package services

import (
	"context"
	"errors"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors resolved to HTTP statuses at the route boundary.
var (
	ErrInvalidURL         = errors.New("invalid target URL")
	ErrInvalidCode        = errors.New("invalid short code")
	ErrCodeTaken          = errors.New("short code already taken")
	ErrCodeSpaceExhausted = errors.New("cannot allocate short code")
	ErrLinkNotFound       = errors.New("link not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dbTimeout bounds every storage call; expiry surfaces as a storage failure
// rather than a hung request.
const dbTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, dbTimeout)
}

// isUniqueViolation reports whether err is a storage-level uniqueness
// constraint failure, from the links.short_code or users.email constraints.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
