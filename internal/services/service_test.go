package services

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/aphex18/URL-SHORTENER/internal/database"
	"github.com/aphex18/URL-SHORTENER/internal/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.New("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestServices(t *testing.T) (*UserService, *LinkService, *EventService) {
	t.Helper()
	db := newTestDB(t)
	events := NewEventService(db, nil)
	return NewUserService(db, events), NewLinkService(db, events), events
}

func mustCreateUser(t *testing.T, users *UserService, email string) models.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), "Jane", nil, email, "hunter22")
	require.NoError(t, err)
	return user
}
