package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	users, _, _ := newTestServices(t)

	last := "Doe"
	user, err := users.CreateUser(context.Background(), "Jane", &last, "jane@example.com", "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Jane", user.FirstName)
	require.NotNil(t, user.LastName)
	assert.Equal(t, "Doe", *user.LastName)
	assert.Empty(t, user.PasswordHash, "credentials must not leave the service")
	assert.Empty(t, user.Salt)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users, _, _ := newTestServices(t)
	mustCreateUser(t, users, "jane@example.com")

	_, err := users.CreateUser(context.Background(), "Janet", nil, "jane@example.com", "other-pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateUser(t *testing.T) {
	users, _, _ := newTestServices(t)
	created := mustCreateUser(t, users, "jane@example.com")

	user, err := users.AuthenticateUser(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = users.AuthenticateUser(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.AuthenticateUser(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must look like a bad password")
}

func TestGetUserByID(t *testing.T) {
	users, _, _ := newTestServices(t)
	created := mustCreateUser(t, users, "jane@example.com")

	user, err := users.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = users.GetUserByID(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
