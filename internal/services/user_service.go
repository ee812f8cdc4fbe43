package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aphex18/URL-SHORTENER/internal/auth"
	"github.com/aphex18/URL-SHORTENER/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, firstName string, lastName *string, email, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db     *sqlx.DB
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sqlx.DB, events EventServiceProvider) *UserService {
	return &UserService{db: db, events: events}
}

// CreateUser registers a new account, hashing the password under a fresh
// salt. A duplicate email surfaces as ErrEmailTaken.
func (s *UserService) CreateUser(ctx context.Context, firstName string, lastName *string, email, password string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, salt) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Salt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	s.events.Record(ctx, "user.signup", "info", "Account created for "+user.Email, &user.ID)

	user.PasswordHash = ""
	user.Salt = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, first_name, last_name, email, password_hash, salt, created_at FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("query user by email: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.Salt) {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	user.Salt = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without credentials.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, first_name, last_name, email, created_at FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}
