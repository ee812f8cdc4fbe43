package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/aphex18/URL-SHORTENER/internal/models"
	"github.com/aphex18/URL-SHORTENER/internal/shortcode"
)

// generateRetries bounds how often a fresh random code is tried when an
// insert hits the short_code uniqueness constraint.
const generateRetries = 5

// LinkServiceProvider defines the interface for short-link services.
type LinkServiceProvider interface {
	Shorten(ctx context.Context, userID, targetURL, customCode string) (models.Link, error)
	Resolve(ctx context.Context, code string) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Link, error)
	Delete(ctx context.Context, userID, linkID string) error
}

// LinkService provides business logic for short-link assignment, resolution
// and ownership-scoped management.
type LinkService struct {
	db     *sqlx.DB
	events EventServiceProvider

	// generate produces candidate short codes. Swappable in tests to force
	// collisions.
	generate func() (string, error)
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *sqlx.DB, events EventServiceProvider) *LinkService {
	return &LinkService{db: db, events: events, generate: shortcode.Generate}
}

// Shorten persists a new link owned by userID. An empty customCode means a
// 6-character code is generated; collisions with concurrent inserts are
// retried with a fresh code. A caller-supplied duplicate is ErrCodeTaken, a
// distinct condition from validation failure.
func (s *LinkService) Shorten(ctx context.Context, userID, targetURL, customCode string) (models.Link, error) {
	if !validTargetURL(targetURL) {
		return models.Link{}, ErrInvalidURL
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if customCode != "" {
		if !shortcode.Valid(customCode) {
			return models.Link{}, ErrInvalidCode
		}
		link, err := s.insert(ctx, userID, targetURL, customCode)
		if err != nil {
			if isUniqueViolation(err) {
				return models.Link{}, ErrCodeTaken
			}
			return models.Link{}, err
		}
		s.recordCreated(ctx, link)
		return link, nil
	}

	for attempt := 0; attempt < generateRetries; attempt++ {
		code, err := s.generate()
		if err != nil {
			return models.Link{}, err
		}
		link, err := s.insert(ctx, userID, targetURL, code)
		if err == nil {
			s.recordCreated(ctx, link)
			return link, nil
		}
		if !isUniqueViolation(err) {
			return models.Link{}, err
		}
		log.Warn().Str("code", code).Int("attempt", attempt+1).Msg("generated short code collided, retrying")
	}
	return models.Link{}, ErrCodeSpaceExhausted
}

func (s *LinkService) insert(ctx context.Context, userID, targetURL, code string) (models.Link, error) {
	link := models.Link{
		ID:        uuid.New().String(),
		ShortCode: code,
		TargetURL: targetURL,
		UserID:    userID,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO links (id, short_code, target_url, user_id) VALUES (?, ?, ?, ?)`,
		link.ID, link.ShortCode, link.TargetURL, link.UserID)
	if err != nil {
		return models.Link{}, err
	}
	return link, nil
}

// Resolve maps a short code to its target URL. Resolution is public and has
// no side effects on the link row.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var target string
	err := s.db.GetContext(ctx, &target, `SELECT target_url FROM links WHERE short_code = ?`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrLinkNotFound
		}
		return "", fmt.Errorf("query link by code: %w", err)
	}
	return target, nil
}

// ListByUser returns every link owned by userID, in storage order.
func (s *LinkService) ListByUser(ctx context.Context, userID string) ([]models.Link, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	links := []models.Link{}
	err := s.db.SelectContext(ctx, &links,
		`SELECT id, short_code, target_url, user_id, created_at FROM links WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query links by user: %w", err)
	}
	return links, nil
}

// Delete removes a link only if it is owned by userID. The id and owner
// predicates are conjoined in one statement so ownership cannot change
// between a check and the delete. Zero affected rows is ErrLinkNotFound,
// whether the link is absent or owned by someone else.
func (s *LinkService) Delete(ctx context.Context, userID, linkID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM links WHERE id = ? AND user_id = ?`, linkID, userID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrLinkNotFound
	}

	s.events.Record(ctx, "link.delete", "info", "Short link deleted", &userID)
	return nil
}

func (s *LinkService) recordCreated(ctx context.Context, link models.Link) {
	s.events.Record(ctx, "link.create", "info",
		fmt.Sprintf("Short code %q assigned to %s", link.ShortCode, link.TargetURL), &link.UserID)
}

// validTargetURL requires an absolute http/https URL with a host. Targets
// are never re-validated after creation, so the bar is syntactic only.
func validTargetURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
