package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/aphex18/URL-SHORTENER/internal/models"
	ws "github.com/aphex18/URL-SHORTENER/internal/websocket"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Record(ctx context.Context, eventType, level, message string, userID *string)
	RecentForUser(ctx context.Context, userID string, limit int) ([]models.Event, error)
	PruneOlderThan(ctx context.Context, days int) (int64, error)
}

// EventService records dashboard events and pushes them to connected
// websocket clients.
type EventService struct {
	db  *sqlx.DB
	hub *ws.Hub
}

// NewEventService creates a new EventService. hub may be nil in tests.
func NewEventService(db *sqlx.DB, hub *ws.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// Record logs a new event and notifies connected dashboards. Events
// are best-effort: failures are logged, never propagated, so an event write
// can never fail the request that produced it.
func (s *EventService) Record(ctx context.Context, eventType, level, message string, userID *string) {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, type, level, message, user_id) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.Type, event.Level, event.Message, event.UserID)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to record event")
		return
	}

	if s.hub != nil {
		payload, err := json.Marshal(ws.Message{Action: "event", Payload: event})
		if err != nil {
			log.Error().Err(err).Msg("failed to encode event message")
			return
		}
		// A user-scoped event goes to that user's dashboards only; an event
		// with no owner concerns every dashboard.
		if userID != nil {
			s.hub.BroadcastTo(*userID, payload)
		} else {
			s.hub.BroadcastAll(payload)
		}
	}
}

// RecentForUser retrieves the most recent events belonging to a user.
func (s *EventService) RecentForUser(ctx context.Context, userID string, limit int) ([]models.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	events := []models.Event{}
	err := s.db.SelectContext(ctx, &events,
		`SELECT id, type, level, message, user_id, created_at FROM events
		 WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

// PruneOlderThan deletes events past the retention window and returns the
// number of rows removed.
func (s *EventService) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < datetime('now', ?)`, fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return res.RowsAffected()
}
