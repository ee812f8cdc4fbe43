package monitoring

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/aphex18/URL-SHORTENER/internal/services"
)

// eventRetentionDays is how long dashboard events are kept.
const eventRetentionDays = 30

// Maintenance runs periodic storage upkeep: query-planner statistics and
// event-log pruning. It lives outside the request path; request handling
// never depends on it.
type Maintenance struct {
	db     *sqlx.DB
	events services.EventServiceProvider
	cron   *cron.Cron
}

// NewMaintenance creates the maintenance runner.
func NewMaintenance(db *sqlx.DB, events services.EventServiceProvider) *Maintenance {
	return &Maintenance{
		db:     db,
		events: events,
		cron:   cron.New(),
	}
}

// Start registers the hourly jobs and starts the cron scheduler.
func (m *Maintenance) Start() error {
	if _, err := m.cron.AddFunc("@hourly", m.run); err != nil {
		return err
	}
	m.cron.Start()
	log.Info().Msg("Starting storage maintenance jobs")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (m *Maintenance) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Stopped storage maintenance jobs")
}

func (m *Maintenance) run() {
	if _, err := m.db.Exec(`PRAGMA optimize`); err != nil {
		log.Error().Err(err).Msg("Maintenance: PRAGMA optimize failed")
	}

	pruned, err := m.events.PruneOlderThan(context.Background(), eventRetentionDays)
	if err != nil {
		log.Error().Err(err).Msg("Maintenance: event pruning failed")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("Maintenance: pruned old events")
		// System-wide, so every connected dashboard sees it.
		m.events.Record(context.Background(), "maintenance.prune", "info",
			fmt.Sprintf("Removed %d dashboard events past retention", pruned), nil)
	}
}
