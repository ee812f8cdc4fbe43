package monitoring

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatSampler periodically logs host resource usage and table sizes. Debug
// level by default; switch LOG_LEVEL to debug to watch it.
type StatSampler struct {
	db     *sqlx.DB
	ticker *time.Ticker
	done   chan bool
}

// NewStatSampler creates a new StatSampler.
func NewStatSampler(db *sqlx.DB) *StatSampler {
	return &StatSampler{
		db:   db,
		done: make(chan bool),
	}
}

// Run starts the periodic sampling loop.
func (s *StatSampler) Run() {
	log.Info().Msg("Starting background stat sampler")
	s.ticker = time.NewTicker(60 * time.Second)
	defer s.ticker.Stop()

	// Sample once immediately on start
	s.sample()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping background stat sampler")
			return
		case <-s.ticker.C:
			s.sample()
		}
	}
}

// Stop halts the sampler.
func (s *StatSampler) Stop() {
	s.done <- true
}

func (s *StatSampler) sample() {
	entry := log.Debug()

	if vm, err := mem.VirtualMemory(); err == nil {
		entry = entry.Float64("mem_used_pct", vm.UsedPercent)
	}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		entry = entry.Float64("cpu_pct", pcts[0])
	}

	var users, links int
	if err := s.db.Get(&users, `SELECT COUNT(*) FROM users`); err != nil {
		log.Error().Err(err).Msg("StatSampler: failed to count users")
		return
	}
	if err := s.db.Get(&links, `SELECT COUNT(*) FROM links`); err != nil {
		log.Error().Err(err).Msg("StatSampler: failed to count links")
		return
	}

	entry.Int("users", users).Int("links", links).Msg("runtime stats")
}
