package scheduler

import (
	"github.com/rs/zerolog"
)

// Reloader is satisfied by config.Store
type Reloader interface {
	Reload() error
}

// ReloadTablesJob re-reads the tax and coefficient documents. A failed reload
// leaves the previously published tables in service.
type ReloadTablesJob struct {
	store Reloader
	log   zerolog.Logger
}

// NewReloadTablesJob creates the reload job
func NewReloadTablesJob(store Reloader, log zerolog.Logger) *ReloadTablesJob {
	return &ReloadTablesJob{
		store: store,
		log:   log.With().Str("job", "reload_tables").Logger(),
	}
}

// Name returns the job name
func (j *ReloadTablesJob) Name() string {
	return "reload_tables"
}

// Run executes the reload
func (j *ReloadTablesJob) Run() error {
	if err := j.store.Reload(); err != nil {
		j.log.Warn().Err(err).Msg("Keeping previous tables")
		return err
	}
	j.log.Info().Msg("Reference tables reloaded")
	return nil
}
