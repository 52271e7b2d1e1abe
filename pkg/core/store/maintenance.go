package store

import (
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// Compactor is implemented by stores that need periodic housekeeping.
type Compactor interface {
	Compact() error
}

const DefaultMaintenanceSchedule = "@every 6h"

// Maintenance runs Compact on a cron schedule.
type Maintenance struct {
	target Compactor
	cron   *cron.Cron
}

// NewMaintenance returns nil when st has nothing to compact.
func NewMaintenance(st Store) *Maintenance {
	c, ok := st.(Compactor)
	if !ok {
		return nil
	}
	return &Maintenance{
		target: c,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules the job. An empty schedule uses DefaultMaintenanceSchedule.
func (m *Maintenance) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	if _, err := m.cron.AddFunc(schedule, m.RunNow); err != nil {
		return err
	}
	m.cron.Start()
	log.Info().Str("schedule", schedule).Msg("store maintenance scheduled")
	return nil
}

// Stop waits for a running job to finish.
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Maintenance) RunNow() {
	start := time.Now()
	if err := m.target.Compact(); err != nil {
		log.Error().Err(err).Msg("store maintenance failed")
		return
	}
	log.Info().Dur("duration", time.Since(start)).Msg("store maintenance completed")
}
