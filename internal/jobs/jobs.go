// Package jobs runs recurring maintenance tasks.
package jobs

import (
	"fmt"
	"time"

	"github.com/promissoria/backend/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Start schedules the plan expiry job and starts the scheduler. The returned
// function stops the scheduler and waits for running jobs to finish.
func Start(db *gorm.DB, spec string) (func(), error) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, ExpirePlans(db, time.Now))
	if err != nil {
		return nil, fmt.Errorf("invalid schedule '%s' for plan expiry: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("Plan expiry job scheduled")

	return func() {
		<-c.Stop().Done()
	}, nil
}

// ExpirePlans returns the job that downgrades expired Pro plans.
func ExpirePlans(db *gorm.DB, now func() time.Time) func() {
	return func() {
		count, err := models.ExpirePlans(db, now())
		if err != nil {
			log.Error().Err(err).Int("expired", count).Msg("Plan expiry")
			return
		}

		log.Debug().Int("expired", count).Msg("Plan expiry")
	}
}
