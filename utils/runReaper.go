package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/engine"

	"github.com/robfig/cron/v3"
)

// logReaper logs reaper events with timestamp
func logReaper(message string) {
	log.Printf("[RUN-REAPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepPlacementRuns evicts finished and abandoned placement runs so a
// run whose client went away does not sit in memory forever.
func sweepPlacementRuns() {
	if engine.Sessions == nil {
		return
	}

	maxIdle := time.Duration(config.AppConfig.RunIdleTimeoutMin) * time.Minute
	if evicted := engine.Sessions.Sweep(maxIdle); evicted > 0 {
		logReaper(fmt.Sprintf("Evicted %d runs", evicted))
	}
}

// StartRunReaper schedules the placement run sweeper.
func StartRunReaper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1m", sweepPlacementRuns); err != nil {
		log.Fatalf("Failed to schedule run reaper: %v", err)
	}

	c.Start()
	logReaper("Run reaper started")
	return c
}
