// services/scheduler.go
package services

import (
	"context"
	"log"

	"github.com/go-co-op/gocron/v2"

	"fight-picks-system/utils"
)

// StartSchedulers wires the weekly pipeline: Monday morning card sync,
// Sunday late-morning scoring, and a belt-and-braces season check every
// January 1st. All cron expressions run in the governing time zone, and
// every job leads with the idempotent season check.
func StartSchedulers(seasons *SeasonService, sync *EventSyncService, scoring *ScoringService) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(utils.Brussels()))
	if err != nil {
		return nil, err
	}

	if _, err := sched.NewJob(
		gocron.CronJob("0 9 * * 1", false),
		gocron.NewTask(func() {
			seasons.EnsureSeasonResetIfNeeded()
			result := sync.SyncUpcomingEvent(context.Background())
			log.Printf("[Scheduler] Monday sync: ok=%t %s", result.OK, result.Message)
		}),
	); err != nil {
		return nil, err
	}

	if _, err := sched.NewJob(
		gocron.CronJob("0 11 * * 0", false),
		gocron.NewTask(func() {
			seasons.EnsureSeasonResetIfNeeded()
			result := scoring.ApplyLatestEventResults(context.Background())
			log.Printf("[Scheduler] Sunday scoring: ok=%t %s", result.OK, result.Message)
		}),
	); err != nil {
		return nil, err
	}

	if _, err := sched.NewJob(
		gocron.CronJob("5 0 1 1 *", false),
		gocron.NewTask(func() {
			result := seasons.EnsureSeasonResetIfNeeded()
			log.Printf("[Scheduler] Season check: ok=%t reset=%t %s", result.OK, result.ResetApplied, result.Message)
		}),
	); err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
