package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Purger is the part of the session store the cleanup job needs.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ScheduleBlacklistCleanup adds the token_blacklist purge to c.
func ScheduleBlacklistCleanup(c *cron.Cron, store Purger, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() { RunBlacklistCleanup(store, time.Now) })
	if err != nil {
		return 0, err
	}
	log.Info().Str("schedule", spec).Msg("[CLEANUP] token_blacklist purge scheduled")
	return id, nil
}

// RunBlacklistCleanup is one cron tick.
func RunBlacklistCleanup(store Purger, now func() time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := store.PurgeExpired(ctx, now())
	if err != nil {
		log.Error().Err(err).Msg("[CLEANUP] token_blacklist purge failed")
		return
	}
	log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist purged")
}
