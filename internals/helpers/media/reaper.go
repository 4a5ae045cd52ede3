package media

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReferenceChecker tells which keys are still referenced by a database row.
type ReferenceChecker interface {
	ReferencedKeys(ctx context.Context, keys []string) (map[string]bool, error)
}

type ReaperConfig struct {
	Prefixes  []string
	Retention time.Duration
	Schedule  string
	DryRun    bool
}

// Reaper deletes remote objects nobody points at any more.
type Reaper struct {
	Store Store
	Refs  ReferenceChecker
	Cfg   ReaperConfig
	Now   func() time.Time
}

func NewReaper(store Store, refs ReferenceChecker, cfg ReaperConfig) *Reaper {
	return &Reaper{Store: store, Refs: refs, Cfg: cfg, Now: time.Now}
}

type ReapResult struct {
	Scanned int
	Orphans []string
	Deleted int
}

// RunOnce scans every prefix once. Errors on single deletions are logged and skipped.
func (r *Reaper) RunOnce(ctx context.Context) (ReapResult, error) {
	var res ReapResult
	threshold := r.Now().Add(-r.Cfg.Retention)

	for _, prefix := range r.Cfg.Prefixes {
		objs, err := r.Store.List(ctx, prefix)
		if err != nil {
			return res, err
		}
		res.Scanned += len(objs)

		var old []string
		for _, o := range objs {
			if o.LastModified.Before(threshold) {
				old = append(old, o.Key)
			}
		}
		if len(old) == 0 {
			continue
		}
		refs, err := r.Refs.ReferencedKeys(ctx, old)
		if err != nil {
			return res, err
		}
		for _, k := range old {
			if !refs[k] {
				res.Orphans = append(res.Orphans, k)
			}
		}
	}

	if r.Cfg.DryRun {
		log.Info().Int("orphans", len(res.Orphans)).Int("scanned", res.Scanned).Msg("[MEDIA-REAPER] dry-run, nothing deleted")
		return res, nil
	}
	for _, k := range res.Orphans {
		if err := r.Store.Delete(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("[MEDIA-REAPER] delete failed")
			continue
		}
		res.Deleted++
	}
	log.Info().Int("deleted", res.Deleted).Int("scanned", res.Scanned).Msg("[MEDIA-REAPER] done")
	return res, nil
}

// Schedule adds RunOnce to c; the caller starts and stops c.
func (r *Reaper) Schedule(c *cron.Cron) (cron.EntryID, error) {
	id, err := c.AddFunc(r.Cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("[MEDIA-REAPER] run failed")
		}
	})
	if err != nil {
		return 0, err
	}
	log.Info().Str("schedule", r.Cfg.Schedule).Strs("prefixes", r.Cfg.Prefixes).
		Dur("retention", r.Cfg.Retention).Bool("dry_run", r.Cfg.DryRun).Msg("[MEDIA-REAPER] scheduled")
	return id, nil
}
