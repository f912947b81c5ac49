package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authRepo "africrea_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 100

// StartBlacklistCleanupScheduler purges blacklist rows that expired more than
// ttlDays ago, once at start and then every interval, until ctx is done.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, ttlDays int, interval time.Duration) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			RunBlacklistCleanup(ctx, db, time.Now().Add(-time.Duration(ttlDays)*24*time.Hour))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// RunBlacklistCleanup deletes in batches until nothing older than before is left.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, before time.Time) int64 {
	var total int64
	for {
		n, err := authRepo.CleanupExpiredBlacklist(db.WithContext(ctx), before, cleanupBatch)
		if err != nil {
			log.WithError(err).Error("[CLEANUP] token_blacklist cleanup failed")
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.WithField("deleted", total).Info("[CLEANUP] expired blacklist tokens removed")
	} else {
		log.Debug("[CLEANUP] nothing to remove from token_blacklist")
	}
	return total
}
