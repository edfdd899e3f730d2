/**
 * @description
 * Scheduled job implementations. The only job is the subscription expiry
 * sweep, which is optional: lazy expiry on status checks remains the
 * authoritative path, and the sweep exists to tidy up rows for users who
 * stopped polling. It is disabled unless a cron schedule is configured.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sadaa/instrumental-service/internal/domain"
	"github.com/sadaa/instrumental-service/internal/store"
)

// sweepPageSize bounds how many active rows one sweep run examines.
const sweepPageSize = 500

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	records     store.Records
	entitlement *EntitlementService
	logger      *slog.Logger
}

// NewJobs creates a new Jobs runner.
func NewJobs(records store.Records, entitlement *EntitlementService, logger *slog.Logger) *Jobs {
	return &Jobs{records: records, entitlement: entitlement, logger: logger}
}

// SweepExpiredSubscriptions deactivates active subscriptions whose expiry
// has passed. The per-row transition goes through the same conditional
// active->inactive update the lazy path uses, so a sweep racing a status
// check cannot double-fire, and each touched user's cache is reconciled
// from ground truth afterwards.
func (j *Jobs) SweepExpiredSubscriptions() {
	j.logger.Info("starting subscription expiry sweep")
	ctx := context.Background()

	var active []domain.Subscription
	err := j.records.FindMany(ctx, store.CollectionSubscriptions,
		store.Filter{"is_active": true}, sweepPageSize, &active)
	if err != nil {
		j.logger.Error("failed to list active subscriptions", "error", err)
		return
	}

	now := time.Now().UTC()
	expired := 0
	for i := range active {
		sub := &active[i]
		if !sub.Expired(now) {
			continue
		}

		if err := j.entitlement.expire(ctx, sub); err != nil {
			j.logger.Error("failed to expire subscription", "subscription_id", sub.ID, "user_id", sub.UserID, "error", err)
			continue
		}
		if _, err := j.entitlement.Reconcile(ctx, sub.UserID); err != nil {
			j.logger.Error("failed to reconcile user cache", "user_id", sub.UserID, "error", err)
		}
		expired++
	}

	j.logger.Info("subscription expiry sweep finished", "examined", len(active), "expired", expired)
}
