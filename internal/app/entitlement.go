/**
 * @description
 * This file contains the core business logic for subscription entitlement:
 * creation, status evaluation with lazy expiry, restore and cancellation,
 * plus the cache reconciliation helper. It is the sole writer of the
 * subscriptions collection's is_active flag.
 *
 * Consistency model: the record store has no cross-collection transactions,
 * so the subscription write and the user-cache write in each operation are
 * two independent steps. A crash or concurrent reader between them can
 * observe a stale User.is_subscribed; that field is advisory, and status
 * checks always recompute from subscription ground truth.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sadaa/instrumental-service/internal/domain"
	"github.com/sadaa/instrumental-service/internal/store"
	"github.com/sadaa/instrumental-service/pkg/rabbitmq"
)

// EntitlementService manages the subscription lifecycle.
type EntitlementService struct {
	records  store.Records
	events   rabbitmq.Publisher
	exchange string
	logger   *slog.Logger
}

// NewEntitlementService creates a new entitlement service. The publisher may
// be the no-op fallback when RabbitMQ is not configured.
func NewEntitlementService(records store.Records, events rabbitmq.Publisher, exchange string, logger *slog.Logger) *EntitlementService {
	return &EntitlementService{
		records:  records,
		events:   events,
		exchange: exchange,
		logger:   logger,
	}
}

// activeFilter selects the active subscription rows for a user.
func activeFilter(userID string) store.Filter {
	return store.Filter{"user_id": userID, "is_active": true}
}

func (s *EntitlementService) findActive(ctx context.Context, userID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.records.FindOne(ctx, store.CollectionSubscriptions, activeFilter(userID), &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *EntitlementService) setUserCache(ctx context.Context, userID string, subscribed bool) error {
	// Matched count of zero just means the user record does not exist; the
	// engine does not enforce a foreign key here.
	_, err := s.records.UpdateOne(ctx, store.CollectionUsers,
		store.Filter{"id": userID}, store.Patch{"is_subscribed": subscribed})
	if err != nil {
		return fmt.Errorf("updating user subscription cache: %w", err)
	}
	return nil
}

func (s *EntitlementService) publish(ctx context.Context, routingKey string, event domain.SubscriptionEvent) {
	if s.events == nil {
		return
	}
	// Best-effort: a publish failure never fails the operation.
	if err := s.events.Publish(ctx, s.exchange, routingKey, event); err != nil {
		s.logger.Warn("failed to publish subscription event", "routing_key", routingKey, "user_id", event.UserID, "error", err)
	}
}

// Subscribe creates an active subscription for the user, or returns the
// existing active one unchanged. Calling subscribe while already subscribed
// is a no-op, not a renewal or plan change.
func (s *EntitlementService) Subscribe(ctx context.Context, userID, plan string) (*domain.Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidInput)
	}

	existing, err := s.findActive(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up active subscription: %w", err)
	}

	spec, known := domain.LookupPlan(plan)
	if !known {
		s.logger.Warn("unrecognized plan requested, falling back to monthly", "user_id", userID, "plan", plan)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(spec.Duration)
	sub := &domain.Subscription{
		ID:           uuid.NewString(),
		UserID:       userID,
		IsActive:     true,
		Plan:         spec.Plan,
		Price:        spec.Price,
		SubscribedAt: now,
		ExpiresAt:    &expiresAt,
	}

	// Subscription insert happens before the cache update; a crash between
	// the two leaves the cache stale-false until the next status check.
	if err := s.records.InsertOne(ctx, store.CollectionSubscriptions, sub); err != nil {
		return nil, fmt.Errorf("inserting subscription: %w", err)
	}
	if err := s.setUserCache(ctx, userID, true); err != nil {
		return nil, err
	}

	s.logger.Info("subscription activated", "user_id", userID, "subscription_id", sub.ID, "plan", sub.Plan)
	s.publish(ctx, domain.EventSubscriptionActivated, domain.SubscriptionEvent{
		UserID:         userID,
		SubscriptionID: sub.ID,
		Plan:           sub.Plan,
		OccurredAt:     now,
	})
	return sub, nil
}

// GetStatus reports whether the user is currently entitled. This is the
// single authority for expiry enforcement: an expired row is flipped to
// inactive here, as a side effect of the read, and there is no background
// sweep unless one is explicitly scheduled.
func (s *EntitlementService) GetStatus(ctx context.Context, userID string) (*domain.SubscriptionStatus, error) {
	sub, err := s.findActive(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.SubscriptionStatus{IsSubscribed: false, Subscription: nil}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up active subscription: %w", err)
	}

	if sub.Expired(time.Now().UTC()) {
		if err := s.expire(ctx, sub); err != nil {
			return nil, err
		}
		return &domain.SubscriptionStatus{IsSubscribed: false, Subscription: nil}, nil
	}

	return &domain.SubscriptionStatus{IsSubscribed: true, Subscription: sub}, nil
}

// expire performs the one-way active->inactive transition for a lapsed row.
// The update is conditioned on is_active=true so a concurrent status check
// or sweep running the same transition cannot double-fire.
func (s *EntitlementService) expire(ctx context.Context, sub *domain.Subscription) error {
	matched, err := s.records.UpdateOne(ctx, store.CollectionSubscriptions,
		store.Filter{"id": sub.ID, "is_active": true}, store.Patch{"is_active": false})
	if err != nil {
		return fmt.Errorf("deactivating expired subscription: %w", err)
	}
	if err := s.setUserCache(ctx, sub.UserID, false); err != nil {
		return err
	}
	if matched > 0 {
		s.logger.Info("subscription expired", "user_id", sub.UserID, "subscription_id", sub.ID)
		s.publish(ctx, domain.EventSubscriptionExpired, domain.SubscriptionEvent{
			UserID:         sub.UserID,
			SubscriptionID: sub.ID,
			Plan:           sub.Plan,
			OccurredAt:     time.Now().UTC(),
		})
	}
	return nil
}

// Restore re-establishes entitlement after a reinstall. This is a pure read:
// unlike GetStatus it performs no expiry evaluation, so a lapsed-but-not-yet
// -expired row is returned as-is until the next status check flips it.
func (s *EntitlementService) Restore(ctx context.Context, userID string) (*domain.RestoreResult, error) {
	sub, err := s.findActive(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.RestoreResult{
			Restored: false,
			Message:  "No active subscription found to restore",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up active subscription: %w", err)
	}
	return &domain.RestoreResult{Restored: true, Subscription: sub}, nil
}

// Cancel deactivates every active subscription row for the user. The bulk
// update also cleans up any duplicate-active rows left behind by concurrent
// subscribe calls. Cancelling with nothing active is a successful no-op.
func (s *EntitlementService) Cancel(ctx context.Context, userID string) (*domain.CancelResult, error) {
	modified, err := s.records.UpdateMany(ctx, store.CollectionSubscriptions,
		activeFilter(userID), store.Patch{"is_active": false})
	if err != nil {
		return nil, fmt.Errorf("deactivating subscriptions: %w", err)
	}

	if err := s.setUserCache(ctx, userID, false); err != nil {
		return nil, err
	}

	if modified > 0 {
		s.logger.Info("subscription cancelled", "user_id", userID, "rows", modified)
		s.publish(ctx, domain.EventSubscriptionCancelled, domain.SubscriptionEvent{
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		})
	}

	return &domain.CancelResult{Message: "Subscription cancelled", Cancelled: modified > 0}, nil
}

// Reconcile recomputes the user's is_subscribed cache from subscription
// ground truth. It is callable independently of the write paths, for the
// cases where the two-step sequences left the cache stale.
func (s *EntitlementService) Reconcile(ctx context.Context, userID string) (bool, error) {
	var subs []domain.Subscription
	if err := s.records.FindMany(ctx, store.CollectionSubscriptions, activeFilter(userID), 0, &subs); err != nil {
		return false, fmt.Errorf("listing active subscriptions: %w", err)
	}

	now := time.Now().UTC()
	entitled := false
	for i := range subs {
		if !subs[i].Expired(now) {
			entitled = true
			break
		}
	}

	if err := s.setUserCache(ctx, userID, entitled); err != nil {
		return entitled, err
	}
	return entitled, nil
}
