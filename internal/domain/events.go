/**
 * @description
 * This file defines the event payloads published to RabbitMQ when a
 * subscription changes state. Publishing is best-effort; consumers must not
 * rely on delivery for correctness.
 */
package domain

import "time"

// Routing keys for subscription lifecycle events.
const (
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventSubscriptionExpired   = "subscription.expired"
)

// SubscriptionEvent is the wire payload for all subscription lifecycle
// events. SubscriptionID is empty on cancellation, which deactivates every
// active row for the user rather than a single one.
type SubscriptionEvent struct {
	UserID         string    `json:"user_id"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	Plan           string    `json:"plan,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
