/**
 * @description
 * This file defines the User domain model. Users are keyed by an opaque
 * device identifier supplied by the mobile client; there is no
 * authentication layer in front of it.
 */
package domain

import "time"

// User is a per-installation record. IsSubscribed is a denormalized cache of
// subscription truth maintained by the entitlement service; it can lag the
// subscriptions collection between an expiry and the next status check, so
// consumers needing ground truth must query subscription state instead.
type User struct {
	ID           string    `json:"id"`
	DeviceID     string    `json:"device_id"`
	IsSubscribed bool      `json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
}
