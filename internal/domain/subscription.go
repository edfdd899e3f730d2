/**
 * @description
 * This file defines the core domain models for the entitlement side of the
 * service: the Subscription record, the plan catalog with its pricing and
 * duration rules, and the DTOs returned by the subscription API.
 */
package domain

import (
	"strings"
	"time"
)

// Plan identifiers accepted by the subscribe operation.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// PlanSpec describes the pricing and duration of a subscription plan.
type PlanSpec struct {
	Plan     string
	Price    float64
	Duration time.Duration
}

var planSpecs = map[string]PlanSpec{
	PlanMonthly: {Plan: PlanMonthly, Price: 53.0, Duration: 30 * 24 * time.Hour},
	PlanYearly:  {Plan: PlanYearly, Price: 499.0, Duration: 365 * 24 * time.Hour},
}

// LookupPlan resolves a plan name to its spec. Unrecognized plan names fall
// back to the monthly plan; the second return value reports whether the name
// was recognized so callers can log the fallback.
func LookupPlan(plan string) (PlanSpec, bool) {
	spec, ok := planSpecs[strings.ToLower(strings.TrimSpace(plan))]
	if !ok {
		return planSpecs[PlanMonthly], false
	}
	return spec, true
}

// Subscription represents one entitlement period for a user. Rows are never
// deleted: cancellation and expiry both flip IsActive to false and the row
// remains as history. ExpiresAt is always set at creation.
type Subscription struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	IsActive     bool       `json:"is_active"`
	Plan         string     `json:"plan"`
	Price        float64    `json:"price"`
	SubscribedAt time.Time  `json:"subscribed_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// Expired reports whether the subscription's expiry instant has passed at
// the given time. A nil ExpiresAt never expires.
func (s *Subscription) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// SubscriptionStatus is the response shape of the status endpoint.
type SubscriptionStatus struct {
	IsSubscribed bool          `json:"is_subscribed"`
	Subscription *Subscription `json:"subscription"`
}

// RestoreResult is the response shape of the restore-purchase endpoint.
type RestoreResult struct {
	Restored     bool          `json:"restored"`
	Subscription *Subscription `json:"subscription,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// CancelResult is the response shape of the cancel endpoint. Cancelled is
// false when there was nothing active to cancel; that is a success, not an
// error.
type CancelResult struct {
	Message   string `json:"message"`
	Cancelled bool   `json:"cancelled"`
}
