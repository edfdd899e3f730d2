/**
 * @description
 * This file defines the `Records` interface, the narrow document-store
 * contract the rest of the service is written against. Operations are keyed
 * by field-equality filters only; no storage-specific query operators leak
 * through it, which keeps the actual engine swappable (Postgres in
 * production, an in-memory store in tests and local runs).
 *
 * @notes
 * - UpdateOne returns the matched count (used for 404 decisions), while
 *   UpdateMany returns the modified count (used for the cancel result flag).
 * - There are no transactions across calls or collections. Multi-step write
 *   sequences in the app layer are therefore not atomic; see the
 *   entitlement service for the accepted consistency model.
 */
package store

import (
	"context"
	"errors"
)

// Collection names used by the service.
const (
	CollectionInstrumentals = "instrumentals"
	CollectionUsers         = "users"
	CollectionSubscriptions = "subscriptions"
)

// ErrNotFound is returned by FindOne when no record matches the filter.
var ErrNotFound = errors.New("record not found")

// Filter selects records by exact field equality. An empty filter matches
// every record in the collection.
type Filter map[string]any

// Patch assigns new values to the named fields, leaving the rest untouched.
type Patch map[string]any

// Records is the set of operations the service needs from a document store.
type Records interface {
	// FindOne decodes the first matching record into dest or returns
	// ErrNotFound.
	FindOne(ctx context.Context, collection string, filter Filter, dest any) error
	// FindMany decodes up to limit matching records into dest, which must be
	// a pointer to a slice. A limit <= 0 means no bound.
	FindMany(ctx context.Context, collection string, filter Filter, limit int, dest any) error
	// InsertOne stores a new record. The document must carry a non-empty
	// "id" field.
	InsertOne(ctx context.Context, collection string, doc any) error
	// UpdateOne patches at most one matching record and returns the matched
	// count (0 or 1).
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error)
	// UpdateMany patches every matching record and returns how many were
	// modified.
	UpdateMany(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error)
	// DeleteOne removes at most one matching record and returns the deleted
	// count (0 or 1).
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
	// DeleteMany removes every matching record and returns how many were
	// deleted.
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)
	// Count returns the number of matching records.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}
