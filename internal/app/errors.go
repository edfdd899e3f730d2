/**
 * @description
 * Sentinel errors shared by the application services. Handlers map these to
 * HTTP status codes with errors.Is; everything else is treated as an
 * infrastructure failure and surfaces as a 500.
 */
package app

import "errors"

var (
	// ErrInvalidInput marks requests rejected before touching the store
	// (missing ids, malformed bodies).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyUpdate marks an update request that carries no fields.
	ErrEmptyUpdate = errors.New("no update data provided")
)
