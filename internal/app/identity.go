/**
 * @description
 * This file contains the identity service: idempotent get-or-create of user
 * records keyed by the client's device identifier. There is no
 * authentication; the device id is trusted as presented.
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
)

// IdentityService manages per-device user records.
type IdentityService struct {
	records store.Records
	logger  *slog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(records store.Records, logger *slog.Logger) *IdentityService {
	return &IdentityService{records: records, logger: logger}
}

// GetOrCreate returns the user for the device id, creating one with
// is_subscribed=false if none exists.
func (s *IdentityService) GetOrCreate(ctx context.Context, deviceID string) (*domain.User, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device id cannot be empty", ErrInvalidInput)
	}

	var existing domain.User
	err := s.records.FindOne(ctx, store.CollectionUsers, store.Filter{"device_id": deviceID}, &existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		DeviceID:     deviceID,
		IsSubscribed: false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.records.InsertOne(ctx, store.CollectionUsers, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetByDevice returns the user for the device id or store.ErrNotFound.
func (s *IdentityService) GetByDevice(ctx context.Context, deviceID string) (*domain.User, error) {
	var user domain.User
	if err := s.records.FindOne(ctx, store.CollectionUsers, store.Filter{"device_id": deviceID}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
