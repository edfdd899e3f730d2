/**
 * @description
 * This file contains the catalog service: CRUD and filtered listing over
 * instrumental tracks, the featured banner query, the mood list, the admin
 * audio-url update, seeding, and the admin statistics summary. Catalog
 * operations surface a missing id as store.ErrNotFound, unlike the
 * entitlement operations which treat absence as a normal negative result.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadaa/instrumental-service/internal/domain"
	"github.com/sadaa/instrumental-service/internal/store"
)

// Listing caps, matching what the mobile client can render.
const (
	listLimit     = 100
	featuredLimit = 10
)

// CatalogService manages the instrumental track library.
type CatalogService struct {
	records store.Records
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(records store.Records, logger *slog.Logger) *CatalogService {
	return &CatalogService{records: records, logger: logger}
}

// ListFilters are the optional catalog listing filters. Mood "All" (or
// empty) means no mood filter; Search is a case-insensitive title substring.
type ListFilters struct {
	Mood      string
	IsPremium *bool
	Search    string
}

// List returns up to 100 instrumentals matching the filters.
func (s *CatalogService) List(ctx context.Context, filters ListFilters) ([]domain.Instrumental, error) {
	filter := store.Filter{}
	if filters.Mood != "" && filters.Mood != "All" {
		filter["mood"] = filters.Mood
	}
	if filters.IsPremium != nil {
		filter["is_premium"] = *filters.IsPremium
	}

	// The record store only understands field equality, so the substring
	// search runs here over an unbounded equality fetch and the listing cap
	// applies after filtering.
	limit := listLimit
	if filters.Search != "" {
		limit = 0
	}

	var items []domain.Instrumental
	if err := s.records.FindMany(ctx, store.CollectionInstrumentals, filter, limit, &items); err != nil {
		return nil, fmt.Errorf("listing instrumentals: %w", err)
	}

	if filters.Search == "" {
		return items, nil
	}

	needle := strings.ToLower(filters.Search)
	matched := []domain.Instrumental{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			matched = append(matched, item)
			if len(matched) == listLimit {
				break
			}
		}
	}
	return matched, nil
}

// Featured returns up to 10 instrumentals flagged for the banner.
func (s *CatalogService) Featured(ctx context.Context) ([]domain.Instrumental, error) {
	var items []domain.Instrumental
	err := s.records.FindMany(ctx, store.CollectionInstrumentals,
		store.Filter{"is_featured": true}, featuredLimit, &items)
	if err != nil {
		return nil, fmt.Errorf("listing featured instrumentals: %w", err)
	}
	return items, nil
}

// Get returns a single instrumental or store.ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Instrumental, error) {
	var item domain.Instrumental
	if err := s.records.FindOne(ctx, store.CollectionInstrumentals, store.Filter{"id": id}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a new instrumental, minting its id and creation timestamp.
func (s *CatalogService) Create(ctx context.Context, input domain.InstrumentalCreate) (*domain.Instrumental, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if input.ThumbnailColor == "" {
		input.ThumbnailColor = domain.DefaultThumbnailColor
	}

	item := &domain.Instrumental{
		ID:                uuid.NewString(),
		Title:             input.Title,
		Mood:              input.Mood,
		Duration:          input.Duration,
		DurationFormatted: input.DurationFormatted,
		IsPremium:         input.IsPremium,
		IsFeatured:        input.IsFeatured,
		AudioURL:          input.AudioURL,
		ThumbnailColor:    input.ThumbnailColor,
		FileSize:          input.FileSize,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.records.InsertOne(ctx, store.CollectionInstrumentals, item); err != nil {
		return nil, fmt.Errorf("inserting instrumental: %w", err)
	}
	return item, nil
}

// Update applies a partial patch and returns the updated record. An
// all-empty patch is rejected; a missing id returns store.ErrNotFound.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.InstrumentalUpdate) (*domain.Instrumental, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	matched, err := s.records.UpdateOne(ctx, store.CollectionInstrumentals,
		store.Filter{"id": id}, store.Patch(fields))
	if err != nil {
		return nil, fmt.Errorf("updating instrumental: %w", err)
	}
	if matched == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

// UpdateAudio sets the hosted audio URL and file size for a track.
func (s *CatalogService) UpdateAudio(ctx context.Context, id, audioURL string, fileSize int64) error {
	if audioURL == "" {
		return fmt.Errorf("%w: audio_url cannot be empty", ErrInvalidInput)
	}
	matched, err := s.records.UpdateOne(ctx, store.CollectionInstrumentals,
		store.Filter{"id": id}, store.Patch{"audio_url": audioURL, "file_size": fileSize})
	if err != nil {
		return fmt.Errorf("updating audio url: %w", err)
	}
	if matched == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a track or returns store.ErrNotFound.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.records.DeleteOne(ctx, store.CollectionInstrumentals, store.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("deleting instrumental: %w", err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Moods returns the selectable mood filters.
func (s *CatalogService) Moods(ctx context.Context) []string {
	return domain.Moods
}

// Seed wipes the catalog and loads the sample library. Returns how many
// tracks were inserted.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	if _, err := s.records.DeleteMany(ctx, store.CollectionInstrumentals, store.Filter{}); err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}

	for _, sample := range sampleInstrumentals {
		item := sample
		item.ID = uuid.NewString()
		item.CreatedAt = time.Now().UTC()
		if err := s.records.InsertOne(ctx, store.CollectionInstrumentals, &item); err != nil {
			return 0, fmt.Errorf("seeding catalog: %w", err)
		}
	}

	s.logger.Info("catalog seeded", "count", len(sampleInstrumentals))
	return len(sampleInstrumentals), nil
}

// Stats returns the admin statistics summary.
func (s *CatalogService) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	stats := &domain.CatalogStats{}

	var err error
	if stats.TotalInstrumentals, err = s.records.Count(ctx, store.CollectionInstrumentals, store.Filter{}); err != nil {
		return nil, fmt.Errorf("counting instrumentals: %w", err)
	}
	if stats.PremiumInstrumentals, err = s.records.Count(ctx, store.CollectionInstrumentals, store.Filter{"is_premium": true}); err != nil {
		return nil, fmt.Errorf("counting premium instrumentals: %w", err)
	}
	if stats.FreeInstrumentals, err = s.records.Count(ctx, store.CollectionInstrumentals, store.Filter{"is_premium": false}); err != nil {
		return nil, fmt.Errorf("counting free instrumentals: %w", err)
	}
	if stats.TotalUsers, err = s.records.Count(ctx, store.CollectionUsers, store.Filter{}); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if stats.ActiveSubscriptions, err = s.records.Count(ctx, store.CollectionSubscriptions, store.Filter{"is_active": true}); err != nil {
		return nil, fmt.Errorf("counting active subscriptions: %w", err)
	}
	return stats, nil
}
