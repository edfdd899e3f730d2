package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sadaa/instrumental-service/internal/domain"
	"github.com/sadaa/instrumental-service/internal/store"
)

func newTestCatalog(records store.Records) *CatalogService {
	return NewCatalogService(records, testLogger())
}

func mustCreate(t *testing.T, svc *CatalogService, input domain.InstrumentalCreate) *domain.Instrumental {
	t.Helper()
	item, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return item
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestList_Filters(t *testing.T) {
	records := store.NewMemoryRecords()
	svc := newTestCatalog(records)

	mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm"})
	mustCreate(t, svc, domain.InstrumentalCreate{Title: "Drums of Devotion", Mood: "Drums", IsPremium: true})
	mustCreate(t, svc, domain.InstrumentalCreate{Title: "Sacred Rhythm", Mood: "Drums", IsPremium: true})

	tests := []struct {
		name    string
		filters ListFilters
		want    int
	}{
		{name: "no filters", filters: ListFilters{}, want: 3},
		{name: "mood All is no filter", filters: ListFilters{Mood: "All"}, want: 3},
		{name: "mood filter", filters: ListFilters{Mood: "Drums"}, want: 2},
		{name: "premium filter", filters: ListFilters{IsPremium: boolPtr(false)}, want: 1},
		{name: "search is case-insensitive substring", filters: ListFilters{Search: "rhythm"}, want: 1},
		{name: "search with mood", filters: ListFilters{Mood: "Drums", Search: "devotion"}, want: 1},
		{name: "search misses", filters: ListFilters{Search: "nocturne"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.List(context.Background(), tt.filters)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestFeatured_Capped(t *testing.T) {
	records := store.NewMemoryRecords()
	svc := newTestCatalog(records)

	for i := 0; i < 12; i++ {
		mustCreate(t, svc, domain.InstrumentalCreate{Title: fmt.Sprintf("Track %d", i), Mood: "Calm", IsFeatured: true})
	}

	items, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured returned error: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("expected the featured list to cap at 10, got %d", len(items))
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())

	item := mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm"})
	if item.ID == "" {
		t.Fatal("expected a minted id")
	}
	if item.ThumbnailColor != domain.DefaultThumbnailColor {
		t.Fatalf("expected default thumbnail color, got %q", item.ThumbnailColor)
	}
	if item.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())

	if _, err := svc.Create(context.Background(), domain.InstrumentalCreate{Mood: "Calm"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	records := store.NewMemoryRecords()
	svc := newTestCatalog(records)
	item := mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm", Duration: 180})

	updated, err := svc.Update(context.Background(), item.ID, domain.InstrumentalUpdate{
		Title:             strPtr("Evening Dhikr"),
		Mood:              strPtr("Soft"),
		Duration:          intPtr(200),
		DurationFormatted: strPtr("3:20"),
		IsPremium:         boolPtr(true),
		IsFeatured:        boolPtr(true),
		AudioURL:          strPtr("https://example.com/a.mp3"),
		ThumbnailColor:    strPtr("#123456"),
		FileSize:          int64Ptr(4200),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	// Every field set via update must read back exactly as set.
	reread, err := svc.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	for _, got := range []*domain.Instrumental{updated, reread} {
		if got.Title != "Evening Dhikr" || got.Mood != "Soft" || got.Duration != 200 ||
			got.DurationFormatted != "3:20" || !got.IsPremium || !got.IsFeatured ||
			got.AudioURL != "https://example.com/a.mp3" || got.ThumbnailColor != "#123456" ||
			got.FileSize != 4200 {
			t.Fatalf("round-trip mismatch: %+v", got)
		}
	}
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())
	item := mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm"})

	if _, err := svc.Update(context.Background(), item.ID, domain.InstrumentalUpdate{}); !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())

	_, err := svc.Update(context.Background(), "missing", domain.InstrumentalUpdate{Title: strPtr("x")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAudio(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())
	item := mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm"})

	if err := svc.UpdateAudio(context.Background(), item.ID, "https://example.com/b.mp3", 9000); err != nil {
		t.Fatalf("UpdateAudio returned error: %v", err)
	}
	got, err := svc.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AudioURL != "https://example.com/b.mp3" || got.FileSize != 9000 {
		t.Fatalf("audio update did not stick: %+v", got)
	}

	if err := svc.UpdateAudio(context.Background(), "missing", "https://example.com/c.mp3", 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestCatalog(store.NewMemoryRecords())
	item := mustCreate(t, svc, domain.InstrumentalCreate{Title: "Morning Dhikr", Mood: "Calm"})

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSeedAndStats(t *testing.T) {
	records := store.NewMemoryRecords()
	svc := newTestCatalog(records)

	// A pre-existing track is wiped by seeding.
	mustCreate(t, svc, domain.InstrumentalCreate{Title: "Old Track", Mood: "Calm"})

	count, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if count != 15 {
		t.Fatalf("expected 15 seeded tracks, got %d", count)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalInstrumentals != 15 {
		t.Fatalf("expected 15 total tracks, got %d", stats.TotalInstrumentals)
	}
	if stats.PremiumInstrumentals+stats.FreeInstrumentals != stats.TotalInstrumentals {
		t.Fatalf("premium/free split does not add up: %+v", stats)
	}
}
