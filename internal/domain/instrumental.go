/**
 * @description
 * This file defines the catalog domain models: the Instrumental track record
 * plus the create/update input shapes used by the catalog API.
 */
package domain

import "time"

// DefaultThumbnailColor is the card gradient color applied when a track is
// created without one.
const DefaultThumbnailColor = "#4A3463"

// Moods lists the selectable mood filters in the order the client shows
// them. "All" is a filter pseudo-value, not a stored mood.
var Moods = []string{"All", "Calm", "Drums", "Spiritual", "Soft", "Energetic"}

// Instrumental is a catalog audio track. AudioURL points at externally
// hosted audio; this service never serves the bytes itself.
type Instrumental struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Mood              string    `json:"mood"`
	Duration          int       `json:"duration"`
	DurationFormatted string    `json:"duration_formatted"`
	IsPremium         bool      `json:"is_premium"`
	IsFeatured        bool      `json:"is_featured"`
	AudioURL          string    `json:"audio_url,omitempty"`
	ThumbnailColor    string    `json:"thumbnail_color"`
	FileSize          int64     `json:"file_size"`
	CreatedAt         time.Time `json:"created_at"`
}

// InstrumentalCreate carries the client-supplied fields for a new track.
// ID and CreatedAt are minted server-side.
type InstrumentalCreate struct {
	Title             string `json:"title"`
	Mood              string `json:"mood"`
	Duration          int    `json:"duration"`
	DurationFormatted string `json:"duration_formatted"`
	IsPremium         bool   `json:"is_premium"`
	IsFeatured        bool   `json:"is_featured"`
	AudioURL          string `json:"audio_url,omitempty"`
	ThumbnailColor    string `json:"thumbnail_color,omitempty"`
	FileSize          int64  `json:"file_size,omitempty"`
}

// InstrumentalUpdate is a partial patch; nil fields are left untouched. A
// patch with every field nil is rejected as a validation error.
type InstrumentalUpdate struct {
	Title             *string `json:"title,omitempty"`
	Mood              *string `json:"mood,omitempty"`
	Duration          *int    `json:"duration,omitempty"`
	DurationFormatted *string `json:"duration_formatted,omitempty"`
	IsPremium         *bool   `json:"is_premium,omitempty"`
	IsFeatured        *bool   `json:"is_featured,omitempty"`
	AudioURL          *string `json:"audio_url,omitempty"`
	ThumbnailColor    *string `json:"thumbnail_color,omitempty"`
	FileSize          *int64  `json:"file_size,omitempty"`
}

// Fields flattens the patch into column/value pairs, skipping nil entries.
func (u *InstrumentalUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Mood != nil {
		fields["mood"] = *u.Mood
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	if u.DurationFormatted != nil {
		fields["duration_formatted"] = *u.DurationFormatted
	}
	if u.IsPremium != nil {
		fields["is_premium"] = *u.IsPremium
	}
	if u.IsFeatured != nil {
		fields["is_featured"] = *u.IsFeatured
	}
	if u.AudioURL != nil {
		fields["audio_url"] = *u.AudioURL
	}
	if u.ThumbnailColor != nil {
		fields["thumbnail_color"] = *u.ThumbnailColor
	}
	if u.FileSize != nil {
		fields["file_size"] = *u.FileSize
	}
	return fields
}

// CatalogStats is the admin statistics summary.
type CatalogStats struct {
	TotalInstrumentals   int64 `json:"total_instrumentals"`
	PremiumInstrumentals int64 `json:"premium_instrumentals"`
	FreeInstrumentals    int64 `json:"free_instrumentals"`
	TotalUsers           int64 `json:"total_users"`
	ActiveSubscriptions  int64 `json:"active_subscriptions"`
}
