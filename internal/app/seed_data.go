/**
 * @description
 * Sample catalog used by the seed endpoint. Audio URLs point at
 * royalty-free placeholder tracks.
 */
package app

import "github.com/sadaa/instrumental-service/internal/domain"

var sampleInstrumentals = []domain.Instrumental{
	// Featured
	{Title: "Mawla Ya Salli - Peaceful", Mood: "Spiritual", Duration: 245, DurationFormatted: "4:05", IsPremium: false, IsFeatured: true, ThumbnailColor: "#4A3463", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3", FileSize: 4500000},
	{Title: "Nasheed of Dawn", Mood: "Calm", Duration: 312, DurationFormatted: "5:12", IsPremium: true, IsFeatured: true, ThumbnailColor: "#2D5A4A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3", FileSize: 5200000},

	// Free
	{Title: "Morning Dhikr", Mood: "Calm", Duration: 180, DurationFormatted: "3:00", ThumbnailColor: "#5A4A63", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3", FileSize: 3200000},
	{Title: "Peaceful Heart", Mood: "Soft", Duration: 210, DurationFormatted: "3:30", ThumbnailColor: "#4A5A63", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3", FileSize: 3800000},
	{Title: "Blessed Sunrise", Mood: "Spiritual", Duration: 195, DurationFormatted: "3:15", ThumbnailColor: "#634A5A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3", FileSize: 3500000},
	{Title: "Gentle Breeze", Mood: "Calm", Duration: 240, DurationFormatted: "4:00", ThumbnailColor: "#4A6357", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-6.mp3", FileSize: 4200000},
	{Title: "Silent Prayer", Mood: "Soft", Duration: 165, DurationFormatted: "2:45", ThumbnailColor: "#574A63", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-7.mp3", FileSize: 2900000},

	// Premium
	{Title: "Ya Sahib al-Taj", Mood: "Spiritual", Duration: 420, DurationFormatted: "7:00", IsPremium: true, ThumbnailColor: "#634A4A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-8.mp3", FileSize: 7200000},
	{Title: "Drums of Devotion", Mood: "Drums", Duration: 285, DurationFormatted: "4:45", IsPremium: true, ThumbnailColor: "#8B5A2B", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-9.mp3", FileSize: 5000000},
	{Title: "Energetic Praise", Mood: "Energetic", Duration: 198, DurationFormatted: "3:18", IsPremium: true, ThumbnailColor: "#6B4A3A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-10.mp3", FileSize: 3600000},
	{Title: "Sacred Rhythm", Mood: "Drums", Duration: 330, DurationFormatted: "5:30", IsPremium: true, ThumbnailColor: "#4A4A63", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-11.mp3", FileSize: 5800000},
	{Title: "Night of Peace", Mood: "Calm", Duration: 480, DurationFormatted: "8:00", IsPremium: true, ThumbnailColor: "#2A3A4A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-12.mp3", FileSize: 8200000},
	{Title: "Joyful Celebration", Mood: "Energetic", Duration: 252, DurationFormatted: "4:12", IsPremium: true, ThumbnailColor: "#5A3A4A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-13.mp3", FileSize: 4500000},
	{Title: "Soft Meditation", Mood: "Soft", Duration: 360, DurationFormatted: "6:00", IsPremium: true, ThumbnailColor: "#3A4A5A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-14.mp3", FileSize: 6300000},
	{Title: "Divine Harmony", Mood: "Spiritual", Duration: 390, DurationFormatted: "6:30", IsPremium: true, ThumbnailColor: "#4A3A5A", AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-15.mp3", FileSize: 6800000},
}
