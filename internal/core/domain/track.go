package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Track represents a single trending track in the domain layer.
// Tracks are immutable once fetched; identity is the backend track ID,
// falling back to list position when the backend omits one.
type Track struct {
	ID             string
	Name           string
	Artist         string
	Album          string // optional
	Popularity     int    // 0-100
	Genre          string // optional, empty when the backend has none
	DurationMs     int
	ImageURL       string // optional
	ExternalURL    string
	PreviewURL     string // optional, 30s audio preview
	ReleaseDate    string // YYYY, YYYY-MM or YYYY-MM-DD
	PlaylistSource string // playlist the backend sampled the track from
	Explicit       bool
}

// Popularity tiers as categorized by the trend pipeline.
const (
	TierHot      = "Hot"      // >= 80
	TierTrending = "Trending" // >= 60
	TierRising   = "Rising"   // >= 40
	TierEmerging = "Emerging" // < 40
)

// PopularityTier buckets a track by its popularity score.
func (t Track) PopularityTier() string {
	switch {
	case t.Popularity >= 80:
		return TierHot
	case t.Popularity >= 60:
		return TierTrending
	case t.Popularity >= 40:
		return TierRising
	default:
		return TierEmerging
	}
}

// FormatDuration renders DurationMs as M:SS for display.
func (t Track) FormatDuration() string {
	if t.DurationMs <= 0 {
		return "0:00"
	}
	total := t.DurationMs / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ReleaseYear extracts the release year from the date string, which the
// backend emits as YYYY, YYYY-MM or YYYY-MM-DD. Returns 0 when unknown.
func (t Track) ReleaseYear() int {
	d := t.ReleaseDate
	if d == "" {
		return 0
	}
	if len(d) >= 4 {
		if y, err := strconv.Atoi(d[:4]); err == nil && y >= 1900 {
			return y
		}
	}
	if m := yearPattern.FindString(d); m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	return 0
}

// IsRecentRelease reports whether the track was released within the
// given number of days of now. Unknown or partial dates are not recent.
func (t Track) IsRecentRelease(now time.Time, days int) bool {
	if len(t.ReleaseDate) != 10 {
		return false
	}
	released, err := time.Parse("2006-01-02", t.ReleaseDate)
	if err != nil {
		return false
	}
	return now.Sub(released) <= time.Duration(days)*24*time.Hour
}

// TrendScore is a composite ranking score: popularity boosted for
// recent releases, capped at 100.
func (t Track) TrendScore(now time.Time) float64 {
	score := float64(t.Popularity)
	switch {
	case t.IsRecentRelease(now, 7):
		score *= 1.2
	case t.IsRecentRelease(now, 30):
		score *= 1.1
	}
	if score > 100 {
		score = 100
	}
	return score
}
