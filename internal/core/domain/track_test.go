package domain

import (
	"testing"
	"time"
)

func TestPopularityTier(t *testing.T) {
	tests := []struct {
		popularity int
		want       string
	}{
		{95, TierHot},
		{80, TierHot},
		{79, TierTrending},
		{60, TierTrending},
		{59, TierRising},
		{40, TierRising},
		{39, TierEmerging},
		{0, TierEmerging},
	}

	for _, tt := range tests {
		tr := Track{Popularity: tt.popularity}
		if got := tr.PopularityTier(); got != tt.want {
			t.Errorf("popularity %d: got %q, want %q", tt.popularity, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{200000, "3:20"},
		{61000, "1:01"},
		{59999, "0:59"},
		{0, "0:00"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		tr := Track{DurationMs: tt.ms}
		if got := tr.FormatDuration(); got != tt.want {
			t.Errorf("%dms: got %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-15", 2024},
		{"2024-01", 2024},
		{"2024", 2024},
		{"released 1999 (deluxe)", 1999},
		{"", 0},
		{"soon", 0},
	}

	for _, tt := range tests {
		tr := Track{ReleaseDate: tt.date}
		if got := tr.ReleaseYear(); got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestTrendScore(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		track Track
		want  float64
	}{
		{
			name:  "no release date is raw popularity",
			track: Track{Popularity: 70},
			want:  70,
		},
		{
			name:  "very recent release gets 20 percent boost",
			track: Track{Popularity: 70, ReleaseDate: "2024-06-12"},
			want:  70 * 1.2,
		},
		{
			name:  "recent release gets 10 percent boost",
			track: Track{Popularity: 70, ReleaseDate: "2024-05-25"},
			want:  70 * 1.1,
		},
		{
			name:  "boost is capped at 100",
			track: Track{Popularity: 95, ReleaseDate: "2024-06-14"},
			want:  100,
		},
		{
			name:  "old release unboosted",
			track: Track{Popularity: 70, ReleaseDate: "2020-01-01"},
			want:  70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.track.TrendScore(now)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
