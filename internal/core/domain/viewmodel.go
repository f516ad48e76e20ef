package domain

import "time"

// GenreBucket is one bar of the genre histogram.
type GenreBucket struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// TrendPoint is one point of the short-term popularity trend line,
// labeled with a clock time.
type TrendPoint struct {
	Label      string  `json:"label"`
	Popularity float64 `json:"popularity"`
}

// ArtistRank is one entry of the top-artist ranking.
type ArtistRank struct {
	Artist     string `json:"artist"`
	Popularity int    `json:"popularity"` // summed over the artist's tracks
}

// FeaturePercentiles summarizes analyzed preview energies.
type FeaturePercentiles struct {
	Samples int     `json:"samples"`
	P25     float64 `json:"p25"`
	P50     float64 `json:"p50"`
	P75     float64 `json:"p75"`
}

// ViewModel is the single immutable value the render layer consumes.
// Every pipeline event (health tick, fetch result, analyzer result)
// produces a fresh ViewModel; a published value is never mutated.
type ViewModel struct {
	// SnapshotID changes whenever the underlying snapshot is replaced,
	// so consumers can key re-renders on it.
	SnapshotID string `json:"snapshot_id"`

	State       ConnectionState `json:"-"`
	Connection  string          `json:"connection"`
	LastChecked time.Time       `json:"last_checked"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// HealthError is set when the last health probe failed; FetchError
	// when the last snapshot fetch failed. Both are display strings.
	HealthError string `json:"health_error,omitempty"`
	FetchError  string `json:"fetch_error,omitempty"`

	Tracks  []Track           `json:"tracks"`
	Summary *AnalyticsSummary `json:"summary,omitempty"`

	// Derived datasets, recomputed on every snapshot change.
	Genres     []GenreBucket       `json:"genres"`
	Trend      []TrendPoint        `json:"trend"`
	TopArtists []ArtistRank        `json:"top_artists"`
	Energy     *FeaturePercentiles `json:"energy,omitempty"`
}
