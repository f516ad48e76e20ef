package ports

import (
	"context"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
)

// HealthReport is the parsed result of a backend health probe.
type HealthReport struct {
	APIHealthy       bool
	SpotifyConnected bool
	FullyOperational bool
	RawStatus        string
}

// Reachable applies the connectivity predicate: the API must report
// healthy, and either the Spotify upstream is connected or the backend
// declares itself fully operational.
func (r HealthReport) Reachable() bool {
	return r.APIHealthy && (r.SpotifyConnected || r.FullyOperational)
}

// TrendProvider is the driven port for the music trend backend.
type TrendProvider interface {
	CheckHealth(ctx context.Context) (HealthReport, error)
	FetchTrending(ctx context.Context) ([]domain.Track, error)
	FetchAnalytics(ctx context.Context) (domain.AnalyticsSummary, error)
}

// FeatureSink receives results from the preview analyzer.
type FeatureSink interface {
	ApplyTrackEnergy(trackID string, energy float64)
}
