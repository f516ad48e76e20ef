package domain

// AnalyticsSummary is the server-side analytics snapshot. It is treated
// as opaque: the dashboard never recomputes these numbers, it only
// displays them alongside the client-derived datasets.
type AnalyticsSummary struct {
	TotalTracks   int
	UniqueArtists int
	AvgPopularity float64

	// Enriched fields the backend may include.
	TopTrack    string
	TopArtist   string
	TopArtists  map[string]int // artist -> track count
	DataSources map[string]int // source playlist -> track count
}
