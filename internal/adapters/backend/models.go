package backend

import (
	"encoding/json"
	"strconv"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/ports"
)

// wireHealth is the backend's /health payload. The healthy flag lives
// under "status" on the basic API and "api_status" on the enhanced one.
type wireHealth struct {
	Status        string `json:"status"`
	APIStatus     string `json:"api_status"`
	SpotifyAPI    string `json:"spotify_api"`
	OverallStatus string `json:"overall_status"`
	Error         string `json:"error"`
}

func (wh wireHealth) toReport() ports.HealthReport {
	raw := wh.Status
	if raw == "" {
		raw = wh.APIStatus
	}
	return ports.HealthReport{
		APIHealthy:       wh.Status == "healthy" || wh.APIStatus == "healthy",
		SpotifyConnected: wh.SpotifyAPI == "connected",
		FullyOperational: wh.OverallStatus == "fully_operational",
		RawStatus:        raw,
	}
}

// wireTrending is the /trending payload. Tracks stays raw so a missing
// or non-array field degrades to an empty snapshot instead of an error.
type wireTrending struct {
	Tracks      json.RawMessage `json:"tracks"`
	Total       int             `json:"total"`
	LastUpdated string          `json:"last_updated"`
}

// wireTrack is one track as the backend emits it.
type wireTrack struct {
	TrackID        string `json:"track_id"`
	TrackName      string `json:"track_name"`
	Artist         string `json:"artist"`
	Album          string `json:"album"`
	Popularity     int    `json:"popularity"`
	Genre          string `json:"genre"`
	DurationMs     int    `json:"duration_ms"`
	ImageURL       string `json:"image_url"`
	SpotifyURL     string `json:"spotify_url"`
	PreviewURL     string `json:"preview_url"`
	ReleaseDate    string `json:"release_date"`
	PlaylistSource string `json:"playlist_source"`
	Explicit       bool   `json:"explicit"`
}

func (wt wireTrending) toDomain() []domain.Track {
	if len(wt.Tracks) == 0 {
		return []domain.Track{}
	}

	var raw []wireTrack
	if err := json.Unmarshal(wt.Tracks, &raw); err != nil {
		// Non-array tracks field: empty result, not an error.
		return []domain.Track{}
	}

	tracks := make([]domain.Track, 0, len(raw))
	for i, t := range raw {
		tracks = append(tracks, t.toDomain(i))
	}
	return tracks
}

// toDomain maps a wire track, cleaning display names and normalizing
// the genre. position is the list index used as the identity fallback.
func (t wireTrack) toDomain(position int) domain.Track {
	id := t.TrackID
	if id == "" {
		id = strconv.Itoa(position)
	}
	return domain.Track{
		ID:             id,
		Name:           cleanTrackName(t.TrackName),
		Artist:         cleanArtistName(t.Artist),
		Album:          t.Album,
		Popularity:     t.Popularity,
		Genre:          normalizeGenre(t.Genre),
		DurationMs:     t.DurationMs,
		ImageURL:       t.ImageURL,
		ExternalURL:    t.SpotifyURL,
		PreviewURL:     t.PreviewURL,
		ReleaseDate:    t.ReleaseDate,
		PlaylistSource: t.PlaylistSource,
		Explicit:       t.Explicit,
	}
}

// wireAnalytics is the /analytics payload with its summary wrapper.
type wireAnalytics struct {
	Summary wireSummary `json:"summary"`
}

type wireSummary struct {
	TotalTracks   int            `json:"total_tracks"`
	UniqueArtists int            `json:"unique_artists"`
	AvgPopularity float64        `json:"avg_popularity"`
	TopTrack      string         `json:"top_track"`
	TopArtist     string         `json:"top_artist"`
	TopArtists    map[string]int `json:"top_artists"`
	DataSources   map[string]int `json:"data_sources"`
}

func (ws wireSummary) toDomain() domain.AnalyticsSummary {
	return domain.AnalyticsSummary{
		TotalTracks:   ws.TotalTracks,
		UniqueArtists: ws.UniqueArtists,
		AvgPopularity: ws.AvgPopularity,
		TopTrack:      ws.TopTrack,
		TopArtist:     ws.TopArtist,
		TopArtists:    ws.TopArtists,
		DataSources:   ws.DataSources,
	}
}
