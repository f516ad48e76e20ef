// Package metrics derives chart-ready datasets from the current
// snapshot. Everything here is pure: same inputs, same outputs, no I/O.
package metrics

import (
	"hash/fnv"
	"math"
	"sort"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
)

const (
	trendPoints     = 6
	trendStep       = 10 * time.Minute
	trendJitterMax  = 5.0
	topArtistsLimit = 10

	// Fallback average when neither tracks nor a summary exist.
	defaultAvgPopularity = 85
)

// placeholderGenres is the fixed histogram shown before the first
// snapshot arrives.
var placeholderGenres = []domain.GenreBucket{
	{Genre: "Pop", Count: 35},
	{Genre: "Hip-Hop", Count: 25},
	{Genre: "Rock", Count: 20},
	{Genre: "Electronic", Count: 15},
	{Genre: "Other", Count: 5},
}

// placeholderTrendDeltas shape the fallback trend line; each delta is
// added to the summary average, the last point landing exactly on it.
var placeholderTrendDeltas = [trendPoints]float64{-12, -8, -9, -5, -2, 0}

// GenreHistogram counts tracks per genre. Tracks without a genre are
// bucketed under "Other". With no tracks at all it returns the fixed
// placeholder distribution. Buckets are ordered by count descending,
// then by name, so equal inputs render identically.
func GenreHistogram(tracks []domain.Track) []domain.GenreBucket {
	if len(tracks) == 0 {
		out := make([]domain.GenreBucket, len(placeholderGenres))
		copy(out, placeholderGenres)
		return out
	}

	counts := make(map[string]int)
	for _, t := range tracks {
		g := t.Genre
		if g == "" {
			g = "Other"
		}
		counts[g]++
	}

	buckets := make([]domain.GenreBucket, 0, len(counts))
	for g, n := range counts {
		buckets = append(buckets, domain.GenreBucket{Genre: g, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Genre < buckets[j].Genre
	})
	return buckets
}

// PopularityTrend synthesizes the short-term trend line: six points at
// ten-minute intervals ending at now. With tracks present the points
// wobble (±5) around the mean popularity; the wobble is seeded from the
// inputs, not the wall clock, so the function stays referentially
// stable. This is a cosmetic placeholder, not a real time series.
func PopularityTrend(tracks []domain.Track, summary *domain.AnalyticsSummary, now time.Time) []domain.TrendPoint {
	points := make([]domain.TrendPoint, trendPoints)
	start := now.Add(-trendStep * time.Duration(trendPoints-1))

	if len(tracks) == 0 {
		avg := float64(defaultAvgPopularity)
		if summary != nil && summary.AvgPopularity > 0 {
			avg = summary.AvgPopularity
		}
		for i := range points {
			points[i] = domain.TrendPoint{
				Label:      start.Add(trendStep * time.Duration(i)).Format("15:04"),
				Popularity: clampPopularity(avg + placeholderTrendDeltas[i]),
			}
		}
		return points
	}

	var sum int
	for _, t := range tracks {
		sum += t.Popularity
	}
	mean := float64(sum) / float64(len(tracks))

	for i := range points {
		points[i] = domain.TrendPoint{
			Label:      start.Add(trendStep * time.Duration(i)).Format("15:04"),
			Popularity: clampPopularity(mean + jitter(tracks, i)),
		}
	}
	return points
}

// jitter returns a deterministic value in [-trendJitterMax, trendJitterMax]
// derived from the track list and the point's slot.
func jitter(tracks []domain.Track, slot int) float64 {
	h := fnv.New64a()
	for _, t := range tracks {
		h.Write([]byte(t.ID))
		h.Write([]byte{byte(t.Popularity)})
	}
	h.Write([]byte{byte(slot)})
	frac := float64(h.Sum64()%10001) / 10000 // [0, 1]
	return frac*2*trendJitterMax - trendJitterMax
}

// TopArtists sums popularity per artist across the snapshot, sorted
// strictly descending (ties broken by name) and truncated to ten.
func TopArtists(tracks []domain.Track) []domain.ArtistRank {
	totals := make(map[string]int)
	for _, t := range tracks {
		if t.Artist == "" {
			continue
		}
		totals[t.Artist] += t.Popularity
	}

	ranks := make([]domain.ArtistRank, 0, len(totals))
	for artist, pop := range totals {
		ranks = append(ranks, domain.ArtistRank{Artist: artist, Popularity: pop})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Popularity != ranks[j].Popularity {
			return ranks[i].Popularity > ranks[j].Popularity
		}
		return ranks[i].Artist < ranks[j].Artist
	})

	if len(ranks) > topArtistsLimit {
		ranks = ranks[:topArtistsLimit]
	}
	return ranks
}

// FeaturePercentiles summarizes analyzed preview energies. Returns nil
// until at least one sample exists.
func FeaturePercentiles(energies []float64) *domain.FeaturePercentiles {
	if len(energies) == 0 {
		return nil
	}
	sorted := make([]float64, len(energies))
	copy(sorted, energies)
	sort.Float64s(sorted)

	return &domain.FeaturePercentiles{
		Samples: len(sorted),
		P25:     percentile(sorted, 0.25),
		P50:     percentile(sorted, 0.50),
		P75:     percentile(sorted, 0.75),
	}
}

// percentile linearly interpolates over an already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func clampPopularity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
