// Package services holds the dashboard state machine. All state lives
// behind one lock and every event publishes a fresh immutable view
// model, reducer style; readers only ever see complete values.
package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/metrics"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/ports"
)

// AnalyzeFunc submits a track preview for background analysis.
type AnalyzeFunc func(trackID, previewURL string)

// Dashboard coordinates health probes and snapshot fetches into one
// coherent view model.
type Dashboard struct {
	provider ports.TrendProvider
	analyze  AnalyzeFunc // optional
	clock    func() time.Time

	mu sync.Mutex
	vm *domain.ViewModel

	// Per-kind monotonic sequence numbers assigned at dispatch. A
	// result older than the last applied one is dropped, so an
	// out-of-order response can never regress the snapshot.
	trackSeq          uint64
	analyticsSeq      uint64
	appliedTrackSeq   uint64
	appliedAnalytics  uint64
	trackInFlight     bool
	analyticsInFlight bool

	// energies holds analyzer results keyed by track ID; cleared with
	// every snapshot replacement so stale analyses never leak through.
	energies map[string]float64
}

// compile-time interface assertion
var _ ports.FeatureSink = (*Dashboard)(nil)

// NewDashboard constructs the service. analyze may be nil when the
// preview analyzer is disabled.
func NewDashboard(provider ports.TrendProvider, analyze AnalyzeFunc) *Dashboard {
	d := &Dashboard{
		provider: provider,
		analyze:  analyze,
		clock:    time.Now,
		energies: make(map[string]float64),
	}

	now := d.clock()
	d.vm = &domain.ViewModel{
		SnapshotID: uuid.NewString(),
		State:      domain.ConnectionUnknown,
		Connection: domain.ConnectionUnknown.String(),
		UpdatedAt:  now,
		Tracks:     []domain.Track{},
		Genres:     metrics.GenreHistogram(nil),
		Trend:      metrics.PopularityTrend(nil, nil, now),
		TopArtists: metrics.TopArtists(nil),
	}
	return d
}

// ViewModel returns the current immutable view model.
func (d *Dashboard) ViewModel() *domain.ViewModel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vm
}

// State returns the current connection state.
func (d *Dashboard) State() domain.ConnectionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vm.State
}

// ProbeHealth runs one health check and applies the resulting
// connection transition. LastChecked is updated unconditionally, even
// on failure. Returns the state after the probe.
func (d *Dashboard) ProbeHealth(ctx context.Context) domain.ConnectionState {
	report, err := d.provider.CheckHealth(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock()
	next := *d.vm
	next.LastChecked = now

	switch {
	case err != nil:
		next.HealthError = err.Error()
		d.demote(&next)
	case !report.Reachable():
		next.HealthError = fmt.Sprintf("backend not ready (status %q)", report.RawStatus)
		d.demote(&next)
	default:
		next.HealthError = ""
		next.State = domain.Connected
		next.Connection = domain.Connected.String()
	}

	d.publish(&next, now)
	return next.State
}

// demote moves the view to Disconnected and clears the snapshot: the
// next successful probe starts a fresh fetch cycle rather than showing
// data from a backend we can no longer reach.
func (d *Dashboard) demote(next *domain.ViewModel) {
	if next.State == domain.Connected {
		log.Printf("WARN service: backend lost, clearing snapshot")
	}
	next.State = domain.Disconnected
	next.Connection = domain.Disconnected.String()

	if len(next.Tracks) > 0 || next.Summary != nil {
		next.SnapshotID = uuid.NewString()
		next.Tracks = []domain.Track{}
		next.Summary = nil
		next.FetchError = ""
		d.energies = make(map[string]float64)
		d.rederive(next)
	}
}

// RefreshSnapshot runs one fetch cycle: trending, then analytics. It
// is a no-op unless Connected (no network call, no state change) and
// per kind at most one fetch is ever in flight, so overlapping cycles
// (periodic tick plus a forced refresh) cannot race each other. The
// caller decides whether to run it in its own goroutine; the health
// loop is never blocked by it.
func (d *Dashboard) RefreshSnapshot(ctx context.Context) {
	d.mu.Lock()
	if d.vm.State != domain.Connected {
		d.mu.Unlock()
		return
	}

	var trackSeq, analyticsSeq uint64
	dispatchTracks := !d.trackInFlight
	if dispatchTracks {
		d.trackInFlight = true
		d.trackSeq++
		trackSeq = d.trackSeq
	}
	dispatchAnalytics := !d.analyticsInFlight
	if dispatchAnalytics {
		d.analyticsInFlight = true
		d.analyticsSeq++
		analyticsSeq = d.analyticsSeq
	}
	d.mu.Unlock()

	if dispatchTracks {
		tracks, err := d.provider.FetchTrending(ctx)
		d.applyTracks(trackSeq, tracks, err)
	}
	if dispatchAnalytics {
		summary, err := d.provider.FetchAnalytics(ctx)
		d.applyAnalytics(analyticsSeq, summary, err)
	}
}

func (d *Dashboard) applyTracks(seq uint64, tracks []domain.Track, err error) {
	d.mu.Lock()

	d.trackInFlight = false
	// Drop stale results: an older response must never overwrite a
	// newer snapshot, and a result landing after a disconnect must not
	// resurrect cleared data.
	if seq <= d.appliedTrackSeq || d.vm.State != domain.Connected {
		d.mu.Unlock()
		return
	}
	d.appliedTrackSeq = seq

	now := d.clock()
	next := *d.vm

	if err != nil {
		// Fetch failures are transient: surface the message, keep the
		// previous snapshot, leave connectivity to the health probe.
		next.FetchError = err.Error()
		d.publish(&next, now)
		d.mu.Unlock()
		log.Printf("WARN service: trending fetch failed: %v", err)
		return
	}

	if tracks == nil {
		tracks = []domain.Track{}
	}
	next.FetchError = ""
	next.SnapshotID = uuid.NewString()
	next.Tracks = tracks
	d.energies = make(map[string]float64)
	d.rederive(&next)
	d.publish(&next, now)

	analyze := d.analyze
	d.mu.Unlock()

	if analyze != nil {
		for _, t := range tracks {
			if t.PreviewURL != "" {
				analyze(t.ID, t.PreviewURL)
			}
		}
	}
}

func (d *Dashboard) applyAnalytics(seq uint64, summary domain.AnalyticsSummary, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.analyticsInFlight = false
	if seq <= d.appliedAnalytics || d.vm.State != domain.Connected {
		return
	}
	d.appliedAnalytics = seq

	now := d.clock()
	next := *d.vm

	if err != nil {
		next.FetchError = err.Error()
		d.publish(&next, now)
		log.Printf("WARN service: analytics fetch failed: %v", err)
		return
	}

	next.FetchError = ""
	s := summary
	next.Summary = &s
	d.rederive(&next)
	d.publish(&next, now)
}

// ApplyTrackEnergy folds one analyzer result into the view model.
// Results for tracks no longer in the snapshot are dropped.
func (d *Dashboard) ApplyTrackEnergy(trackID string, energy float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := false
	for _, t := range d.vm.Tracks {
		if t.ID == trackID {
			found = true
			break
		}
	}
	if !found {
		return
	}

	d.energies[trackID] = energy

	next := *d.vm
	next.Energy = metrics.FeaturePercentiles(d.energyValues())
	d.publish(&next, d.clock())
}

// rederive recomputes the derived datasets from the snapshot carried by
// next. Caller holds the lock.
func (d *Dashboard) rederive(next *domain.ViewModel) {
	now := d.clock()
	next.Genres = metrics.GenreHistogram(next.Tracks)
	next.Trend = metrics.PopularityTrend(next.Tracks, next.Summary, now)
	next.TopArtists = metrics.TopArtists(next.Tracks)
	next.Energy = metrics.FeaturePercentiles(d.energyValues())
}

func (d *Dashboard) energyValues() []float64 {
	if len(d.energies) == 0 {
		return nil
	}
	vals := make([]float64, 0, len(d.energies))
	for _, v := range d.energies {
		vals = append(vals, v)
	}
	return vals
}

// publish installs next as the current view model. Caller holds the lock.
func (d *Dashboard) publish(next *domain.ViewModel, now time.Time) {
	next.UpdatedAt = now
	d.vm = next
}
