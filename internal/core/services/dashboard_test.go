package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/ports"
)

// --- Mocks ---

type mockProvider struct {
	health     ports.HealthReport
	healthErr  error
	tracks     []domain.Track
	tracksErr  error
	summary    domain.AnalyticsSummary
	summaryErr error

	healthCalls    int
	trendingCalls  int
	analyticsCalls int
}

func (m *mockProvider) CheckHealth(ctx context.Context) (ports.HealthReport, error) {
	m.healthCalls++
	return m.health, m.healthErr
}

func (m *mockProvider) FetchTrending(ctx context.Context) ([]domain.Track, error) {
	m.trendingCalls++
	return m.tracks, m.tracksErr
}

func (m *mockProvider) FetchAnalytics(ctx context.Context) (domain.AnalyticsSummary, error) {
	m.analyticsCalls++
	return m.summary, m.summaryErr
}

var connectedReport = ports.HealthReport{APIHealthy: true, SpotifyConnected: true, RawStatus: "healthy"}

func newTestDashboard(p *mockProvider) *Dashboard {
	d := NewDashboard(p, nil)
	d.clock = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return d
}

// --- Tests ---

func TestProbeHealthTransitions(t *testing.T) {
	tests := []struct {
		name      string
		health    ports.HealthReport
		healthErr error
		want      domain.ConnectionState
	}{
		{
			name:   "healthy and spotify connected",
			health: connectedReport,
			want:   domain.Connected,
		},
		{
			name:   "healthy and fully operational",
			health: ports.HealthReport{APIHealthy: true, FullyOperational: true},
			want:   domain.Connected,
		},
		{
			name:   "healthy but upstream down",
			health: ports.HealthReport{APIHealthy: true},
			want:   domain.Disconnected,
		},
		{
			name:   "unhealthy",
			health: ports.HealthReport{RawStatus: "unhealthy"},
			want:   domain.Disconnected,
		},
		{
			name:      "probe error",
			healthErr: errors.New("connection refused"),
			want:      domain.Disconnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProvider{health: tt.health, healthErr: tt.healthErr}
			d := newTestDashboard(p)

			got := d.ProbeHealth(context.Background())
			if got != tt.want {
				t.Errorf("state: got %v, want %v", got, tt.want)
			}

			vm := d.ViewModel()
			if vm.LastChecked.IsZero() {
				t.Error("LastChecked not updated")
			}
			if tt.want == domain.Connected && vm.HealthError != "" {
				t.Errorf("unexpected health error %q", vm.HealthError)
			}
			if tt.want == domain.Disconnected && vm.HealthError == "" {
				t.Error("expected a health error message")
			}
		})
	}
}

func TestRefreshSnapshotNoopUnlessConnected(t *testing.T) {
	p := &mockProvider{}
	d := newTestDashboard(p)

	before := d.ViewModel()
	d.RefreshSnapshot(context.Background())

	if p.trendingCalls != 0 || p.analyticsCalls != 0 {
		t.Errorf("expected no fetches, got trending=%d analytics=%d", p.trendingCalls, p.analyticsCalls)
	}
	if d.ViewModel() != before {
		t.Error("view model changed on a no-op refresh")
	}
}

func TestRefreshCycle(t *testing.T) {
	p := &mockProvider{
		health: connectedReport,
		tracks: []domain.Track{
			{ID: "t1", Artist: "A", Popularity: 80},
			{ID: "t2", Artist: "B", Popularity: 60},
		},
		summary: domain.AnalyticsSummary{TotalTracks: 2, UniqueArtists: 2, AvgPopularity: 70},
	}
	d := newTestDashboard(p)

	if got := d.ProbeHealth(context.Background()); got != domain.Connected {
		t.Fatalf("state after probe: got %v, want connected", got)
	}
	d.RefreshSnapshot(context.Background())

	vm := d.ViewModel()
	if len(vm.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(vm.Tracks))
	}
	if vm.Summary == nil || vm.Summary.TotalTracks != 2 {
		t.Errorf("summary not applied: %+v", vm.Summary)
	}

	wantRanking := []domain.ArtistRank{
		{Artist: "A", Popularity: 80},
		{Artist: "B", Popularity: 60},
	}
	if len(vm.TopArtists) != len(wantRanking) {
		t.Fatalf("got %d ranked artists, want %d", len(vm.TopArtists), len(wantRanking))
	}
	for i, want := range wantRanking {
		if vm.TopArtists[i] != want {
			t.Errorf("rank %d: got %+v, want %+v", i, vm.TopArtists[i], want)
		}
	}
}

func TestDisconnectClearsSnapshot(t *testing.T) {
	p := &mockProvider{
		health:  connectedReport,
		tracks:  []domain.Track{{ID: "t1", Artist: "A", Genre: "Pop", Popularity: 80}},
		summary: domain.AnalyticsSummary{TotalTracks: 1},
	}
	d := newTestDashboard(p)

	d.ProbeHealth(context.Background())
	d.RefreshSnapshot(context.Background())
	populated := d.ViewModel()
	if len(populated.Tracks) != 1 {
		t.Fatalf("setup failed: %d tracks", len(populated.Tracks))
	}

	p.healthErr = errors.New("connection refused")
	if got := d.ProbeHealth(context.Background()); got != domain.Disconnected {
		t.Fatalf("state: got %v, want disconnected", got)
	}

	vm := d.ViewModel()
	if len(vm.Tracks) != 0 {
		t.Errorf("tracks not cleared: %d left", len(vm.Tracks))
	}
	if vm.Summary != nil {
		t.Errorf("summary not cleared: %+v", vm.Summary)
	}
	if vm.SnapshotID == populated.SnapshotID {
		t.Error("snapshot id unchanged after clear")
	}
	// Derived datasets fall back to placeholders.
	if len(vm.Genres) != 5 {
		t.Errorf("expected placeholder histogram, got %v", vm.Genres)
	}

	// The cleared state must not have leaked into the older view model.
	if len(populated.Tracks) != 1 {
		t.Error("published view model was mutated")
	}
}

func TestFetchFailureKeepsSnapshotAndConnection(t *testing.T) {
	p := &mockProvider{
		health:  connectedReport,
		tracks:  []domain.Track{{ID: "t1", Artist: "A", Popularity: 80}},
		summary: domain.AnalyticsSummary{TotalTracks: 1},
	}
	d := newTestDashboard(p)

	d.ProbeHealth(context.Background())
	d.RefreshSnapshot(context.Background())

	p.tracksErr = errors.New("trending: status 500")
	p.summaryErr = errors.New("analytics: status 500")
	d.RefreshSnapshot(context.Background())

	vm := d.ViewModel()
	if vm.State != domain.Connected {
		t.Errorf("state: got %v, want connected", vm.State)
	}
	if len(vm.Tracks) != 1 {
		t.Errorf("previous snapshot lost: %d tracks", len(vm.Tracks))
	}
	if vm.FetchError == "" {
		t.Error("expected a fetch error message")
	}
}

func TestStaleTrackResultIgnored(t *testing.T) {
	p := &mockProvider{
		health: connectedReport,
		tracks: []domain.Track{{ID: "t1", Artist: "A", Popularity: 80}},
	}
	d := newTestDashboard(p)

	d.ProbeHealth(context.Background())
	d.RefreshSnapshot(context.Background())
	current := d.ViewModel()

	// A response from an older dispatch arrives late.
	d.applyTracks(0, []domain.Track{{ID: "old", Artist: "Z", Popularity: 1}}, nil)

	vm := d.ViewModel()
	if vm.SnapshotID != current.SnapshotID {
		t.Error("stale result replaced the snapshot")
	}
	if len(vm.Tracks) != 1 || vm.Tracks[0].ID != "t1" {
		t.Errorf("unexpected tracks after stale apply: %+v", vm.Tracks)
	}
}

func TestApplyTrackEnergy(t *testing.T) {
	p := &mockProvider{
		health: connectedReport,
		tracks: []domain.Track{{ID: "t1", Artist: "A", Popularity: 80, PreviewURL: "http://p/1"}},
	}

	var submitted []string
	d := NewDashboard(p, nil)
	d.analyze = func(trackID, previewURL string) {
		submitted = append(submitted, trackID)
	}

	d.ProbeHealth(context.Background())
	d.RefreshSnapshot(context.Background())

	if len(submitted) != 1 || submitted[0] != "t1" {
		t.Errorf("expected preview submission for t1, got %v", submitted)
	}

	d.ApplyTrackEnergy("t1", 0.42)
	vm := d.ViewModel()
	if vm.Energy == nil || vm.Energy.Samples != 1 {
		t.Fatalf("energy not applied: %+v", vm.Energy)
	}
	if vm.Energy.P50 != 0.42 {
		t.Errorf("p50: got %v, want 0.42", vm.Energy.P50)
	}

	// Results for tracks outside the snapshot are dropped.
	d.ApplyTrackEnergy("ghost", 0.9)
	if d.ViewModel().Energy.Samples != 1 {
		t.Error("energy for unknown track was applied")
	}
}
