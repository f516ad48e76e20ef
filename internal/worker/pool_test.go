package worker

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu       sync.Mutex
	energies map[string]float64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{energies: make(map[string]float64)}
}

func (s *recordingSink) ApplyTrackEnergy(trackID string, energy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.energies[trackID] = energy
}

func (s *recordingSink) get(trackID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.energies[trackID]
	return v, ok
}

func withAnalyzer(t *testing.T, fn func(url string) (float64, error)) {
	t.Helper()
	orig := AnalyzePreviewFunc
	AnalyzePreviewFunc = fn
	t.Cleanup(func() { AnalyzePreviewFunc = orig })
}

func TestPoolAnalyzesSubmittedJobs(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		return 0.75, nil
	})

	sink := newRecordingSink()
	pool := NewPool(sink, 10)
	pool.Start(2)

	pool.Submit(Job{TrackID: "t1", PreviewURL: "http://p/1"})
	pool.Submit(Job{TrackID: "t2", PreviewURL: "http://p/2"})
	pool.Stop()

	for _, id := range []string{"t1", "t2"} {
		if got, ok := sink.get(id); !ok || got != 0.75 {
			t.Errorf("track %s: got (%v, %v), want (0.75, true)", id, got, ok)
		}
	}
}

func TestPoolSkipsFailedAnalysis(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		return 0, errors.New("decode failed")
	})

	sink := newRecordingSink()
	pool := NewPool(sink, 10)
	pool.Start(1)

	pool.Submit(Job{TrackID: "t1", PreviewURL: "http://p/1"})
	pool.Stop()

	if _, ok := sink.get("t1"); ok {
		t.Error("failed analysis still reached the sink")
	}
}

func TestPoolIgnoresJobsWithoutPreview(t *testing.T) {
	called := false
	withAnalyzer(t, func(url string) (float64, error) {
		called = true
		return 1, nil
	})

	sink := newRecordingSink()
	pool := NewPool(sink, 10)
	pool.Start(1)

	pool.Submit(Job{TrackID: "t1"})
	pool.Stop()

	if called {
		t.Error("analyzer invoked without a preview URL")
	}
}

func TestSubmitDropsWhenQueueFull(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		time.Sleep(10 * time.Millisecond)
		return 0.5, nil
	})

	sink := newRecordingSink()
	pool := NewPool(sink, 1)

	// Workers not started yet: the queue holds one job, extras drop.
	pool.Submit(Job{TrackID: "t1", PreviewURL: "http://p/1"})
	pool.Submit(Job{TrackID: "t2", PreviewURL: "http://p/2"})

	pool.Start(1)
	pool.Stop()

	if _, ok := sink.get("t1"); !ok {
		t.Error("queued job was not processed")
	}
	if _, ok := sink.get("t2"); ok {
		t.Error("overflow job was not dropped")
	}
}
