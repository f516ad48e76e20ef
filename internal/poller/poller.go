// Package poller runs the two periodic loops of the pipeline: the
// connectivity probe and the snapshot refresh. Loops are explicit tasks
// cancelled through contexts, never ambient timers, so tests can drive
// ticks deterministically.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
)

// Service is the slice of the dashboard the poller drives.
type Service interface {
	ProbeHealth(ctx context.Context) domain.ConnectionState
	RefreshSnapshot(ctx context.Context)
}

// Poller owns the health loop and manages the refresh loop's lifetime:
// started on transition to Connected, cancelled on Disconnected, and
// restarted fresh on reconnection.
type Poller struct {
	svc             Service
	healthInterval  time.Duration
	refreshInterval time.Duration

	mu            sync.Mutex
	cancelRefresh context.CancelFunc
	refreshDone   chan struct{}
}

// New constructs a Poller.
func New(svc Service, healthInterval, refreshInterval time.Duration) *Poller {
	return &Poller{
		svc:             svc,
		healthInterval:  healthInterval,
		refreshInterval: refreshInterval,
	}
}

// Run probes once immediately, then on every health interval until ctx
// is cancelled. It blocks; run it in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.HealthTick(ctx)

	ticker := time.NewTicker(p.healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.stopRefresh()
			return
		case <-ticker.C:
			p.HealthTick(ctx)
		}
	}
}

// HealthTick runs one probe and reconciles the refresh loop with the
// resulting connection state.
func (p *Poller) HealthTick(ctx context.Context) {
	switch p.svc.ProbeHealth(ctx) {
	case domain.Connected:
		p.startRefresh(ctx)
	default:
		p.stopRefresh()
	}
}

// RefreshActive reports whether the refresh loop is currently running.
func (p *Poller) RefreshActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelRefresh != nil
}

// startRefresh launches the refresh loop if it is not already running.
// The first refresh fires immediately so a reconnect repopulates the
// dashboard without waiting a full interval.
func (p *Poller) startRefresh(parent context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelRefresh != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	p.cancelRefresh = cancel
	p.refreshDone = done

	go func() {
		defer close(done)

		p.svc.RefreshSnapshot(ctx)
		ticker := time.NewTicker(p.refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.svc.RefreshSnapshot(ctx)
			}
		}
	}()

	log.Printf("poller: refresh loop started (every %s)", p.refreshInterval)
}

// stopRefresh cancels the refresh loop and waits for it to exit.
func (p *Poller) stopRefresh() {
	p.mu.Lock()
	cancel := p.cancelRefresh
	done := p.refreshDone
	p.cancelRefresh = nil
	p.refreshDone = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Printf("poller: refresh loop stopped")
}
