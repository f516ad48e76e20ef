// Package worker provides background analysis of track audio previews.
package worker

import (
	"log"
	"sync"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/ports"
)

// Job is one preview to analyze.
type Job struct {
	TrackID    string
	PreviewURL string
}

// Pool manages background workers for preview analysis. Submission
// never blocks; jobs are dropped when the queue is full, since a missed
// energy estimate only thins the percentile dataset.
type Pool struct {
	sink ports.FeatureSink
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a worker pool feeding results into sink.
func NewPool(sink ports.FeatureSink, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{sink: sink, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for workers to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping analysis job for %s", job.TrackID)
	}
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		return
	}

	energy, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis for %s failed: %v", job.TrackID, err)
		return
	}

	p.sink.ApplyTrackEnergy(job.TrackID, energy)
}
