package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes results-refresh jobs to a fixed set of workers using
// consistent hashing on the submission ID, so recomputes triggered by votes
// on the same submission stay ordered.
type Dispatcher struct {
	workers   []chan string
	analytics ports.AnalyticsService
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, analytics ports.AnalyticsService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan string, numWorkers),
		analytics: analytics,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// RefreshResults enqueues a recompute for the submission's ranking. The call
// is non-blocking up to channelBuffer capacity; beyond that the job is
// dropped, since the cache TTL bounds staleness anyway.
func (d *Dispatcher) RefreshResults(submissionID string) {
	idx := d.shardIndex(submissionID)
	select {
	case d.workers[idx] <- submissionID:
		metrics.ResultsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("submission_id", submissionID).Int("worker_id", idx).Msg("refresh queue full, job dropped")
	}
}

// shardIndex maps a submission ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(submissionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(submissionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case submissionID, ok := <-ch:
			if !ok {
				return
			}
			metrics.ResultsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			result := "ok"
			if _, err := d.analytics.Recompute(ctx); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("submission_id", submissionID).
					Int("worker_id", id).
					Msg("results recompute failed")
			}
			metrics.ResultsRecomputeDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
