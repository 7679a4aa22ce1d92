package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/core/domain"
)

type countingAnalytics struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (a *countingAnalytics) Results(context.Context) (*domain.Results, error) {
	return &domain.Results{}, nil
}

func (a *countingAnalytics) Recompute(context.Context) (*domain.Results, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	select {
	case a.done <- struct{}{}:
	default:
	}
	return &domain.Results{}, nil
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &countingAnalytics{}, zerolog.Nop())

	for i := 0; i < 20; i++ {
		id := "sub_" + strconv.Itoa(i)
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index out of range for %s: %d", id, first)
		}
		for j := 0; j < 5; j++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard index for %s changed: %d then %d", id, first, got)
			}
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &countingAnalytics{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_ProcessesEnqueuedJob(t *testing.T) {
	analytics := &countingAnalytics{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, analytics, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.RefreshResults("sub_1")

	select {
	case <-analytics.done:
	case <-time.After(2 * time.Second):
		t.Fatal("recompute was never invoked")
	}

	analytics.mu.Lock()
	calls := analytics.calls
	analytics.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one recompute, got %d", calls)
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	// Workers are never started, so the buffer fills and further enqueues
	// must return without blocking.
	d := NewDispatcher(1, &countingAnalytics{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.RefreshResults("sub_1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RefreshResults blocked on a full queue")
	}
	if got := len(d.workers[d.shardIndex("sub_1")]); got != channelBuffer {
		t.Fatalf("expected exactly %d buffered jobs, got %d", channelBuffer, got)
	}
}
