package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

const publishTimeout = 5 * time.Second

// Publisher is the outbound side of the dispatcher.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// EventDispatcher fans order events out to a pool of publishing workers.
// Enqueue never blocks the request path: events are dropped when the buffer
// is full or the dispatcher is not running.
type EventDispatcher struct {
	publisher Publisher
	workers   int
	buffer    int
	logger    *slog.Logger

	jobs    chan model.OrderEvent
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
}

// NewEventDispatcher constructs the dispatcher worker pool.
func NewEventDispatcher(publisher Publisher, workers, buffer int, logger *slog.Logger) *EventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventDispatcher{
		publisher: publisher,
		workers:   workers,
		buffer:    buffer,
		logger:    logger,
	}
}

// Start launches the workers. The context only carries values; workers run
// until Stop.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.jobs = make(chan model.OrderEvent, d.buffer)
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, d.jobs)
	}
}

// Stop rejects new events, publishes what is already queued and waits for
// the workers to exit.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.jobs)
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	d.wg.Wait()
	cancel()
}

// Enqueue schedules event for publishing and reports whether it was accepted.
func (d *EventDispatcher) Enqueue(event model.OrderEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return false
	}
	select {
	case d.jobs <- event:
		return true
	default:
		return false
	}
}

func (d *EventDispatcher) worker(ctx context.Context, jobs <-chan model.OrderEvent) {
	defer d.wg.Done()
	for event := range jobs {
		d.publish(ctx, event)
	}
}

func (d *EventDispatcher) publish(ctx context.Context, event model.OrderEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Warn("publish order event failed",
			slog.String("type", string(event.Type)),
			slog.String("order", event.OrderID.String()),
			slog.String("error", err.Error()),
		)
	}
}
