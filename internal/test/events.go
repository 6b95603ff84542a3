package test

import (
	"context"
	"sync"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// PublisherStub records published events. When Gate is set, Publish waits
// for a value on it before returning.
type PublisherStub struct {
	Err  error
	Gate chan struct{}

	mu        sync.Mutex
	published []model.OrderEvent
	closed    bool
}

func (p *PublisherStub) Publish(ctx context.Context, event model.OrderEvent) error {
	if p.Gate != nil {
		select {
		case <-p.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return p.Err
}

func (p *PublisherStub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Published returns a copy of the recorded events.
func (p *PublisherStub) Published() []model.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.OrderEvent(nil), p.published...)
}

// Closed reports whether Close was called.
func (p *PublisherStub) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
