package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	closeErr   error
	messages   []published
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	if c.declareErr != nil {
		return c.declareErr
	}
	if kind != amqp.ExchangeTopic || !durable {
		return errors.New("unexpected exchange options")
	}
	c.declared = append(c.declared, name)
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.messages = append(c.messages, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return c.closeErr
}

type fakeConn struct {
	closed bool
	err    error
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestAMQPPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(&fakeConn{}, ch, "orders_topic", discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.declared) != 1 || ch.declared[0] != "orders_topic" {
		t.Fatalf("expected exchange declaration, got %v", ch.declared)
	}

	orderID, menuID := uuid.New(), uuid.New()
	occurred := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := model.OrderEvent{
		Type:       model.OrderEventItemAdded,
		OrderID:    orderID,
		OrderType:  model.OrderTypeDelivery,
		MenuItemID: menuID,
		Quantity:   2,
		OccurredAt: occurred,
	}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ch.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(ch.messages))
	}
	got := ch.messages[0]
	if got.exchange != "orders_topic" || got.key != "order.item_added" {
		t.Fatalf("unexpected routing: %+v", got)
	}
	if got.msg.DeliveryMode != amqp.Persistent || got.msg.ContentType != "application/json" {
		t.Fatalf("unexpected publishing options: %+v", got.msg)
	}

	var body map[string]any
	if err := json.Unmarshal(got.msg.Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["orderId"] != orderID.String() || body["menuItemId"] != menuID.String() || body["quantity"] != float64(2) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAMQPPublisherOmitsEmptyMenuItem(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(&fakeConn{}, ch, "orders_topic", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Publish(context.Background(), model.OrderEvent{Type: model.OrderEventCancelled, OrderID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(ch.messages[0].msg.Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if _, ok := body["menuItemId"]; ok {
		t.Fatalf("expected no menu item, got %v", body)
	}
}

func TestAMQPPublisherErrors(t *testing.T) {
	if _, err := newAMQPPublisher(&fakeConn{}, &fakeChannel{declareErr: errors.New("declare")}, "x", nil); err == nil {
		t.Fatal("expected declare error")
	}

	ch := &fakeChannel{publishErr: errors.New("publish")}
	p, err := newAMQPPublisher(&fakeConn{}, ch, "x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Publish(context.Background(), model.OrderEvent{Type: model.OrderEventFinished, OrderID: uuid.New()}); err == nil {
		t.Fatal("expected publish error")
	}
}

func TestAMQPPublisherClose(t *testing.T) {
	conn := &fakeConn{err: errors.New("conn")}
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(conn, ch, "x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err == nil || err.Error() != "conn" {
		t.Fatalf("expected conn error, got %v", err)
	}
	if !ch.closed || !conn.closed {
		t.Fatal("expected channel and connection to be closed")
	}
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(discardLogger())
	if err := p.Publish(context.Background(), model.OrderEvent{Type: model.OrderEventCreated, OrderID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPublisher(t *testing.T) {
	t.Run("log publisher without url", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		p, err := newPublisher(publisherParams{Lifecycle: lc, Config: &config.Config{}, Logger: discardLogger()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := p.(*LogPublisher); !ok {
			t.Fatalf("expected log publisher, got %T", p)
		}
	})

	t.Run("dial error", func(t *testing.T) {
		t.Cleanup(func() {
			dial = func(url, exchange string, logger *slog.Logger) (Publisher, error) { return Dial(url, exchange, logger) }
		})
		dial = func(string, string, *slog.Logger) (Publisher, error) { return nil, errors.New("dial") }

		lc := fxtest.NewLifecycle(t)
		if _, err := newPublisher(publisherParams{Lifecycle: lc, Config: &config.Config{RabbitMQURL: "amqp://localhost"}, Logger: discardLogger()}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("closes on stop", func(t *testing.T) {
		ch := &fakeChannel{}
		conn := &fakeConn{}
		t.Cleanup(func() {
			dial = func(url, exchange string, logger *slog.Logger) (Publisher, error) { return Dial(url, exchange, logger) }
		})
		dial = func(_ string, exchange string, logger *slog.Logger) (Publisher, error) {
			return newAMQPPublisher(conn, ch, exchange, logger)
		}

		lc := fxtest.NewLifecycle(t)
		cfg := &config.Config{RabbitMQURL: "amqp://localhost", EventsExchange: "orders_topic"}
		if _, err := newPublisher(publisherParams{Lifecycle: lc, Config: cfg, Logger: discardLogger()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lc.RequireStart()
		lc.RequireStop()
		if !ch.closed || !conn.closed {
			t.Fatal("expected publisher to be closed on stop")
		}
	})
}
