package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/queue"
)

// EventPublisher delivers booking events. Publishing is best effort: callers
// log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(context.Context, queue.BookingEvent) error { return nil }

// ErrPublisherBusy is returned when the publish buffer is full. The event is
// dropped.
var ErrPublisherBusy = errors.New("event publisher buffer full")

// publishBuffer is the number of events held while the broker is slow or down.
const publishBuffer = 256

// AMQPPublisher publishes booking events to RabbitMQ. Publish only enqueues;
// Run owns one long-lived connection and channel and delivers the queued
// events, reconnecting with backoff when the broker goes away.
type AMQPPublisher struct {
	URL string
	Log *zap.Logger

	events chan queue.BookingEvent
}

// NewAMQPPublisher returns a publisher for the broker at url. Nothing is
// delivered until Run is started.
func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{URL: url, Log: log, events: make(chan queue.BookingEvent, publishBuffer)}
}

// Publish queues ev without blocking. It fails with ErrPublisherBusy when
// the buffer is full.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.events <- ev:
		return nil
	default:
		return ErrPublisherBusy
	}
}

// Run delivers queued events until ctx is cancelled. An event whose publish
// fails is retried on the next connection.
func (p *AMQPPublisher) Run(ctx context.Context) error {
	var pending *queue.BookingEvent
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, ch, err := p.connect()
		if err != nil {
			p.Log.Warn("rabbitmq: connect failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		pending, err = p.deliver(ctx, conn, ch, pending)
		_ = ch.Close()
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.Log.Warn("rabbitmq: publisher connection lost, reconnecting", zap.Error(err))
	}
}

func (p *AMQPPublisher) connect() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(2 * time.Second),
	})
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	// Idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.BookingEventsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// deliver publishes events on ch until it fails or ctx ends. It returns the
// event that could not be published, if any.
func (p *AMQPPublisher) deliver(ctx context.Context, conn *amqp.Connection, ch *amqp.Channel, pending *queue.BookingEvent) (*queue.BookingEvent, error) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		var ev queue.BookingEvent
		if pending != nil {
			ev = *pending
		} else {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case err := <-closed:
				return nil, err
			case ev = <-p.events:
			}
		}
		if err := p.publish(ctx, ch, ev); err != nil {
			return &ev, err
		}
		pending = nil
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, ch *amqp.Channel, ev queue.BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ch.PublishWithContext(pubCtx, "", queue.BookingEventsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	})
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
