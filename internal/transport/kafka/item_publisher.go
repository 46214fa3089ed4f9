package kafkat

//go:generate mockgen -source=item_publisher.go -destination=mock/item_publisher.go -package=mock_kafkat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/logger"
	"itemsvc/pkg/metric"

	"github.com/segmentio/kafka-go"
)

const (
	_eventTypeHeader = "event-type"

	_defaultQueueSize   = 256
	_defaultSendTimeout = 5 * time.Second
)

var ErrQueueFull = errors.New("item event queue is full")

type Producer interface {
	Send(ctx context.Context, msg kafka.Message) error
	Topic() string
}

// ItemEventPublisher writes item change events keyed by item id, so all
// events of one item land on the same partition in order. Publish only
// enqueues; Run does the writing.
type ItemEventPublisher struct {
	producer Producer
	metric   metric.Events
	log      logger.Logger

	queue       chan queuedEvent
	queueSize   int
	sendTimeout time.Duration
}

type queuedEvent struct {
	eventType entity.EventType
	itemID    string
	msg       kafka.Message
}

type PublisherOption func(*ItemEventPublisher)

func QueueSize(size int) PublisherOption {
	return func(p *ItemEventPublisher) {
		p.queueSize = size
	}
}

// SendTimeout bounds one write, retries included.
func SendTimeout(timeout time.Duration) PublisherOption {
	return func(p *ItemEventPublisher) {
		p.sendTimeout = timeout
	}
}

func NewItemEventPublisher(
	producer Producer,
	metric metric.Events,
	log logger.Logger,
	opts ...PublisherOption,
) (*ItemEventPublisher, error) {
	p := &ItemEventPublisher{
		producer:    producer,
		metric:      metric,
		log:         log,
		queueSize:   _defaultQueueSize,
		sendTimeout: _defaultSendTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.queueSize <= 0 {
		return nil, errors.New("kafkat.NewItemEventPublisher: queue size must be > 0")
	}
	if p.sendTimeout <= 0 {
		return nil, errors.New("kafkat.NewItemEventPublisher: send timeout must be > 0")
	}

	p.queue = make(chan queuedEvent, p.queueSize)

	return p, nil
}

// Publish encodes the event and queues it without blocking. A full queue
// drops the event.
func (p *ItemEventPublisher) Publish(_ context.Context, event entity.ItemEvent) error {
	const op = "transport.kafka.item_publisher.Publish"
	topic := p.producer.Topic()

	value, err := json.Marshal(event)
	if err != nil {
		p.metric.Failed(topic, string(event.Type), "marshal_failed")
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	queued := queuedEvent{
		eventType: event.Type,
		itemID:    event.ItemID.Hex(),
		msg: kafka.Message{
			Key:   []byte(event.ItemID.Hex()),
			Value: value,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: _eventTypeHeader, Value: []byte(event.Type)},
			},
		},
	}

	select {
	case p.queue <- queued:
		return nil
	default:
		p.metric.Failed(topic, string(event.Type), "queue_full")
		return fmt.Errorf("%s: %w", op, ErrQueueFull)
	}
}

// Run writes queued events until ctx is done, then flushes what is left
// in the queue within one more send timeout before returning.
func (p *ItemEventPublisher) Run(ctx context.Context) error {
	for {
		select {
		case event := <-p.queue:
			p.send(ctx, event)
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.sendTimeout)
			p.flush(flushCtx)
			cancel()
			return nil
		}
	}
}

func (p *ItemEventPublisher) flush(ctx context.Context) {
	for {
		select {
		case event := <-p.queue:
			p.send(ctx, event)
		default:
			return
		}
	}
}

func (p *ItemEventPublisher) send(ctx context.Context, event queuedEvent) {
	topic := p.producer.Topic()

	sendCtx, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()

	if err := p.producer.Send(sendCtx, event.msg); err != nil {
		p.metric.Failed(topic, string(event.eventType), "write_failed")
		p.log.LogAttrs(ctx, logger.WarnLevel, "item event write failed",
			logger.String("topic", topic),
			logger.String("type", string(event.eventType)),
			logger.String("item_id", event.itemID),
			logger.Err(err),
		)
		return
	}

	p.metric.Published(topic, string(event.eventType))
	p.log.LogAttrs(ctx, logger.DebugLevel, "item event published",
		logger.String("topic", topic),
		logger.String("type", string(event.eventType)),
		logger.String("item_id", event.itemID),
	)
}
