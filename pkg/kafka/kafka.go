package kafka

import (
	"context"
	"fmt"
	"time"

	"itemsvc/internal/config"
	"itemsvc/pkg/backoff"
	"itemsvc/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultMaxAttempts    = 3
	_defaultBaseRetryDelay = 50 * time.Millisecond
	_defaultMaxRetryDelay  = time.Second

	_dialTimeout = 5 * time.Second
)

type contextKey string

const kafkaMetadataKey contextKey = "kafka_metadata"

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes messages to a single topic, retrying failed writes with a
// jittered backoff.
type Producer struct {
	writer MessageWriter
	topic  string
	log    logger.Logger
	retry  backoff.Policy
}

func NewProducer(cfg *config.Events, log logger.Logger, opts ...Option) (*Producer, error) {
	const op = "kafka.NewProducer"

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		Async:                  false,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			ctx := context.WithValue(context.Background(), kafkaMetadataKey, map[string]string{
				"topic": cfg.Topic,
			})
			log.LogAttrs(ctx, logger.DebugLevel, "kafka writer info",
				logger.String("message", fmt.Sprintf(msg, args...)),
			)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			ctx := context.WithValue(context.Background(), kafkaMetadataKey, map[string]string{
				"topic": cfg.Topic,
			})
			log.LogAttrs(ctx, logger.ErrorLevel, "kafka writer error",
				logger.String("error", fmt.Sprintf(msg, args...)),
			)
		}),
	}

	p, err := newProducer(writer, cfg.Topic, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = checkKafkaConnection(cfg.Brokers, log); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func newProducer(writer MessageWriter, topic string, log logger.Logger, opts ...Option) (*Producer, error) {
	p := &Producer{
		writer: writer,
		topic:  topic,
		log:    log,
		retry: backoff.Policy{
			Attempts:  _defaultMaxAttempts,
			BaseDelay: _defaultBaseRetryDelay,
			MaxDelay:  _defaultMaxRetryDelay,
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	return p, nil
}

func (p *Producer) Topic() string {
	return p.topic
}

// Send writes msg, retrying up to the configured number of attempts. The
// last write error is returned when every attempt fails.
func (p *Producer) Send(ctx context.Context, msg kafka.Message) error {
	const op = "kafka.Producer.Send"

	attempt, err := backoff.Retry(ctx, p.retry,
		func(ctx context.Context) error {
			return p.writer.WriteMessages(ctx, msg)
		},
		func(attempt int, delay time.Duration, err error) {
			p.log.LogAttrs(ctx, logger.WarnLevel, "kafka write failed, retrying",
				logger.String("operation", op),
				logger.String("topic", p.topic),
				logger.Int("attempt", attempt),
				logger.Duration("retry_after", delay),
				logger.Err(err),
			)
		},
	)
	if err != nil {
		return fmt.Errorf("%s: write after %d attempts: %w", op, attempt, err)
	}

	return nil
}

func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("kafka.Producer.Close: %w", err)
	}
	return nil
}

func checkKafkaConnection(brokers []string, log logger.Logger) error {
	const op = "kafka.checkKafkaConnection"

	dialer := &kafka.Dialer{Timeout: _dialTimeout}
	for _, broker := range brokers {
		conn, err := dialer.Dial("tcp", broker)
		if err != nil {
			return fmt.Errorf("%s: connect to %s: %w", op, broker, err)
		}

		if err = conn.Close(); err != nil {
			log.Warnw("failed to close connection",
				"operation", op,
				"broker", broker,
				"error", err)
		}
	}
	return nil
}
