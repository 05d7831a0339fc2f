package events

import (
	"context"
	"fmt"

	"studiodesk/pkg/kafka"
	kafka_config "studiodesk/pkg/kafka/config"
	kafka_middleware "studiodesk/pkg/kafka/middleware"
	"studiodesk/pkg/logger"
)

// producer is the part of *kafka.Producer a KafkaPublisher drives.
type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer producer
	source   string
}

func NewKafkaPublisher(p producer, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, source: source}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventType(string(event.Type)).
		WithCorrelationID(event.CorrelationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("build %s event: %w", event.Type, err)
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// New returns a kafka-backed Publisher, or Nop when cfg names no brokers.
// The returned Metrics is nil for Nop.
func New(cfg *kafka_config.Config, source string, log *logger.Logger) (Publisher, *kafka_middleware.Metrics, error) {
	if !cfg.Enabled() {
		log.Info("Kafka brokers not configured, domain events disabled")
		return Nop{}, nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	p, err := kafka.NewProducer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	metrics := kafka_middleware.NewMetrics()
	if cfg.EnableMiddleware {
		p.Use(kafka_middleware.LoggingProducerMiddleware(log))
	}
	p.Use(metrics.ProducerMiddleware())

	cfg.LogConfiguration(log.Info)
	return NewKafkaPublisher(p, source), metrics, nil
}

// PublishBestEffort publishes event and only logs a failure. The change
// it describes has already been accepted by the booking backend.
func PublishBestEffort(ctx context.Context, p Publisher, log *logger.Logger, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish domain event",
			"event_type", event.Type,
			"key", event.Key,
			"error", err,
		)
	}
}
