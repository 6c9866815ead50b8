package repository

import (
	"context"

	"SentiPulse/internal/domain/models"
	"SentiPulse/internal/domain/repository"
	pkgkafka "SentiPulse/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher for Kafka. Reports are
// keyed by symbol so each symbol's signals stay ordered on one partition.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka signal publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, report *models.SymbolReport) error {
	return p.producer.Publish(ctx, p.topic, []byte(report.Symbol), report)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
