// Package messaging publishes pricing domain events to Kafka.
package messaging

import (
	"context"

	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
	"github.com/wyfcoding/optionpricer/pkg/mq"
)

type envelope struct {
	EventType string `json:"event_type"`
	Payload   any    `json:"payload"`
}

// KafkaEventPublisher implements domain.EventPublisher on one topic, keyed
// by symbol (batch events by batch id) so per-contract ordering holds.
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	if topic == "" {
		topic = "pricing.events"
	}
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishOptionPriced(ctx context.Context, event *domain.OptionPricedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.Symbol, envelope{
		EventType: domain.OptionPricedEventType,
		Payload:   event,
	})
}

func (p *KafkaEventPublisher) PublishPricingError(ctx context.Context, event *domain.PricingErrorEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.Symbol, envelope{
		EventType: domain.PricingErrorEventType,
		Payload:   event,
	})
}

func (p *KafkaEventPublisher) PublishBatchPricingCompleted(ctx context.Context, event *domain.BatchPricingCompletedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.BatchID, envelope{
		EventType: domain.BatchPricingCompletedEventType,
		Payload:   event,
	})
}
