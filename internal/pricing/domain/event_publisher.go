package domain

import "context"

// EventPublisher publishes pricing domain events to downstream consumers.
type EventPublisher interface {
	PublishOptionPriced(ctx context.Context, event *OptionPricedEvent) error
	PublishPricingError(ctx context.Context, event *PricingErrorEvent) error
	PublishBatchPricingCompleted(ctx context.Context, event *BatchPricingCompletedEvent) error
}
