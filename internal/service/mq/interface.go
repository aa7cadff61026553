package mq

import "context"

// Producer publishes pipeline events for downstream consumers (payout
// bookkeeping, notification bots). Publishing happens after the transaction
// service acknowledged a proposal and never fails the run.
type Producer interface {
	// Publish sends a message. key selects the partition; passing the safe
	// address keeps events for one safe in order.
	Publish(ctx context.Context, topic string, key string, payload []byte) error

	// Close flushes and releases the underlying writer.
	Close() error
}
