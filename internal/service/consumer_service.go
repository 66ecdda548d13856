package service

import (
	"context"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventRelay forwards workspace events to an outside audience (websocket
// hub, NATS).
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

// MemoEnricher runs queued AI enrichment.
type MemoEnricher interface {
	ApplyEnrichment(ctx context.Context, memoId int64) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relays     []EventRelay
	enricher   MemoEnricher
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	enricher MemoEnricher,
	log logger.ILogger,
	relays ...EventRelay,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relays:     relays,
		enricher:   enricher,
		logger:     log,
	}
}

// Consume subscribes and processes messages in the background until ctx is
// done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("Consumer", "Dropping malformed event", map[string]interface{}{"error": err.Error(), "message_id": msg.UUID})
		msg.Ack() // never retry garbage
		return
	}

	if event.Type == events.MemoEnrichmentRequested {
		cs.enrich(ctx, msg, event)
		return
	}

	for _, relay := range cs.relays {
		if err := relay.Publish(ctx, event); err != nil {
			// relays are best effort; the event already happened
			cs.logger.Warn("Consumer", "Relay failed", map[string]interface{}{"type": event.Type, "error": err.Error()})
		}
	}
	msg.Ack()
}

func (cs *consumerService) enrich(ctx context.Context, msg *message.Message, event events.BaseEvent) {
	memoId, ok := events.Int64(event.Data, "memo_id")
	if !ok || cs.enricher == nil {
		msg.Ack()
		return
	}
	if err := cs.enricher.ApplyEnrichment(ctx, memoId); err != nil {
		// enrichment degrades gracefully, the memo is already saved
		cs.logger.Warn("Consumer", "Memo enrichment failed", map[string]interface{}{"memo_id": memoId, "error": err.Error()})
	}
	msg.Ack()
}
