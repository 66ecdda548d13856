package service

import (
	"context"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(event.EventID(), payload)
	msg.SetContext(ctx)
	return s.publisher.Publish(s.topicName, msg)
}

// publishAsync is how services emit events after a successful write; a
// failed publish is logged and never fails the request.
func publishAsync(ctx context.Context, p IPublisherService, log logger.ILogger, eventType string, data map[string]interface{}) {
	if p == nil {
		return
	}
	evt := events.New(eventType, data)
	if err := p.Publish(context.WithoutCancel(ctx), evt); err != nil {
		log.Warn("Events", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
