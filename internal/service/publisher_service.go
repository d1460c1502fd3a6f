package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"storeboost/internal/pkg/logger"
	"storeboost/pkg/events"
	pktNats "storeboost/pkg/nats"
)

// IPublisherService fans lifecycle events to the in-process bus and, when
// configured, to NATS. Publish failures are logged, never propagated:
// event delivery must not fail the mutation that triggered it.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	logger  logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher, logger logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:  pubSub,
		natsPub: natsPub,
		logger:  logger,
	}
}

type eventEnvelope struct {
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp string                 `json:"timestamp"`
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	raw, err := json.Marshal(eventEnvelope{
		Type:      event.EventType(),
		Payload:   event.Payload(),
		Timestamp: event.Timestamp().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		s.logger.Error("publisher", "Failed to marshal event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := s.pubSub.Publish(events.TopicLifecycle, msg); err != nil {
		s.logger.Error("publisher", "Failed to publish event in-process", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Warn("publisher", "Failed to publish event to NATS", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}
}
