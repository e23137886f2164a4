// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/pkg/events"
	pkgNats "chat-memory-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBroadcaster pushes a serialized pipeline event to every connected
// observer. The websocket hub implements this.
type EventBroadcaster interface {
	Broadcast(payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	broadcaster    EventBroadcaster
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	broadcaster EventBroadcaster,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		broadcaster:    broadcaster,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var envelope dto.PipelineEventMessage
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.log.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying won't help
		return
	}

	cs.log.Info("ConsumerService", "Pipeline event", map[string]interface{}{
		"type":    envelope.Type,
		"payload": envelope.Payload,
	})

	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(msg.Payload)
	}

	// Mirror onto NATS for external consumers. The bus is optional, so a
	// publish failure is logged and the message still acks.
	event := events.BaseEvent{
		Type:       envelope.Type,
		Data:       envelope.Payload,
		OccurredAt: envelope.OccurredAt,
	}
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.log.Warn("ConsumerService", "Failed to mirror event to NATS", map[string]interface{}{
			"type":  envelope.Type,
			"error": err.Error(),
		})
	}

	msg.Ack()
}
