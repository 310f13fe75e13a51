package service

import (
	"context"

	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventSink receives events after they leave the in-process bus.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sink      EventSink
	logger    logger.ILogger
}

// NewConsumerService drains the in-process bus. Each event is logged and,
// when sink is not nil, forwarded to it.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sink EventSink,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sink:      sink,
		logger:    log,
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
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Warn("EVENTS", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info("EVENTS", "Event received", map[string]interface{}{
		"type":    event.Type,
		"payload": event.Data,
	})

	if cs.sink == nil {
		msg.Ack()
		return
	}

	if err := cs.sink.Publish(ctx, event); err != nil {
		// Forwarding is best effort.
		cs.logger.Error("EVENTS", "Failed to forward event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
	msg.Ack()
}
