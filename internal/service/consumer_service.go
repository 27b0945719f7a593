package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-music-be/internal/dto"
	pktNats "ai-music-be/pkg/nats"

	"ai-music-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process preference change topic and
// relays each message to JetStream. Runs without NATS too; messages are
// then acked and dropped.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
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
	var payload dto.PreferenceChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal preference change message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if cs.eventPublisher == nil {
		msg.Ack()
		return
	}

	evt := events.NewPreferenceChanged(payload.UserId, payload.ChangeId, payload.Source)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[ERROR] Failed to relay preference change %s: %v", payload.ChangeId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	msg.Ack()
}
