package service

import (
	"context"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LiveDelivery pushes an encoded event to everyone watching a review.
type LiveDelivery interface {
	Publish(ctx context.Context, reviewID string, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   LiveDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery LiveDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume forwards live review events until ctx is done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for msg := range messages {
		cs.processMessage(ctx, msg)
	}
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Undecodable messages are acked; redelivery cannot fix them.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("Consumer", "Failed to decode live event", map[string]interface{}{"error": err.Error()})
		return
	}

	reviewID := events.ReviewID(event)
	if reviewID == "" {
		return
	}
	cs.delivery.Publish(ctx, reviewID, msg.Payload)
}
