package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// Publishers holds the typed publish functions used by the HTTP handlers.
type Publishers struct {
	LinkCreated messaging.Publish[LinkCreatedEvent]
	LinkVisited messaging.Publish[LinkVisitedEvent]
}

// NewPublishers binds each event type to its topic on publisher.
func NewPublishers(publisher message.Publisher) *Publishers {
	return &Publishers{
		LinkCreated: messaging.NewPublishFunc[LinkCreatedEvent](publisher, TopicLinkCreated),
		LinkVisited: messaging.NewPublishFunc[LinkVisitedEvent](publisher, TopicLinkVisited),
	}
}

// NoopPublishers drops every event. Used when analytics is disabled.
func NoopPublishers() *Publishers {
	return &Publishers{
		LinkCreated: messaging.NoopPublish[LinkCreatedEvent](),
		LinkVisited: messaging.NoopPublish[LinkVisitedEvent](),
	}
}

// NewConsumerGroup subscribes store to every analytics topic.
func NewConsumerGroup(subscriber message.Subscriber, store Store, logger *zap.Logger) *messaging.ConsumerGroup {
	group := messaging.NewConsumerGroup(subscriber, logger)
	group.Add(messaging.NewConsumer(subscriber, TopicLinkCreated, store.SaveLinkCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicLinkVisited, store.SaveLinkVisited, logger))

	return group
}
