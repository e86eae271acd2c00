package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	analyticsstore "github.com/serroba/shortlink/internal/analytics/store"
	"github.com/serroba/shortlink/internal/config"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// PublisherGroupPackage provides the analytics publishers. With analytics disabled
// every event is dropped and no Redis stream publisher is created.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client.Client,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.Publishers, error) {
		if !do.MustInvoke[*Options](i).Analytics {
			return analytics.NoopPublishers(), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return analytics.NewPublishers(group.Publisher()), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group. It expects a
// *config.Consumer value in the injector.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*RedisClient](i)
		logger := do.MustInvoke[*zap.Logger](i)
		cfg := do.MustInvoke[*config.Consumer](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client.Client,
			ConsumerGroup: cfg.Group,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		return analytics.NewConsumerGroup(subscriber, analyticsstore.NewLog(logger), logger), nil
	})
}
