/*
Package messaging 集成事件的发布通道

MessageBroker 只负责把已经投影好的 IntegrationEvent 送出去；
哪些领域事件需要投影、什么时候发布由应用层的 DomainEventMediator 决定。
*/
package messaging

import (
	"context"
	"fmt"

	"catalog/config"
	"catalog/domain/shared"
	"catalog/pkg/retry"
)

// MessageBroker 集成事件发布者
type MessageBroker interface {
	Publish(ctx context.Context, event shared.IntegrationEvent) error
	Close() error
}

// NewBroker 按配置创建 broker：memory（默认）或 kafka
func NewBroker(cfg config.MessagingConfig) (MessageBroker, error) {
	switch cfg.Type {
	case "", "memory":
		return NewInMemoryBroker(), nil
	case "kafka":
		return NewKafkaBroker(KafkaConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			ClientID: cfg.ClientID,
		}, retry.FromAppConfig(cfg.Retry))
	default:
		return nil, fmt.Errorf("unsupported messaging type: %q", cfg.Type)
	}
}
