package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalog/domain/shared"
	"catalog/pkg/logger"
	"catalog/pkg/retry"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

const headerEventName = "event_name"

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// KafkaBroker 以聚合 ID 为 key 写入 Kafka，同一聚合的事件落在同一分区，保持顺序
type KafkaBroker struct {
	client *kgo.Client
	topic  string
	retry  retry.Config
}

func NewKafkaBroker(cfg KafkaConfig, retryConfig retry.Config) (*KafkaBroker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka broker requires at least one seed broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka broker requires a topic")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	logger.Info("Kafka broker created",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return &KafkaBroker{client: client, topic: cfg.Topic, retry: retryConfig}, nil
}

func (b *KafkaBroker) Publish(ctx context.Context, event shared.IntegrationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode integration event %s: %w", event.EventName, err)
	}

	err = retry.ExecuteWithRetry(ctx, b.retry, func(ctx context.Context) error {
		return b.client.ProduceSync(ctx, b.record(event, value)).FirstErr()
	})
	if err != nil {
		logger.Error("Failed to produce integration event",
			zap.String("event_name", event.EventName),
			zap.String("aggregate_id", event.AggregateID),
			zap.String("topic", b.topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to produce integration event %s: %w", event.EventName, err)
	}
	return nil
}

// record 每次尝试都用新的 Record，已经提交过的 Record 不能复用
func (b *KafkaBroker) record(event shared.IntegrationEvent, value []byte) *kgo.Record {
	return &kgo.Record{
		Topic: b.topic,
		Key:   []byte(event.AggregateID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: headerEventName, Value: []byte(event.EventName)},
		},
		Timestamp: event.OccurredOn,
	}
}

func (b *KafkaBroker) Close() error {
	b.client.Close()
	return nil
}

var _ MessageBroker = (*KafkaBroker)(nil)
