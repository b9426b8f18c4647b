package shared

import (
	"fmt"
	"time"
)

// DomainEvent 领域事件：聚合状态变更的不可变记录
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
	EventVersion() int
}

// IntegrationEvent 集成事件：领域事件面向外部发布的投影
// 只会在事务提交之后生成和发布
type IntegrationEvent struct {
	EventName    string    `json:"event_name"`
	AggregateID  string    `json:"aggregate_id"`
	OccurredOn   time.Time `json:"occurred_on"`
	EventVersion int       `json:"event_version"`
	Payload      any       `json:"payload"`
}

// IntegrationEventProvider 可以投影为集成事件的领域事件
// 第二个返回值为 false 表示这次变更不需要对外发布
type IntegrationEventProvider interface {
	ToIntegrationEvent() (IntegrationEvent, bool)
}

// EventMeta 领域事件的公共字段，嵌入到具体事件中
type EventMeta struct {
	aggregateID  string
	occurredOn   time.Time
	eventVersion int
}

// NewEventMeta 创建事件元数据，版本号固定从 1 开始
func NewEventMeta(aggregateID string) EventMeta {
	return EventMeta{
		aggregateID:  aggregateID,
		occurredOn:   time.Now(),
		eventVersion: 1,
	}
}

func (m EventMeta) GetAggregateID() string { return m.aggregateID }
func (m EventMeta) OccurredOn() time.Time  { return m.occurredOn }
func (m EventMeta) EventVersion() int      { return m.eventVersion }

// ValidateEvent 发布前的基本校验
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
