package shared

import (
	"context"
	"fmt"
	"sync"

	"catalog/domain/shared"
	"catalog/pkg/logger"

	"go.uber.org/zap"
)

// EventPublisher 集成事件的出口，messaging.MessageBroker 满足这个接口
type EventPublisher interface {
	Publish(ctx context.Context, event shared.IntegrationEvent) error
}

// EventHandler 提交后处理领域事件的订阅者
type EventHandler interface {
	Handle(ctx context.Context, event shared.DomainEvent) error
	Name() string
}

// FuncHandler 函数适配为 EventHandler
type FuncHandler struct {
	name string
	fn   func(ctx context.Context, event shared.DomainEvent) error
}

func NewFuncHandler(name string, fn func(ctx context.Context, event shared.DomainEvent) error) *FuncHandler {
	return &FuncHandler{name: name, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *FuncHandler) Name() string { return h.name }

// DomainEventMediator 提交后的事件出口：
// 取走登记聚合的待发布事件，先交给本地订阅者，再把可投影的事件作为集成事件发给 broker。
// 聚合内部用于派生状态的 ApplyEvent 与这里完全无关。
type DomainEventMediator struct {
	broker EventPublisher

	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewDomainEventMediator(broker EventPublisher) *DomainEventMediator {
	return &DomainEventMediator{
		broker:   broker,
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe 订阅提交后的领域事件，同名处理器不能重复订阅
func (m *DomainEventMediator) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}
	m.handlers[eventName] = append(m.handlers[eventName], handler)
	return nil
}

// PublishIntegrationEvents 按登记顺序处理每个聚合的事件，返回成功发布的集成事件数
func (m *DomainEventMediator) PublishIntegrationEvents(ctx context.Context, aggregates []shared.AggregateRoot) int {
	published := 0
	for _, aggregate := range aggregates {
		for _, event := range aggregate.PullEvents() {
			if err := shared.ValidateEvent(event); err != nil {
				logger.Warn("Skipping invalid domain event",
					zap.String("aggregate_id", aggregate.AggregateID()),
					zap.Error(err),
				)
				continue
			}
			m.dispatch(ctx, event)
			if m.publish(ctx, event) {
				published++
			}
		}
	}
	return published
}

func (m *DomainEventMediator) dispatch(ctx context.Context, event shared.DomainEvent) {
	m.mu.RLock()
	handlers := append([]EventHandler(nil), m.handlers[event.EventName()]...)
	m.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			logger.Error("Domain event handler failed",
				zap.String("handler", handler.Name()),
				zap.String("event_name", event.EventName()),
				zap.String("aggregate_id", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}
}

func (m *DomainEventMediator) publish(ctx context.Context, event shared.DomainEvent) bool {
	provider, ok := event.(shared.IntegrationEventProvider)
	if !ok || m.broker == nil {
		return false
	}
	integrationEvent, ok := provider.ToIntegrationEvent()
	if !ok {
		return false
	}

	if err := m.broker.Publish(ctx, integrationEvent); err != nil {
		logger.Error("Failed to publish integration event",
			zap.String("event_name", integrationEvent.EventName),
			zap.String("aggregate_id", integrationEvent.AggregateID),
			zap.Error(err),
		)
		return false
	}
	logger.Debug("Integration event published",
		zap.String("event_name", integrationEvent.EventName),
		zap.String("aggregate_id", integrationEvent.AggregateID),
	)
	return true
}
