package messaging

import (
	"context"
	"sync"

	"catalog/domain/shared"
)

// Handler 内存 broker 的订阅回调
type Handler func(ctx context.Context, event shared.IntegrationEvent) error

// InMemoryBroker 进程内 broker：记录已发布的事件并同步调用订阅者
type InMemoryBroker struct {
	mu        sync.RWMutex
	published []shared.IntegrationEvent
	handlers  map[string][]Handler
}

func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{handlers: make(map[string][]Handler)}
}

// Subscribe 订阅某个事件名
func (b *InMemoryBroker) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *InMemoryBroker) Publish(ctx context.Context, event shared.IntegrationEvent) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append([]Handler(nil), b.handlers[event.EventName]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Published 已发布事件的副本，按发布顺序
func (b *InMemoryBroker) Published() []shared.IntegrationEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]shared.IntegrationEvent, len(b.published))
	copy(out, b.published)
	return out
}

func (b *InMemoryBroker) Close() error { return nil }

var _ MessageBroker = (*InMemoryBroker)(nil)
