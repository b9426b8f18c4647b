package shared

// AggregateRoot 聚合根接口
// 聚合根是一致性边界，也是仓储写入的唯一单元。
// UnitOfWork 的聚合登记表持有的就是这个接口：
// 提交后由外部协作方取出领域事件、投影为集成事件再发布
type AggregateRoot interface {
	// AggregateID 返回聚合根的全局唯一标识（字符串形式）
	AggregateID() string

	// Notification 返回聚合的错误收集器
	Notification() *Notification

	// PullEvents 获取并清空聚合根记录的领域事件
	PullEvents() []DomainEvent
}

// Entity 实体约束，仓储通过 ID() 读取类型化标识
type Entity[ID Identifier] interface {
	ID() ID
	Notification() *Notification
}

// EventHandlerFunc 聚合内的本地事件处理函数
// 只能读写聚合自身的内存字段，不允许任何 I/O
type EventHandlerFunc func(event DomainEvent)

type registeredHandler struct {
	eventName string
	handle    EventHandlerFunc
}

// BaseAggregate 嵌入到每个聚合根中
// 提供 Notification、待发布事件列表以及本地事件分发表
//
// 本地分发是同步的：ApplyEvent 返回之前，所有处理函数已在同一调用栈上执行完毕，
// 用于聚合自身的一致性推导（例如视频的 isPublished）。
// 它不会触发任何外部发布。
type BaseAggregate struct {
	notification *Notification
	events       []DomainEvent
	handlers     []registeredHandler
}

// NewBaseAggregate 创建基础聚合
func NewBaseAggregate() BaseAggregate {
	return BaseAggregate{notification: NewNotification()}
}

// RegisterHandler 按事件名登记处理函数，调用顺序即登记顺序
func (a *BaseAggregate) RegisterHandler(eventName string, handler EventHandlerFunc) {
	a.handlers = append(a.handlers, registeredHandler{eventName: eventName, handle: handler})
}

// ApplyEvent 记录事件并同步调用所有该事件名的处理函数
// 没有登记处理函数的事件只会被记录
func (a *BaseAggregate) ApplyEvent(event DomainEvent) {
	a.events = append(a.events, event)
	for _, h := range a.handlers {
		if h.eventName == event.EventName() {
			h.handle(event)
		}
	}
}

// Events 返回待发布事件的副本（不清空）
func (a *BaseAggregate) Events() []DomainEvent {
	events := make([]DomainEvent, len(a.events))
	copy(events, a.events)
	return events
}

// PullEvents 获取并清空待发布事件
func (a *BaseAggregate) PullEvents() []DomainEvent {
	events := a.Events()
	a.events = nil
	return events
}

func (a *BaseAggregate) Notification() *Notification {
	if a.notification == nil {
		a.notification = NewNotification()
	}
	return a.notification
}
