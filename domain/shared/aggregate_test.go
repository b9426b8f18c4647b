package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingedEvent struct {
	EventMeta
}

func (e *pingedEvent) EventName() string { return "test.pinged" }

type counter struct {
	BaseAggregate
	id    UUID
	count int
	order []string
}

func newCounter() *counter {
	c := &counter{BaseAggregate: NewBaseAggregate(), id: NewUUID()}
	c.RegisterHandler("test.pinged", func(DomainEvent) {
		c.count++
		c.order = append(c.order, "first")
	})
	c.RegisterHandler("test.pinged", func(DomainEvent) {
		c.order = append(c.order, "second")
	})
	return c
}

func (c *counter) AggregateID() string { return c.id.String() }

func (c *counter) Ping() {
	c.ApplyEvent(&pingedEvent{EventMeta: NewEventMeta(c.id.String())})
}

func TestBaseAggregate_ApplyEventDispatchesSynchronouslyInOrder(t *testing.T) {
	c := newCounter()
	c.Ping()

	assert.Equal(t, 1, c.count)
	assert.Equal(t, []string{"first", "second"}, c.order)
	assert.Len(t, c.Events(), 1)
}

func TestBaseAggregate_UnhandledEventOnlyRecorded(t *testing.T) {
	c := newCounter()
	c.ApplyEvent(&otherEvent{EventMeta: NewEventMeta(c.id.String())})

	assert.Equal(t, 0, c.count)
	assert.Len(t, c.Events(), 1)
}

func TestBaseAggregate_PullEventsClears(t *testing.T) {
	c := newCounter()
	c.Ping()
	c.Ping()

	events := c.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "test.pinged", events[0].EventName())
	assert.Equal(t, c.AggregateID(), events[0].GetAggregateID())
	assert.Equal(t, 1, events[0].EventVersion())
	assert.Empty(t, c.PullEvents())
}

func TestBaseAggregate_ZeroValueNotification(t *testing.T) {
	var a BaseAggregate
	a.Notification().AddError("x", "y")
	assert.True(t, a.Notification().HasErrors())
}

func TestAggregateRegistry_Dedupes(t *testing.T) {
	var r AggregateRegistry
	a, b := newCounter(), newCounter()

	r.Add(a)
	r.Add(b)
	r.Add(a)
	r.Add(nil)

	all := r.All()
	require.Len(t, all, 2)
	assert.Same(t, a, all[0].(*counter))
	assert.Same(t, b, all[1].(*counter))
}

type otherEvent struct {
	EventMeta
}

func (e *otherEvent) EventName() string { return "test.other" }

func TestValidateEvent(t *testing.T) {
	assert.Error(t, ValidateEvent(nil))
	assert.Error(t, ValidateEvent(&pingedEvent{}))
	assert.Error(t, ValidateEvent(&pingedEvent{EventMeta: EventMeta{aggregateID: "x"}}))
	assert.NoError(t, ValidateEvent(&pingedEvent{EventMeta: EventMeta{aggregateID: "x", occurredOn: time.Now()}}))
}
