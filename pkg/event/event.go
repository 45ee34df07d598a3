// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	TickCompleted     Type = "tick_completed"
	StrategyChanged   Type = "strategy_changed"
	PartitionsToggled Type = "partitions_toggled"
	PopulationResized Type = "population_resized"
	PopulationReset   Type = "population_reset"
	QuitRequested     Type = "quit_requested"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine in subscription order.
type Bus struct {
	handlers map[Type][]entry
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]entry),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], entry{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

// Unsubscribe removes the handler registered by sub
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.unsubscribe(sub.Type, sub.ID)
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[eventType]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		// copy so a Publish in progress keeps its own snapshot
		remaining := make([]entry, 0, len(entries)-1)
		remaining = append(remaining, entries[:i]...)
		remaining = append(remaining, entries[i+1:]...)
		if len(remaining) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = remaining
		}
		return
	}
}

// HandlerCount returns the number of handlers registered for eventType
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	entries := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, e := range entries {
		e.handler(event)
	}
}

// Specific event implementations

// TickEvent reports the outcome of one simulation tick
type TickEvent struct {
	BaseEvent
	Tick       uint64
	Collisions int
	Particles  int
	Strategy   string
}

// NewTickEvent creates a new tick event
func NewTickEvent(source interface{}, tick uint64, collisions, particles int, strategy string) *TickEvent {
	return &TickEvent{
		BaseEvent: BaseEvent{
			EventType: TickCompleted,
			Source:    source,
		},
		Tick:       tick,
		Collisions: collisions,
		Particles:  particles,
		Strategy:   strategy,
	}
}

// StrategyEvent reports a change of collision strategy
type StrategyEvent struct {
	BaseEvent
	From string
	To   string
}

// NewStrategyEvent creates a new strategy event
func NewStrategyEvent(source interface{}, from, to string) *StrategyEvent {
	return &StrategyEvent{
		BaseEvent: BaseEvent{
			EventType: StrategyChanged,
			Source:    source,
		},
		From: from,
		To:   to,
	}
}

// PartitionsEvent reports the partition overlay being switched on or off
type PartitionsEvent struct {
	BaseEvent
	Visible bool
}

// NewPartitionsEvent creates a new partitions event
func NewPartitionsEvent(source interface{}, visible bool) *PartitionsEvent {
	return &PartitionsEvent{
		BaseEvent: BaseEvent{
			EventType: PartitionsToggled,
			Source:    source,
		},
		Visible: visible,
	}
}

// PopulationEvent reports a resize or reset of the particle population
type PopulationEvent struct {
	BaseEvent
	OldCount int
	NewCount int
}

// NewPopulationEvent creates a new population event. eventType is either
// PopulationResized or PopulationReset.
func NewPopulationEvent(eventType Type, source interface{}, oldCount, newCount int) *PopulationEvent {
	return &PopulationEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		OldCount: oldCount,
		NewCount: newCount,
	}
}
