package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"asset-manager/internal/shared/logger"
)

// Metadata change event types
const (
	EventTypeNewElement          = "element.created"
	EventTypeUpdatedElement      = "element.updated"
	EventTypeDeletedElement      = "element.deleted"
	EventTypeClassifiedElement   = "element.classified"
	EventTypeReclassifiedElement = "element.reclassified"
	EventTypeDeclassifiedElement = "element.declassified"
	EventTypeNewRelationship     = "relationship.created"
	EventTypeUpdatedRelationship = "relationship.updated"
	EventTypeDeletedRelationship = "relationship.deleted"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// Event is a change notification carried on the bus.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	// Source names the server instance that raised the event.
	Source() string
}

// Handler reacts to one event.
type Handler func(ctx context.Context, event Event) error

// EventBusInterface is what publishers and subscribers depend on.
type EventBusInterface interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
}

// BusConfig controls how often a failing handler is retried.
type BusConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// EventBus delivers events synchronously, in subscription order, to the handlers of
// the event's type followed by the AllEvents handlers.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
	config   BusConfig
}

// NewEventBus creates a bus that retries a failing handler twice.
func NewEventBus(log logger.Logger) *EventBus {
	return NewEventBusWithConfig(log, BusConfig{MaxRetries: 2, RetryDelay: 50 * time.Millisecond})
}

func NewEventBusWithConfig(log logger.Logger, config BusConfig) *EventBus {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log.WithComponent("event-bus"),
		config:   config,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Debugf("Subscribed handler for event type: %s", eventType)
}

// Publish runs every matching handler. A handler that still fails after its retries
// does not stop the others; all failures are returned joined.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := make([]Handler, 0, len(eb.handlers[event.Type()])+len(eb.handlers[AllEvents]))
	handlers = append(handlers, eb.handlers[event.Type()]...)
	handlers = append(handlers, eb.handlers[AllEvents]...)
	eb.mu.RUnlock()

	var errs []error
	for i, handler := range handlers {
		if err := eb.deliver(ctx, event, handler); err != nil {
			eb.logger.WithFields(map[string]interface{}{
				"event_type": event.Type(),
				"source":     event.Source(),
				"handler":    i,
				"error":      err.Error(),
			}).Error("Event handler failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (eb *EventBus) deliver(ctx context.Context, event Event, handler Handler) error {
	var err error
	for attempt := 0; attempt <= eb.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(eb.config.RetryDelay):
			}
		}
		if err = handler(ctx, event); err == nil {
			return nil
		}
	}
	return fmt.Errorf("handler failed after %d attempts: %w", eb.config.MaxRetries+1, err)
}

// SubscriberCount returns the number of handlers subscribed to eventType.
func (eb *EventBus) SubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// BasicEvent implements the Event interface
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

func NewBasicEvent(eventType string, data interface{}) Event {
	return NewBasicEventWithSource(eventType, data, "")
}

func NewBasicEventWithSource(eventType string, data interface{}, source string) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now(),
		source:    source,
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }
