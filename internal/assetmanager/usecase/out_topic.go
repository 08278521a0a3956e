package usecase

import (
	"context"
	"sync"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/eventbus"
	"asset-manager/internal/shared/logger"
)

// OutTopic delivers change events to out topic listeners. Events published on the bus
// are persisted to the event store, when there is one, and then fanned out to every
// listener of the event's server.
type OutTopic struct {
	// listeners maps a server name to listener IDs and their event channels.
	listeners map[string]map[string]chan<- *model.ChangeEvent
	mu        sync.RWMutex
	store     repository.EventStore
	log       logger.Logger
}

// NewOutTopic subscribes an out topic to every event on bus. store may be nil, in
// which case events are delivered live only and cannot be replayed.
func NewOutTopic(bus eventbus.EventBusInterface, store repository.EventStore, log logger.Logger) *OutTopic {
	if log == nil {
		log = logger.NewNopLogger()
	}
	t := &OutTopic{
		listeners: make(map[string]map[string]chan<- *model.ChangeEvent),
		store:     store,
		log:       log.WithComponent("out-topic"),
	}
	if bus != nil {
		bus.Subscribe(eventbus.AllEvents, t.handleEvent)
	}
	return t
}

func (t *OutTopic) handleEvent(ctx context.Context, event eventbus.Event) error {
	change, ok := event.Data().(*model.ChangeEvent)
	if !ok {
		return nil
	}
	if t.store != nil {
		id, err := t.store.StoreEvent(ctx, change)
		if err != nil {
			t.log.WithFields(map[string]interface{}{
				"server_name": change.ServerName,
				"event_type":  change.EventType,
				"error":       err.Error(),
			}).Warn("Failed to persist out topic event")
		} else {
			change.EventID = id
		}
	}
	t.Publish(ctx, change)
	return nil
}

// Subscribe registers ch to receive the events of serverName.
func (t *OutTopic) Subscribe(ctx context.Context, serverName, listenerID string, ch chan<- *model.ChangeEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listeners[serverName]; !ok {
		t.listeners[serverName] = make(map[string]chan<- *model.ChangeEvent)
	}
	if _, ok := t.listeners[serverName][listenerID]; ok {
		t.log.WithFields(map[string]interface{}{"listener_id": listenerID, "server_name": serverName}).
			Warn("Listener already registered, replacing its channel")
	}
	t.listeners[serverName][listenerID] = ch
	t.log.WithContext(ctx).WithFields(map[string]interface{}{"listener_id": listenerID, "server_name": serverName}).
		Info("Out topic listener registered")
}

// Unsubscribe removes a listener. The listener owns its channel and closes it.
func (t *OutTopic) Unsubscribe(ctx context.Context, serverName, listenerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	listeners, ok := t.listeners[serverName]
	if !ok {
		return
	}
	delete(listeners, listenerID)
	if len(listeners) == 0 {
		delete(t.listeners, serverName)
	}
	t.log.WithContext(ctx).WithFields(map[string]interface{}{"listener_id": listenerID, "server_name": serverName}).
		Info("Out topic listener removed")
}

// Publish sends event to the listeners of its server. A listener whose channel is
// full misses the event.
func (t *OutTopic) Publish(ctx context.Context, event *model.ChangeEvent) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for listenerID, ch := range t.listeners[event.ServerName] {
		select {
		case ch <- event:
		default:
			t.log.WithContext(ctx).WithFields(map[string]interface{}{
				"listener_id": listenerID,
				"server_name": event.ServerName,
				"event_type":  event.EventType,
			}).Warn("Out topic listener is not keeping up, event dropped")
		}
	}
}

// ListenerCount returns the number of listeners registered for serverName.
func (t *OutTopic) ListenerCount(serverName string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[serverName])
}

// Replay returns the persisted events of serverName after resumeToken.
func (t *OutTopic) Replay(ctx context.Context, serverName, resumeToken string) ([]*model.ChangeEvent, error) {
	if t.store == nil || resumeToken == "" {
		return nil, nil
	}
	return t.store.GetEventsSince(ctx, serverName, resumeToken)
}

// RunRetention trims the persisted events of each server every interval until ctx is done.
func (t *OutTopic) RunRetention(ctx context.Context, serverNames []string, retention, interval time.Duration) {
	if t.store == nil || retention <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, name := range serverNames {
				if err := t.store.CleanupOldEvents(ctx, name, retention); err != nil {
					t.log.WithFields(map[string]interface{}{"server_name": name, "error": err.Error()}).
						Warn("Failed to trim out topic events")
				}
			}
		}
	}
}

// Ping checks the event store, if there is one.
func (t *OutTopic) Ping(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	return t.store.Ping(ctx)
}
