package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"asset-manager/internal/assetmanager/adapter/persistence/memory"
	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/eventbus"
	"asset-manager/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) StoreEvent(ctx context.Context, event *model.ChangeEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *mockEventStore) GetEventsSince(ctx context.Context, serverName, resumeToken string) ([]*model.ChangeEvent, error) {
	args := m.Called(ctx, serverName, resumeToken)
	if events := args.Get(0); events != nil {
		return events.([]*model.ChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventStore) CleanupOldEvents(ctx context.Context, serverName string, retention time.Duration) error {
	return m.Called(ctx, serverName, retention).Error(0)
}

func (m *mockEventStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestOutTopic_FanOutByServer(t *testing.T) {
	bus := eventbus.NewEventBus(logger.NewNopLogger())
	topic := NewOutTopic(bus, nil, logger.NewNopLogger())
	ctx := context.Background()

	first := make(chan *model.ChangeEvent, 4)
	second := make(chan *model.ChangeEvent, 4)
	other := make(chan *model.ChangeEvent, 4)
	topic.Subscribe(ctx, testServer, "first", first)
	topic.Subscribe(ctx, testServer, "second", second)
	topic.Subscribe(ctx, "otherServer", "other", other)
	assert.Equal(t, 2, topic.ListenerCount(testServer))

	h := NewMetadataHandler(HandlerConfig{ServerName: testServer}, memory.NewMetadataStore(), bus, nil)
	guid, err := NewGlossaryHandler(h).CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)

	for _, ch := range []chan *model.ChangeEvent{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, eventbus.EventTypeNewElement, event.EventType)
			assert.Equal(t, guid, event.ElementGUID)
		default:
			t.Fatal("expected an event")
		}
	}
	assert.Empty(t, other)

	topic.Unsubscribe(ctx, testServer, "first")
	topic.Unsubscribe(ctx, testServer, "second")
	assert.Equal(t, 0, topic.ListenerCount(testServer))
	assert.Equal(t, 1, topic.ListenerCount("otherServer"))
}

func TestOutTopic_SlowListenerMissesEvents(t *testing.T) {
	topic := NewOutTopic(nil, nil, nil)
	ctx := context.Background()

	ch := make(chan *model.ChangeEvent, 1)
	topic.Subscribe(ctx, testServer, "slow", ch)

	topic.Publish(ctx, &model.ChangeEvent{ServerName: testServer, EventType: eventbus.EventTypeNewElement})
	topic.Publish(ctx, &model.ChangeEvent{ServerName: testServer, EventType: eventbus.EventTypeUpdatedElement})

	require.Len(t, ch, 1)
	assert.Equal(t, eventbus.EventTypeNewElement, (<-ch).EventType)
}

func TestOutTopic_PersistsAndReplays(t *testing.T) {
	store := &mockEventStore{}
	bus := eventbus.NewEventBus(logger.NewNopLogger())
	topic := NewOutTopic(bus, store, logger.NewNopLogger())
	ctx := context.Background()

	store.On("StoreEvent", mock.Anything, mock.AnythingOfType("*model.ChangeEvent")).Return("1700000000000-0", nil).Once()

	ch := make(chan *model.ChangeEvent, 1)
	topic.Subscribe(ctx, testServer, "listener", ch)

	event := &model.ChangeEvent{ServerName: testServer, EventType: eventbus.EventTypeNewElement, ElementGUID: "g1"}
	require.NoError(t, bus.Publish(ctx, eventbus.NewBasicEventWithSource(event.EventType, event, testServer)))

	received := <-ch
	assert.Equal(t, "1700000000000-0", received.EventID)

	replayed := []*model.ChangeEvent{{EventID: "1700000000001-0", ServerName: testServer}}
	store.On("GetEventsSince", mock.Anything, testServer, "1700000000000-0").Return(replayed, nil).Once()

	events, err := topic.Replay(ctx, testServer, "1700000000000-0")
	require.NoError(t, err)
	assert.Equal(t, replayed, events)

	events, err = topic.Replay(ctx, testServer, "")
	require.NoError(t, err)
	assert.Nil(t, events)

	store.AssertExpectations(t)
}

func TestOutTopic_StoreFailureStillDelivers(t *testing.T) {
	store := &mockEventStore{}
	topic := NewOutTopic(nil, store, logger.NewNopLogger())
	ctx := context.Background()

	store.On("StoreEvent", mock.Anything, mock.Anything).Return("", fmt.Errorf("redis down"))

	ch := make(chan *model.ChangeEvent, 1)
	topic.Subscribe(ctx, testServer, "listener", ch)

	event := &model.ChangeEvent{ServerName: testServer, EventType: eventbus.EventTypeDeletedElement}
	require.NoError(t, topic.handleEvent(ctx, eventbus.NewBasicEvent(event.EventType, event)))

	received := <-ch
	assert.Empty(t, received.EventID)

	// Events that are not change events are ignored.
	require.NoError(t, topic.handleEvent(ctx, eventbus.NewBasicEvent("other", "payload")))
	assert.Empty(t, ch)
	store.AssertNumberOfCalls(t, "StoreEvent", 1)
}

func TestOutTopic_ReplayWithoutStore(t *testing.T) {
	topic := NewOutTopic(nil, nil, nil)

	events, err := topic.Replay(context.Background(), testServer, "1700000000000-0")
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, topic.Ping(context.Background()))
}

func TestOutTopic_RunRetention(t *testing.T) {
	store := &mockEventStore{}
	topic := NewOutTopic(nil, store, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	store.On("CleanupOldEvents", mock.Anything, testServer, time.Hour).Return(nil).Run(func(mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	go topic.RunRetention(ctx, []string{testServer}, time.Hour, 5*time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retention did not run")
	}
	cancel()
	store.AssertCalled(t, "CleanupOldEvents", mock.Anything, testServer, time.Hour)
}
