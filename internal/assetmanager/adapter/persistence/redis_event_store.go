package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// Stream keys are namespaced by server so that servers never see each other's events.
const streamPrefix = "asset-manager:out-topic:"

// RedisEventStore persists out topic events in one Redis Stream per server. Stream
// message IDs are handed to listeners as resume tokens.
type RedisEventStore struct {
	client    *redis.Client
	logger    logger.Logger
	maxLength int64
	readLimit int64
}

var _ repository.EventStore = (*RedisEventStore)(nil)

// NewRedisEventStore creates a new Redis-based event store. maxLength caps each
// stream (approximately); zero leaves streams uncapped.
func NewRedisEventStore(client *redis.Client, maxLength int64, log logger.Logger) *RedisEventStore {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedisEventStore{
		client:    client,
		logger:    log.WithComponent("redis-event-store"),
		maxLength: maxLength,
		readLimit: 1000,
	}
}

// StreamName returns the stream holding the events of serverName.
func StreamName(serverName string) string {
	return streamPrefix + serverName
}

// StoreEvent appends event to its server's stream and returns the assigned ID.
func (r *RedisEventStore) StoreEvent(ctx context.Context, event *model.ChangeEvent) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: StreamName(event.ServerName),
		Values: map[string]interface{}{
			"eventType":   event.EventType,
			"elementGUID": event.ElementGUID,
			"timestamp":   event.EventTime.UnixNano(),
			"event":       payload,
		},
	}
	if r.maxLength > 0 {
		args.MaxLen = r.maxLength
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"stream":    args.Stream,
			"eventType": event.EventType,
			"error":     err.Error(),
		}).Error("Failed to store event in Redis")
		return "", err
	}

	r.logger.WithFields(map[string]interface{}{
		"stream":    args.Stream,
		"eventType": event.EventType,
		"eventId":   id,
	}).Debug("Event stored in Redis")
	return id, nil
}

// GetEventsSince returns the events stored after resumeToken, oldest first. An
// empty token replays the whole stream.
func (r *RedisEventStore) GetEventsSince(ctx context.Context, serverName, resumeToken string) ([]*model.ChangeEvent, error) {
	stream := StreamName(serverName)
	start := "-"
	if resumeToken != "" {
		start = "(" + resumeToken
	}

	messages, err := r.client.XRangeN(ctx, stream, start, "+", r.readLimit).Result()
	if err != nil {
		if err == redis.Nil {
			return []*model.ChangeEvent{}, nil
		}
		r.logger.WithFields(map[string]interface{}{
			"stream":      stream,
			"resumeToken": resumeToken,
			"error":       err.Error(),
		}).Error("Failed to read events from Redis")
		return nil, err
	}

	events := make([]*model.ChangeEvent, 0, len(messages))
	for _, msg := range messages {
		event, err := parseEventFromMessage(msg)
		if err != nil {
			r.logger.WithFields(map[string]interface{}{
				"messageId": msg.ID,
				"error":     err.Error(),
			}).Warn("Failed to parse event from Redis message")
			continue
		}
		events = append(events, event)
	}

	r.logger.WithFields(map[string]interface{}{
		"stream":     stream,
		"eventCount": len(events),
	}).Debug("Retrieved events from Redis")
	return events, nil
}

// CleanupOldEvents trims entries older than retention from a server's stream.
func (r *RedisEventStore) CleanupOldEvents(ctx context.Context, serverName string, retention time.Duration) error {
	stream := StreamName(serverName)
	minID := fmt.Sprintf("%d-0", time.Now().Add(-retention).UnixMilli())

	trimmed, err := r.client.XTrimMinID(ctx, stream, minID).Result()
	if err != nil {
		return fmt.Errorf("failed to trim stream %s: %w", stream, err)
	}
	if trimmed > 0 {
		r.logger.WithFields(map[string]interface{}{
			"stream":  stream,
			"trimmed": trimmed,
		}).Info("Cleaned up old events from Redis stream")
	}
	return nil
}

// GetEventCount returns the number of events held for a server.
func (r *RedisEventStore) GetEventCount(ctx context.Context, serverName string) (int64, error) {
	return r.client.XLen(ctx, StreamName(serverName)).Result()
}

func (r *RedisEventStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// parseEventFromMessage rebuilds an event from a stream entry and stamps its ID.
func parseEventFromMessage(msg redis.XMessage) (*model.ChangeEvent, error) {
	raw, ok := msg.Values["event"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("message %s has no event payload", msg.ID)
	}

	var event model.ChangeEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, fmt.Errorf("message %s: %w", msg.ID, err)
	}
	event.EventID = msg.ID
	return &event, nil
}
