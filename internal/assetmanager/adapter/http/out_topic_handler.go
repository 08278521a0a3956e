package http

import (
	"context"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OutTopic is the event fan-out the websocket listeners attach to.
type OutTopic interface {
	Subscribe(ctx context.Context, serverName, listenerID string, ch chan<- *model.ChangeEvent)
	Unsubscribe(ctx context.Context, serverName, listenerID string)
	Replay(ctx context.Context, serverName, resumeToken string) ([]*model.ChangeEvent, error)
}

// ServerRegistry reports which servers are running.
type ServerRegistry interface {
	Has(serverName string) bool
}

const (
	outTopicBufferSize = 256
	outTopicPingPeriod = 30 * time.Second
	outTopicWriteWait  = 10 * time.Second
)

// OutTopicHandler streams change events to websocket listeners.
type OutTopicHandler struct {
	topic   OutTopic
	servers ServerRegistry
	log     logger.Logger
}

func NewOutTopicHandler(topic OutTopic, servers ServerRegistry, log logger.Logger) *OutTopicHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &OutTopicHandler{topic: topic, servers: servers, log: log.WithComponent("out-topic-listener")}
}

// outTopicError is the one message sent before the server closes a listener it cannot serve.
type outTopicError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Upgrade rejects requests that are not websocket upgrades or that name an unknown server.
func (h *OutTopicHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if serverName := c.Params("serverName"); !h.servers.Has(serverName) {
		return fiber.NewError(fiber.StatusNotFound, "the server "+serverName+" is not running")
	}
	return c.Next()
}

// Listen returns the websocket handler.
func (h *OutTopicHandler) Listen() fiber.Handler {
	return websocket.New(h.listen)
}

func (h *OutTopicHandler) listen(conn *websocket.Conn) {
	serverName := conn.Params("serverName")
	listenerID := uuid.NewString()
	log := h.log.WithFields(map[string]interface{}{"server_name": serverName, "listener_id": listenerID})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan *model.ChangeEvent, outTopicBufferSize)
	h.topic.Subscribe(ctx, serverName, listenerID, events)
	defer h.topic.Unsubscribe(ctx, serverName, listenerID)

	// Events persisted while the replay runs can arrive on both paths.
	replayed := make(map[string]struct{})
	if resumeToken := conn.Query("resumeToken"); resumeToken != "" {
		backlog, err := h.topic.Replay(ctx, serverName, resumeToken)
		if err != nil {
			log.WithFields(map[string]interface{}{"resume_token": resumeToken, "error": err.Error()}).
				Warn("Failed to replay out topic events")
			_ = conn.WriteJSON(outTopicError{Error: "replay_failed", Message: err.Error()})
			return
		}
		for _, event := range backlog {
			if err := h.write(conn, event); err != nil {
				return
			}
			replayed[event.EventID] = struct{}{}
		}
		log.Debugf("Replayed %d out topic events", len(backlog))
	}

	// Listeners only receive. Reading is how a close from the client is noticed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithFields(map[string]interface{}{"error": err.Error()}).Warn("Out topic listener read failed")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(outTopicPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			if _, seen := replayed[event.EventID]; seen && event.EventID != "" {
				delete(replayed, event.EventID)
				continue
			}
			if err := h.write(conn, event); err != nil {
				log.WithFields(map[string]interface{}{"error": err.Error()}).Debug("Out topic listener went away")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(outTopicWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *OutTopicHandler) write(conn *websocket.Conn, event *model.ChangeEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(outTopicWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}
