package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "pipeline_events"

// Hub fans pipeline events out to connected websocket observers. A
// client may watch a single session or everything. When Redis is
// configured, events travel through a pub/sub channel so every instance
// behind a load balancer delivers to its own clients.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Observer connected", map[string]interface{}{"session_filter": client.SessionFilter})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Observer disconnected", map[string]interface{}{"session_filter": client.SessionFilter})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers one serialized pipeline event to every interested
// observer. With Redis present the event goes through the cluster
// channel and comes back via the subscriber, so each instance delivers
// exactly once.
func (h *Hub) Broadcast(payload []byte) {
	if h.rdb != nil {
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
			h.deliverLocal(payload)
		}
		return
	}
	h.deliverLocal(payload)
}

func (h *Hub) deliverLocal(payload []byte) {
	session := sessionOf(payload)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.SessionFilter != "" && client.SessionFilter != session {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Observer send buffer full, dropping connection", map[string]interface{}{"session_filter": client.SessionFilter})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal([]byte(msg.Payload))
	}
}

// sessionOf extracts the session id an event belongs to, or "" for
// events without one (those only reach unfiltered observers when a
// filter is set).
func sessionOf(payload []byte) string {
	var envelope dto.PipelineEventMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	if sid, ok := envelope.Payload["session_id"].(string); ok {
		return sid
	}
	return ""
}
