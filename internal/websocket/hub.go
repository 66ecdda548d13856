package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel is the Redis pub/sub channel instances use to share events.
const ClusterChannel = "workspace_events"

type clusterMessage struct {
	Origin  string          `json:"origin"`
	Topics  []string        `json:"topics"`
	Message json.RawMessage `json:"message"`
}

// Hub keeps live clients grouped by topic ("workspace" or "page:<id>") and
// fans events out to them, locally and across instances via Redis.
type Hub struct {
	id string

	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication, optional
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Topic] == nil {
				h.clients[client.Topic] = make(map[*Client]bool)
			}
			h.clients[client.Topic][client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID, "topic": client.Topic})

		case client := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[client.Topic]; ok && set[client] {
				delete(set, client)
				close(client.Send)
				if len(set) == 0 {
					delete(h.clients, client.Topic)
				}
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID, "topic": client.Topic})
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, set := range h.clients {
		for c := range set {
			close(c.Send)
		}
		delete(h.clients, topic)
	}
}

// ClientCount reports connected clients across all topics.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Publish delivers an event to local subscribers of its topics and shares
// it with the other instances.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(map[string]interface{}{
		"type": "event",
		"data": json.RawMessage(mustMarshal(event)),
	})
	if err != nil {
		return err
	}

	topics := events.Topics(event)
	h.deliver(topics, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.id, Topics: topics, Message: data})
		if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func mustMarshal(event events.Event) []byte {
	b, err := events.Marshal(event)
	if err != nil {
		return []byte("null")
	}
	return b
}

func (h *Hub) deliver(topics []string, data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, topic := range topics {
		for client := range h.clients[topic] {
			select {
			case client.Send <- data:
			default:
				slow = append(slow, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"client_id": c.ID})
		go h.Unregister(c)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			// our own publications were already delivered locally
			if payload.Origin == h.id {
				continue
			}
			h.deliver(payload.Topics, payload.Message)
		}
	}
}
