package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"compliance-review-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ClusterChannel = "review_events"

type clusterMessage struct {
	Origin   string          `json:"origin"`
	ReviewID string          `json:"review_id"`
	Message  json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: ReviewID -> clients watching it (multi-tab)
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// instance marks messages this hub published so it skips them when
	// they come back through Redis.
	instance string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]struct{}),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

// Run serves register/unregister requests until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) error {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for reviewID, clients := range h.clients {
				for c := range clients {
					close(c.Send)
				}
				delete(h.clients, reviewID)
			}
			h.mu.Unlock()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.ReviewID] == nil {
				h.clients[client.ReviewID] = make(map[*Client]struct{})
			}
			h.clients[client.ReviewID][client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"review_id": client.ReviewID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join registers client; it reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.ReviewID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.ReviewID)
		h.logger.Info("Hub", "Review has no more watchers", map[string]interface{}{"review_id": client.ReviewID})
	}
}

// Watchers reports how many local clients follow reviewID.
func (h *Hub) Watchers(reviewID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[reviewID])
}

// deliver writes to local clients only. A client whose buffer is full
// misses the message rather than stalling the hub.
func (h *Hub) deliver(reviewID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[reviewID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"review_id": reviewID})
		}
	}
}

// Publish sends data to every client watching reviewID on this and, through
// Redis, every other instance.
func (h *Hub) Publish(ctx context.Context, reviewID string, data []byte) {
	h.deliver(reviewID, data)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(clusterMessage{Origin: h.instance, ReviewID: reviewID, Message: data})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
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
			h.handleClusterMessage([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleClusterMessage(raw []byte) {
	var payload clusterMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.instance || payload.ReviewID == "" {
		return
	}
	h.deliver(payload.ReviewID, payload.Message)
}
