package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FeedTopic is the global activity-feed subscription topic
const FeedTopic = "feed"

// ImageTopic returns the subscription topic for one image's interactions
func ImageTopic(imageID string) string {
	return "image:" + imageID
}

// EventType identifies what changed in the shared record sets
type EventType string

const (
	EventReactionAdded     EventType = "reaction_added"
	EventReactionRemoved   EventType = "reaction_removed"
	EventCommentAdded      EventType = "comment_added"
	EventCommentDeleted    EventType = "comment_deleted"
	EventActivityAppended  EventType = "activity_appended"
	EventActivitiesPruned  EventType = "activities_pruned"
	EventActivitiesCleared EventType = "activities_cleared"
	EventUserDeleted       EventType = "user_deleted"
	EventUserBanned        EventType = "user_banned"
)

// Event is one live-subscription push. Payload carries the changed record
// (or the IDs removed) so subscribers can patch their local copy of the
// collection without refetching.
type Event struct {
	Type      EventType   `json:"type"`
	Topic     string      `json:"topic"`
	ImageID   string      `json:"imageId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub maintains the set of active subscribers and pushes events to them
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel for events to fan out
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling registrations and event fan-out
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for delivery to every subscriber of its topic
func (h *Hub) Publish(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.broadcast <- event
}

// SubscriberCount returns the number of connected clients for a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[topic])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.topic]; !ok {
		h.clients[client.topic] = make(map[*Client]bool)
	}
	h.clients[client.topic][client] = true

	h.logger.Info().
		Str("topic", client.topic).
		Str("userID", client.userID.String()).
		Msg("Subscriber registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.topic)
			}

			h.logger.Info().
				Str("topic", client.topic).
				Str("userID", client.userID.String()).
				Msg("Subscriber unregistered")
		}
	}
}

func (h *Hub) broadcastEvent(event *Event) {
	h.mu.RLock()

	clients, ok := h.clients[event.Topic]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().Err(err).Str("topic", event.Topic).Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Send buffer full: the subscriber is slow or gone, drop it
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Drop directly: Run is the sole reader of h.unregister, so sending
	// there from this goroutine would block it against itself.
	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("topic", event.Topic).
		Str("eventType", string(event.Type)).
		Int("subscriberCount", len(clients)).
		Msg("Event broadcast to topic")
}
