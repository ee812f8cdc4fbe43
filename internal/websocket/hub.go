package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active dashboard clients and routes event
// messages to the user they belong to.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for every connected client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Targeted messages routed through the run loop so the subscription
	// maps are only ever touched from one goroutine.
	direct chan userMessage

	// A map of user IDs to the set of clients authenticated as that user. A
	// user may have several dashboard tabs open.
	subscriptions map[string]map[*Client]bool
}

type userMessage struct {
	userID string
	data   []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		direct:        make(chan userMessage, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case msg := <-h.direct:
			h.deliverTo(msg.userID, msg.data)
		}
	}
}

// BroadcastAll sends a message to every connected client, regardless of
// user. Used for system-level events that concern all dashboards.
func (h *Hub) BroadcastAll(message []byte) {
	h.Broadcast <- message
}

// BroadcastTo sends a message to every client authenticated as userID.
// Delivery is best-effort: the message is dropped if the run loop is
// saturated, and slow clients are disconnected rather than blocking it.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	select {
	case h.direct <- userMessage{userID: userID, data: message}:
	default:
		log.Warn().Str("user_id", userID).Msg("Hub backlogged, dropping message")
	}
}

func (h *Hub) deliverTo(userID string, message []byte) {
	if subs, ok := h.subscriptions[userID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[userID], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client) {
	if client.UserID == "" {
		return
	}
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
