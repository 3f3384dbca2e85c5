// Package ws is the realtime relay. The Hub owns a room registry keyed
// by user id and chat id; all registry mutation happens on the Run
// goroutine, so no locks are needed.
package ws

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jfields/huddle/internal/models"
)

// Event names mirror the client protocol.
const (
	EventSetup      = "setup"
	EventJoinChat   = "join chat"
	EventTyping     = "typing"
	EventStopTyping = "stop typing"
	EventNewMessage = "new message"

	EventConnected       = "connected"
	EventMessageReceived = "message received"
)

type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type clientEvent struct {
	client *Client
	event  Event
}

func userRoom(userID int) string { return fmt.Sprintf("user:%d", userID) }
func chatRoom(chatID int) string { return fmt.Sprintf("chat:%d", chatID) }

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Room membership, both directions. rooms is consulted on fan-out;
	// memberships makes disconnect cleanup cheap.
	rooms       map[string]map[*Client]bool
	memberships map[*Client]map[string]bool

	// Inbound events from the clients.
	events chan clientEvent

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		rooms:       make(map[string]map[*Client]bool),
		memberships: make(map[*Client]map[string]bool),
		events:      make(chan clientEvent),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case ev := <-h.events:
			h.handle(ev.client, ev.event)
		}
	}
}

func (h *Hub) handle(client *Client, ev Event) {
	switch ev.Event {
	case EventSetup:
		// Join the personal room. The room key comes from the
		// authenticated connection, not the event payload.
		h.join(client, userRoom(client.userID))
		h.send(client, Event{Event: EventConnected})
	case EventJoinChat:
		var chatID int
		if err := json.Unmarshal(ev.Data, &chatID); err != nil {
			log.Printf("ws: malformed %q event from user %d: %v", ev.Event, client.userID, err)
			return
		}
		h.join(client, chatRoom(chatID))
	case EventTyping, EventStopTyping:
		var chatID int
		if err := json.Unmarshal(ev.Data, &chatID); err != nil {
			log.Printf("ws: malformed %q event from user %d: %v", ev.Event, client.userID, err)
			return
		}
		h.broadcast(chatRoom(chatID), client, Event{Event: ev.Event, Data: ev.Data})
	case EventNewMessage:
		var message models.Message
		if err := json.Unmarshal(ev.Data, &message); err != nil {
			log.Printf("ws: malformed %q event from user %d: %v", ev.Event, client.userID, err)
			return
		}
		h.relayMessage(&message, ev.Data)
	default:
		log.Printf("ws: unknown event %q from user %d", ev.Event, client.userID)
	}
}

// relayMessage delivers a message-received event to the personal room
// of every chat participant except the sender.
func (h *Hub) relayMessage(message *models.Message, raw json.RawMessage) {
	if message.Chat == nil || len(message.Chat.Users) == 0 {
		log.Printf("ws: new message %d has no chat participants, dropping", message.ID)
		return
	}
	out := Event{Event: EventMessageReceived, Data: raw}
	for _, user := range message.Chat.Users {
		if user.ID == message.SenderID {
			continue
		}
		h.broadcast(userRoom(user.ID), nil, out)
	}
}

func (h *Hub) join(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	if h.memberships[client] == nil {
		h.memberships[client] = make(map[string]bool)
	}
	h.memberships[client][room] = true
}

// broadcast sends the event to every room member except skip.
func (h *Hub) broadcast(room string, skip *Client, ev Event) {
	for client := range h.rooms[room] {
		if client == skip {
			continue
		}
		h.send(client, ev)
	}
}

func (h *Hub) send(client *Client, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ws: encoding %q event: %v", ev.Event, err)
		return
	}
	select {
	case client.send <- payload:
	default:
		// Slow consumer: drop the connection rather than block the hub.
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	for room := range h.memberships[client] {
		delete(h.rooms[room], client)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.memberships, client)
	close(client.send)
}
