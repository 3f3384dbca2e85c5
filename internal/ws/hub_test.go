package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jfields/huddle/internal/models"
)

func newTestClient(hub *Hub, userID int) *Client {
	c := &Client{hub: hub, userID: userID, send: make(chan []byte, 16)}
	hub.register <- c
	return c
}

func (c *Client) emit(t *testing.T, event string, data interface{}) {
	t.Helper()
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("Failed to marshal event data: %v", err)
		}
		raw = b
	}
	c.hub.events <- clientEvent{client: c, event: Event{Event: event, Data: raw}}
}

func recv(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.send:
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("Failed to decode event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
		return Event{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case payload := <-c.send:
		t.Errorf("Expected no event, got %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSetupAcknowledges(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 1)
	client.emit(t, EventSetup, map[string]int{"id": 1})

	ev := recv(t, client)
	if ev.Event != EventConnected {
		t.Errorf("Expected %q, got %q", EventConnected, ev.Event)
	}
}

func TestTypingExcludesSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	x := newTestClient(hub, 1)
	y := newTestClient(hub, 2)
	z := newTestClient(hub, 3)

	for _, c := range []*Client{x, y, z} {
		c.emit(t, EventJoinChat, 7)
	}

	x.emit(t, EventTyping, 7)

	for _, c := range []*Client{y, z} {
		ev := recv(t, c)
		if ev.Event != EventTyping {
			t.Errorf("Expected %q, got %q", EventTyping, ev.Event)
		}
	}
	assertSilent(t, x)

	x.emit(t, EventStopTyping, 7)
	if ev := recv(t, y); ev.Event != EventStopTyping {
		t.Errorf("Expected %q, got %q", EventStopTyping, ev.Event)
	}
}

func TestNewMessageFanOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	x := newTestClient(hub, 1)
	y := newTestClient(hub, 2)
	z := newTestClient(hub, 3)

	for _, c := range []*Client{x, y, z} {
		c.emit(t, EventSetup, nil)
		recv(t, c) // connected ack
	}

	message := models.Message{
		ID:       10,
		ChatID:   7,
		SenderID: 1,
		Content:  "hello",
		Chat: &models.Chat{
			ID:    7,
			Users: []models.User{{ID: 1}, {ID: 2}},
		},
	}
	x.emit(t, EventNewMessage, message)

	// Only Y participates and is not the sender
	ev := recv(t, y)
	if ev.Event != EventMessageReceived {
		t.Fatalf("Expected %q, got %q", EventMessageReceived, ev.Event)
	}
	var received models.Message
	if err := json.Unmarshal(ev.Data, &received); err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}
	if received.ID != 10 || received.Content != "hello" {
		t.Errorf("Expected the full message, got %+v", received)
	}

	assertSilent(t, x)
	assertSilent(t, z)
}

func TestNewMessageWithoutParticipantsIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	x := newTestClient(hub, 1)
	y := newTestClient(hub, 2)
	for _, c := range []*Client{x, y} {
		c.emit(t, EventSetup, nil)
		recv(t, c)
	}

	x.emit(t, EventNewMessage, models.Message{ID: 11, ChatID: 7, SenderID: 1})
	assertSilent(t, y)
}

func TestMalformedEventIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	x := newTestClient(hub, 1)
	y := newTestClient(hub, 2)
	for _, c := range []*Client{x, y} {
		c.emit(t, EventJoinChat, 7)
	}

	x.hub.events <- clientEvent{client: x, event: Event{Event: EventTyping, Data: json.RawMessage(`"not-a-number"`)}}
	assertSilent(t, y)
}

func TestDisconnectLeavesRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	x := newTestClient(hub, 1)
	y := newTestClient(hub, 2)
	for _, c := range []*Client{x, y} {
		c.emit(t, EventJoinChat, 7)
	}

	hub.unregister <- y

	x.emit(t, EventTyping, 7)
	// Give the hub a moment, then confirm y's channel was closed
	select {
	case _, ok := <-y.send:
		if ok {
			t.Error("Expected y's send channel to be closed, got an event")
		}
	case <-time.After(time.Second):
		t.Error("Expected y's send channel to be closed")
	}
}

func TestUserRoomKeys(t *testing.T) {
	if userRoom(5) != "user:5" || chatRoom(5) != "chat:5" {
		t.Errorf("Unexpected room keys: %s %s", userRoom(5), chatRoom(5))
	}
}
