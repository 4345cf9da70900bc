package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/variantgo/server/game/room"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.rooms == nil {
		t.Error("hub rooms map is nil")
	}
	if hub.broadcast == nil {
		t.Error("hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, roomID: "test-room", send: make(chan []byte, 256)}

	hub.registerClient(client)

	if _, exists := hub.rooms["test-room"]; !exists {
		t.Error("room was not created")
	}
	if !hub.rooms["test-room"][client] {
		t.Error("client was not registered in room")
	}
	if len(hub.rooms["test-room"]) != 1 {
		t.Errorf("expected 1 client in room, got %d", len(hub.rooms["test-room"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, roomID: "test-room", send: make(chan []byte, 256)}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.rooms["test-room"]; exists {
		t.Error("room should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInRoom(t *testing.T) {
	hub := NewHub()
	roomID := "multi-client-room"

	client1 := &Client{hub: hub, roomID: roomID, send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, roomID: roomID, send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.rooms[roomID]) != 2 {
		t.Errorf("expected 2 clients in room, got %d", len(hub.rooms[roomID]))
	}

	hub.unregisterClient(client1)

	if len(hub.rooms[roomID]) != 1 {
		t.Errorf("expected 1 client remaining, got %d", len(hub.rooms[roomID]))
	}
	if !hub.rooms[roomID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub()
	roomID := "broadcast-test"

	client := &Client{hub: hub, roomID: roomID, send: make(chan []byte, 256)}
	hub.registerClient(client)

	view := &room.View{RoomID: roomID, Turn: 1, Width: 9, Height: 9}
	hub.BroadcastToRoom(roomID, view)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if message.RoomID != roomID {
			t.Errorf("expected room_id %s, got %s", roomID, message.RoomID)
		}
		if message.Event != "view_update" {
			t.Errorf("expected event view_update, got %s", message.Event)
		}
		if message.View == nil || message.View.Turn != 1 {
			t.Error("view not correctly transmitted")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no message received within timeout")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	done := make(chan bool)

	go func() {
		select {
		case message := <-hub.broadcast:
			if message.RoomID != "event-test" {
				t.Errorf("expected room_id event-test, got %s", message.RoomID)
			}
			if message.Event != "custom-event" {
				t.Errorf("expected event custom-event, got %s", message.Event)
			}
			if message.Data != "test-data" {
				t.Errorf("expected data test-data, got %v", message.Data)
			}
			done <- true
		case <-time.After(100 * time.Millisecond):
			t.Error("no broadcast message received within timeout")
			done <- false
		}
	}()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")
	<-done
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomId")
		if roomID == "" {
			roomID = "default"
		}
		hub.ServeWS(w, r, roomID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?roomId=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	if len(hub.rooms["ws-test"]) != 1 {
		t.Errorf("expected 1 client in room, got %d", len(hub.rooms["ws-test"]))
	}

	conn.Close()
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.rooms["ws-test"]; exists {
		t.Error("room should have been cleaned up after websocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomId")
		if roomID == "" {
			roomID = "default"
		}
		hub.ServeWS(w, r, roomID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?roomId=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(10 * time.Millisecond)

	view := &room.View{RoomID: "msg-test", Turn: 1, Width: 9, Height: 9, BoardCells: []byte{0, 1, 2}}
	hub.BroadcastToRoom("msg-test", view)

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read websocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}

	if message.RoomID != "msg-test" {
		t.Errorf("expected room_id msg-test, got %s", message.RoomID)
	}
	if message.View == nil || message.View.Width != 9 || message.View.Height != 9 {
		t.Error("view dimensions not correctly received")
	}
	if len(message.View.BoardCells) != 3 {
		t.Error("board cells not correctly received")
	}
}
