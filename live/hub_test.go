package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func addClient(h *Hub, room string) *Client {
	c := NewClient(h, nil, room)
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	return c
}

func TestBroadcastScoreUpdateReachesRoomOnly(t *testing.T) {
	hub := testHub()
	subscriber := addClient(hub, "match:7")
	bystander := addClient(hub, "match:8")

	hub.BroadcastToRoom("match:7", Message{
		Type:    EventScoreUpdated,
		Payload: map[string]int{"home_sets": 1, "away_sets": 0},
	})

	var raw []byte
	select {
	case raw = <-subscriber.send:
	default:
		t.Fatal("subscriber received nothing")
	}

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventScoreUpdated, msg.Type)
	assert.Equal(t, "match:7", msg.Room)

	select {
	case <-bystander.send:
		t.Fatal("other room must not receive the update")
	default:
	}
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	hub := testHub()
	slow := addClient(hub, "match:7")
	for len(slow.send) < cap(slow.send) {
		slow.send <- []byte("{}")
	}

	// Must return without blocking even though the buffer is full.
	hub.BroadcastToRoom("match:7", Message{Type: EventMatchCompleted})
	assert.Equal(t, cap(slow.send), len(slow.send))
}
