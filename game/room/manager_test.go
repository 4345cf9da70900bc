package room

import (
	"testing"
	"time"

	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/play"
	"github.com/variantgo/server/game/state"
)

func testTemplate() *config.Template {
	return &config.Template{
		Name:      "Test Template",
		Width:     9,
		Height:    9,
		SeatCount: 2,
	}
}

func testSeats() []play.Seat {
	one := uint64(1)
	two := uint64(2)
	return []play.Seat{
		{Player: &one, Team: 1},
		{Player: &two, Team: 2},
	}
}

func TestManagerCreate(t *testing.T) {
	m := NewManager()

	r, err := m.Create("my-room", testTemplate(), testSeats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID != "my-room" {
		t.Fatalf("expected explicit ID to be kept, got %q", r.ID)
	}

	if _, err := m.Create("my-room", testTemplate(), testSeats()); err != ErrRoomAlreadyExists {
		t.Fatalf("expected ErrRoomAlreadyExists, got %v", err)
	}
}

func TestManagerCreateGeneratesID(t *testing.T) {
	m := NewManager()

	r, err := m.Create("", testTemplate(), testSeats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected a generated room ID")
	}
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	created, err := m.Create("room1", testTemplate(), testSeats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Get("ROOM1")
	if err != nil {
		t.Fatalf("expected case-insensitive lookup to succeed: %v", err)
	}
	if got != created {
		t.Fatal("expected the same room instance back")
	}

	if _, err := m.Get("missing"); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager()

	first, err := m.GetOrCreate("room1", testTemplate(), testSeats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := m.GetOrCreate("room1", testTemplate(), testSeats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected GetOrCreate to return the existing room on the second call")
	}
}

func TestManagerDelete(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("room1", testTemplate(), testSeats()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Delete("room1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get("room1"); err != ErrRoomNotFound {
		t.Fatalf("expected room to be gone, got %v", err)
	}
	if err := m.Delete("room1"); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound deleting twice, got %v", err)
	}
}

func TestManagerList(t *testing.T) {
	m := NewManager()
	m.Create("room1", testTemplate(), testSeats())
	m.Create("room2", testTemplate(), testSeats())

	if got := len(m.List()); got != 2 {
		t.Fatalf("expected 2 rooms, got %d", got)
	}
}

func TestManagerCleanupExpired(t *testing.T) {
	m := NewManager()
	r, _ := m.Create("room1", testTemplate(), testSeats())
	r.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 room removed, got %d", removed)
	}
	if m.Count() != 0 {
		t.Fatalf("expected 0 rooms remaining, got %d", m.Count())
	}
}

func TestManagerUpdateLastAccessed(t *testing.T) {
	m := NewManager()
	r, _ := m.Create("room1", testTemplate(), testSeats())
	before := r.LastAccessedAt

	time.Sleep(time.Millisecond)
	if err := m.UpdateLastAccessed("room1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.LastAccessedAt.After(before) {
		t.Fatal("expected last accessed time to advance")
	}

	if err := m.UpdateLastAccessed("missing"); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()
	m.Create("shared", testTemplate(), testSeats())

	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			m.Get("shared")
			m.List()
			m.Count()
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
}

func TestManagerRoomIsolation(t *testing.T) {
	m := NewManager()
	r1, _ := m.Create("room1", testTemplate(), testSeats())
	r2, _ := m.Create("room2", testTemplate(), testSeats())

	if _, err := play.MakeAction(r1.Shared, 1, state.PlaceAction(0, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r2.Shared.Board.Get(board.Point{X: 0, Y: 0}).Empty() {
		t.Fatal("acting on room1 mutated room2's board")
	}
}
