package play

import (
	"encoding/json"
	"testing"

	"github.com/variantgo/server/game/state"
)

func TestFreezeThawRoundTrip(t *testing.T) {
	s := twoSeatGame(9, 9, Mods{NPlusOne: &NPlusOneRule{Length: 4}}, true)
	mustPlace(t, s, 1, 3, 3)
	mustPlace(t, s, 2, 4, 4)

	frozen := s.Freeze()
	data, err := json.Marshal(frozen)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var decoded PersistedState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	thawed := Thaw(decoded)

	if !thawed.Board.Equal(s.Board) {
		t.Fatal("board did not round-trip through Freeze/Thaw/JSON")
	}
	if thawed.Turn != s.Turn {
		t.Fatalf("turn mismatch: got %d want %d", thawed.Turn, s.Turn)
	}
	if thawed.CaptureCount != s.CaptureCount {
		t.Fatalf("capture count mismatch: got %d want %d", thawed.CaptureCount, s.CaptureCount)
	}
	if len(thawed.History) != len(s.History) {
		t.Fatalf("history length mismatch: got %d want %d", len(thawed.History), len(s.History))
	}
	for i, p := range s.Points {
		if thawed.Points[i] != p {
			t.Fatalf("points[%d] mismatch: got %d want %d", i, thawed.Points[i], p)
		}
	}

	// The rebuilt state must still behave like a live SharedState.
	if _, err := MakeAction(thawed, 1, state.PassAction()); err != nil {
		t.Fatalf("unexpected error acting on thawed state: %v", err)
	}
}
