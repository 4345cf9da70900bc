package play

import "github.com/variantgo/server/game/board"

// PersistedSeat is the wire/disk form of a Seat.
type PersistedSeat struct {
	Player   *uint64     `json:"player,omitempty"`
	Team     board.Color `json:"team"`
	Resigned bool        `json:"resigned"`
}

// PersistedHistory is the wire/disk form of one BoardHistory entry.
type PersistedHistory struct {
	Hash          uint64             `json:"hash"`
	Board         []board.Color      `json:"board"`
	Visibility    []board.TeamMask   `json:"visibility,omitempty"`
	PlayersPassed []bool             `json:"players_passed"`
	LastStone     []board.Point      `json:"last_stone,omitempty"`
	Points        []int              `json:"points"`
	Turn          int                `json:"turn"`
}

// PersistedState is the flat, fully exported form of a SharedState,
// suitable for json.Marshal and for transmission over the wire. Board
// and Visibility are unrolled into flat slices since both carry
// unexported internals that encoding/json cannot see.
type PersistedState struct {
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Seats        []PersistedSeat    `json:"seats"`
	Turn         int                `json:"turn"`
	Points       []int              `json:"points"`
	CaptureCount int                `json:"capture_count"`
	Mods         Mods               `json:"mods"`
	History      []PersistedHistory `json:"history"`
}

// Freeze flattens s into a form that round-trips through encoding/json.
func (s *SharedState) Freeze() PersistedState {
	seats := make([]PersistedSeat, len(s.Seats))
	for i, seat := range s.Seats {
		seats[i] = PersistedSeat{Player: seat.Player, Team: seat.Team, Resigned: seat.Resigned}
	}

	history := make([]PersistedHistory, len(s.History))
	for i, h := range s.History {
		playState, _ := h.State.(*PlayState)
		entry := PersistedHistory{
			Hash:   h.Hash,
			Board:  h.Board.Cells(),
			Points: append([]int(nil), h.Points...),
			Turn:   h.Turn,
		}
		if h.Visibility != nil {
			entry.Visibility = h.Visibility.Masks()
		}
		if playState != nil {
			entry.PlayersPassed = append([]bool(nil), playState.PlayersPassed...)
			entry.LastStone = append([]board.Point(nil), playState.LastStone...)
		}
		history[i] = entry
	}

	return PersistedState{
		Width:        s.Board.Width,
		Height:       s.Board.Height,
		Seats:        seats,
		Turn:         s.Turn,
		Points:       append([]int(nil), s.Points...),
		CaptureCount: s.CaptureCount,
		Mods:         s.Mods,
		History:      history,
	}
}

// Thaw rebuilds a SharedState from a PersistedState previously produced
// by Freeze. Visibility is rebuilt for every history entry if any entry
// carried one, since the overlay's presence is a per-room, not
// per-snapshot, property.
func Thaw(p PersistedState) *SharedState {
	seats := make([]Seat, len(p.Seats))
	for i, s := range p.Seats {
		seats[i] = Seat{Player: s.Player, Team: s.Team, Resigned: s.Resigned}
	}

	history := make([]BoardHistory, len(p.History))
	var withVisibility bool
	for _, h := range p.History {
		if h.Visibility != nil {
			withVisibility = true
			break
		}
	}

	for i, h := range p.History {
		b := board.FromCells(p.Width, p.Height, h.Board)
		var vis *board.Visibility
		if withVisibility {
			if h.Visibility != nil {
				vis = board.FromMasks(p.Width, p.Height, h.Visibility)
			} else {
				vis = board.NewVisibility(p.Width, p.Height)
			}
		}
		history[i] = BoardHistory{
			Hash:       h.Hash,
			Board:      b,
			Visibility: vis,
			State: &PlayState{
				PlayersPassed: append([]bool(nil), h.PlayersPassed...),
				LastStone:     append([]board.Point(nil), h.LastStone...),
			},
			Points: append([]int(nil), h.Points...),
			Turn:   h.Turn,
		}
	}

	last := history[len(history)-1]
	return &SharedState{
		Board:        last.Board.Clone(),
		Visibility:   last.Visibility.Clone(),
		Seats:        seats,
		Turn:         p.Turn,
		Points:       append([]int(nil), p.Points...),
		History:      history,
		CaptureCount: p.CaptureCount,
		Mods:         p.Mods,
		Play:         last.State.(*PlayState).clone(),
	}
}
