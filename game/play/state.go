package play

import (
	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/state"
)

// Seat is one position at the table: the player occupying it (if any),
// the team color it currently plays, and whether it has resigned.
type Seat struct {
	Player   *uint64
	Team     board.Color
	Resigned bool
}

// NPlusOneRule grants an extra turn when a just-played stone completes a
// straight run of exactly Length stones.
type NPlusOneRule struct {
	Length uint8 `json:"length"`
}

// ZenGoRule rotates every seat's team color by move number modulo
// ColorCount after every action.
type ZenGoRule struct {
	ColorCount uint8 `json:"color_count"`
}

// Mods is the room's immutable rule configuration. Every field is
// optional; a zero value disables the corresponding behavior.
type Mods struct {
	Pixel           bool          `json:"pixel"`
	PonnukiIsPoints *int          `json:"ponnuki_is_points,omitempty"`
	NPlusOne        *NPlusOneRule `json:"n_plus_one,omitempty"`
	ZenGo           *ZenGoRule    `json:"zen_go,omitempty"`
}

// BoardHistory is one append-only snapshot: the position right after a
// successful Place or Pass (or the initial position before any action).
type BoardHistory struct {
	Hash       uint64
	Board      *board.Board
	Visibility *board.Visibility
	State      state.GameState
	Points     []int
	Turn       int
}

// PlayState is the play phase's own per-room state: which seats have
// passed since the last reset, and which points the last successful
// action touched.
type PlayState struct {
	PlayersPassed []bool
	LastStone     []board.Point
}

// Kind implements state.GameState.
func (p *PlayState) Kind() string { return "play" }

// NewPlayState returns a fresh PlayState for a room with seatCount seats.
func NewPlayState(seatCount int) *PlayState {
	return &PlayState{PlayersPassed: make([]bool, seatCount)}
}

func (p *PlayState) clone() *PlayState {
	passed := make([]bool, len(p.PlayersPassed))
	copy(passed, p.PlayersPassed)
	var last []board.Point
	if p.LastStone != nil {
		last = make([]board.Point, len(p.LastStone))
		copy(last, p.LastStone)
	}
	return &PlayState{PlayersPassed: passed, LastStone: last}
}

// SharedState is the engine's whole in-memory state for one room.
type SharedState struct {
	Board        *board.Board
	Visibility   *board.Visibility // nil means full information
	Seats        []Seat
	Turn         int
	Points       []int // per-team running score adjustment, Points[team-1]
	History      []BoardHistory
	CaptureCount int
	Mods         Mods
	Play         *PlayState
}

// NewGame builds a SharedState for a fresh room: an empty board of the
// given dimensions, the supplied seats, and exactly one history entry
// for the initial position.
func NewGame(width, height int, seats []Seat, mods Mods, withVisibility bool) *SharedState {
	b := board.New(width, height)
	var vis *board.Visibility
	if withVisibility {
		vis = board.NewVisibility(width, height)
	}

	maxTeam := 0
	for _, s := range seats {
		if int(s.Team) > maxTeam {
			maxTeam = int(s.Team)
		}
	}

	shared := &SharedState{
		Board:      b,
		Visibility: vis,
		Seats:      seats,
		Turn:       0,
		Points:     make([]int, maxTeam),
		Mods:       mods,
		Play:       NewPlayState(len(seats)),
	}

	shared.History = append(shared.History, shared.snapshot())
	shared.setZenTeams()
	return shared
}

func (s *SharedState) snapshot() BoardHistory {
	return BoardHistory{
		Hash:       s.Board.Hash(),
		Board:      s.Board.Clone(),
		Visibility: s.Visibility.Clone(),
		State:      s.Play.clone(),
		Points:     append([]int(nil), s.Points...),
		Turn:       s.Turn,
	}
}

// checkpoint captures everything a rejected action must restore: the
// caller sees a rejection and the state is byte-identical to what it
// was before the call.
type checkpoint struct {
	board      *board.Board
	visibility *board.Visibility
	points     []int
	turn       int
	play       *PlayState
	seats      []Seat
}

func (s *SharedState) checkpoint() checkpoint {
	seats := make([]Seat, len(s.Seats))
	copy(seats, s.Seats)
	return checkpoint{
		board:      s.Board.Clone(),
		visibility: s.Visibility.Clone(),
		points:     append([]int(nil), s.Points...),
		turn:       s.Turn,
		play:       s.Play.clone(),
		seats:      seats,
	}
}

func (s *SharedState) restore(c checkpoint) {
	s.Board = c.board
	s.Visibility = c.visibility
	s.Points = c.points
	s.Turn = c.turn
	s.Play = c.play
	s.Seats = c.seats
}

func (s *SharedState) activeSeat() Seat {
	return s.Seats[s.Turn]
}

// TeamOf returns the team of playerID's seat, or 0 if playerID holds no
// seat in this game.
func (s *SharedState) TeamOf(playerID uint64) board.Color {
	for _, seat := range s.Seats {
		if seat.Player != nil && *seat.Player == playerID {
			return seat.Team
		}
	}
	return 0
}
