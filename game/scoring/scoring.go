// Package scoring is the landing pad for play.MakeAction's PushState
// effect when every seat has passed. Scoring's own rules are out of
// scope for this engine — this package holds just enough of a GameState
// to let the play phase hand off cleanly; the scoring phase's own state
// machine belongs to a different package entirely and is not
// implemented here.
package scoring

import "github.com/variantgo/server/game/board"

// State is the seam the play phase pushes into once every seat has
// passed. It carries the final board and starting points so a real
// scoring implementation has what it needs to begin counting territory;
// it performs no scoring itself.
type State struct {
	FinalBoard  *board.Board
	SeatCount   int
	StartPoints []int
}

// Kind implements state.GameState.
func (s *State) Kind() string { return "scoring" }

// New captures the board and points a scoring phase would start from.
// The board is cloned so the play phase's own history isn't aliased by
// whatever the (unimplemented) scoring phase goes on to do with it.
func New(finalBoard *board.Board, seatCount int, points []int) *State {
	startPoints := make([]int, len(points))
	copy(startPoints, points)
	return &State{
		FinalBoard:  finalBoard.Clone(),
		SeatCount:   seatCount,
		StartPoints: startPoints,
	}
}
