// Package state defines the vocabulary shared by every phase of a room's
// lifecycle (currently just play; scoring is a deliberate stub): the
// action envelope a seat submits, the closed set of rejection reasons a
// phase can return, and the GameState marker a phase's push-transition
// effect targets.
package state

import "github.com/variantgo/server/game/board"

// GameState marks a type as a valid phase for a room to be in. Each
// phase package (play, scoring) provides its own implementation.
type GameState interface {
	// Kind is a short, stable tag used for logging and wire encoding.
	Kind() string
}

// ActionType distinguishes the three inputs a phase's state machine
// accepts.
type ActionType int

const (
	ActionPlace ActionType = iota
	ActionPass
	ActionCancel
)

// Action is the input a seat submits to the engine. X and Y are only
// meaningful when Type is ActionPlace.
type Action struct {
	Type ActionType
	X, Y uint32
}

// PlaceAction builds a Place action at (x, y).
func PlaceAction(x, y uint32) Action { return Action{Type: ActionPlace, X: x, Y: y} }

// PassAction builds a Pass action.
func PassAction() Action { return Action{Type: ActionPass} }

// CancelAction builds a Cancel (undo) action.
func CancelAction() Action { return Action{Type: ActionCancel} }

// MakeActionError is the closed set of rejection reasons make_action can
// return. Every value is a sentinel: callers compare with ==, never
// errors.Is unwrapping, since these are never wrapped.
type MakeActionError string

func (e MakeActionError) Error() string { return string(e) }

const (
	ErrNotTurn       MakeActionError = "not this seat's turn"
	ErrOutOfBounds   MakeActionError = "point out of bounds"
	ErrPointOccupied MakeActionError = "point already occupied"
	ErrSuicide       MakeActionError = "move has no liberties"
	ErrKo            MakeActionError = "move repeats a prior position"
)

// ActionChange is the non-error result of a successful action. A nil Next
// means no phase transition; a non-nil Next is a request for the caller
// to push the room into that phase.
type ActionChange struct {
	Next GameState
}

// Point re-exports the board point type actions report against, so callers of
// this package never need to import game/board just to read LastStone.
type Point = board.Point
