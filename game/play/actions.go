package play

import (
	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/scoring"
	"github.com/variantgo/server/game/state"
)

// MakeAction validates and applies action on behalf of playerID against
// shared, returning the resulting phase-transition request or a
// rejection. On error, shared and shared.Play are byte-identical to
// their pre-call values — callers never need to snapshot before
// calling.
func MakeAction(shared *SharedState, playerID uint64, action state.Action) (state.ActionChange, error) {
	active := shared.activeSeat()
	if active.Player == nil || *active.Player != playerID {
		return state.ActionChange{}, state.ErrNotTurn
	}

	var (
		change state.ActionChange
		err    error
	)

	switch action.Type {
	case state.ActionPlace:
		change, err = shared.makeActionPlace(action.X, action.Y)
	case state.ActionPass:
		change, err = shared.makeActionPass()
	case state.ActionCancel:
		change, err = shared.makeActionCancel()
	default:
		return state.ActionChange{}, state.ErrOutOfBounds
	}

	if err != nil {
		return state.ActionChange{}, err
	}

	shared.setZenTeams()
	return change, nil
}

func (s *SharedState) makeActionPlace(x, y uint32) (state.ActionChange, error) {
	cp := s.checkpoint()

	pointsPlayed, consumed, err := s.placeStone(x, y)
	if err != nil {
		s.restore(cp)
		return state.ActionChange{}, err
	}
	if consumed || len(pointsPlayed) == 0 {
		return state.ActionChange{}, nil
	}

	captures, revealed := s.capture(&pointsPlayed)

	if len(pointsPlayed) == 0 {
		// Undo the placement attempt by restoring board and points from
		// the last history entry. A fog reveal during capture still
		// counts as a consumed (non-error) move.
		if revealed {
			s.Board = cp.board
			s.Points = cp.points
			return state.ActionChange{}, nil
		}
		s.restore(cp)
		return state.ActionChange{}, state.ErrSuicide
	}

	hash := s.Board.Hash()
	if err := s.superko(captures, hash); err != nil {
		s.restore(cp)
		return state.ActionChange{}, err
	}

	extraTurn := false
	if rule := s.Mods.NPlusOne; rule != nil {
		extraTurn = checkNPlusOne(pointsPlayed, s.Board, s.Visibility, rule)
	}

	if !extraTurn {
		s.Turn = (s.Turn + 1) % len(s.Seats)
	}

	s.Play.LastStone = pointsPlayed
	for i := range s.Play.PlayersPassed {
		s.Play.PlayersPassed[i] = false
	}

	s.History = append(s.History, s.snapshot())
	s.CaptureCount += captures

	return state.ActionChange{}, nil
}

func (s *SharedState) makeActionPass() (state.ActionChange, error) {
	active := s.activeSeat()

	for i, seat := range s.Seats {
		if seat.Team == active.Team {
			s.Play.PlayersPassed[i] = true
		}
	}

	s.Turn = (s.Turn + 1) % len(s.Seats)
	s.History = append(s.History, s.snapshot())

	allPassed := true
	for _, p := range s.Play.PlayersPassed {
		if !p {
			allPassed = false
			break
		}
	}
	if allPassed {
		for i := range s.Play.PlayersPassed {
			s.Play.PlayersPassed[i] = false
		}
		return state.ActionChange{Next: scoring.New(s.Board, len(s.Seats), s.Points)}, nil
	}

	return state.ActionChange{}, nil
}

func (s *SharedState) makeActionCancel() (state.ActionChange, error) {
	if len(s.History) < 2 {
		return state.ActionChange{}, state.ErrOutOfBounds
	}

	s.History = s.History[:len(s.History)-1]
	last := s.History[len(s.History)-1]

	s.Board = last.Board.Clone()
	s.Visibility = last.Visibility.Clone()
	s.Points = append([]int(nil), last.Points...)
	s.Turn = last.Turn
	s.Play = last.State.(*PlayState).clone()

	return state.ActionChange{}, nil
}

// setZenTeams recomputes every seat's team from the move number when
// the zen-go modifier is configured. Called once per MakeAction, outside
// the per-action-kind branch, rather than duplicated into each handler.
func (s *SharedState) setZenTeams() {
	rule := s.Mods.ZenGo
	if rule == nil {
		return
	}
	moveNumber := len(s.History) - 1
	for i := range s.Seats {
		s.Seats[i].Team = board.Color(moveNumber%int(rule.ColorCount)) + 1
	}
}
