package play

import (
	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/state"
)

// capture removes dead opponent groups (paying out ponnuki bonuses),
// then removes the subset of any now-dead own group that was part of
// this move's placement — the mechanism that detects suicide without a
// special case. pointsPlayed is mutated in place.
func (s *SharedState) capture(pointsPlayed *[]board.Point) (captures int, revealed bool) {
	team := s.activeSeat().Team

	groups := board.FindGroups(s.Board)
	for _, g := range groups {
		if g.Liberties != 0 || g.Team == team {
			continue
		}
		for _, p := range g.Points {
			s.Board.Set(p, 0)
			captures++
		}
		if s.revealGroup(g.Points) {
			revealed = true
		}

		if s.Mods.PonnukiIsPoints != nil && len(g.Points) == 1 {
			surrounded := true
			for _, n := range s.Board.Neighbors(g.Points[0]) {
				if s.Board.Get(n) != team {
					surrounded = false
					break
				}
			}
			if surrounded {
				s.Points[team-1] += *s.Mods.PonnukiIsPoints
			}
		}
	}

	// Re-scan: a stone just played may have left its own group with zero
	// liberties. Only points that were part of this move are removed —
	// stones belonging to a dead group that were already on the board
	// are untouched.
	groups = board.FindGroups(s.Board)
	for _, g := range groups {
		if g.Liberties != 0 || g.Team != team {
			continue
		}
		remaining := (*pointsPlayed)[:0:0]
		for _, p := range *pointsPlayed {
			if g.Contains(p) {
				s.Board.Set(p, 0)
				continue
			}
			remaining = append(remaining, p)
		}
		*pointsPlayed = remaining
		if s.revealGroup(g.Points) {
			revealed = true
		}
	}

	return captures, revealed
}

// revealGroup clears the fog, if any, over every point of a captured
// group and its orthogonal neighbors. It reports whether anything was
// actually hidden beforehand.
func (s *SharedState) revealGroup(points []board.Point) bool {
	if s.Visibility == nil {
		return false
	}
	revealed := false
	for _, p := range points {
		if s.Visibility.Reveal(p) {
			revealed = true
		}
		for _, n := range s.Board.Neighbors(p) {
			if s.Visibility.Reveal(n) {
				revealed = true
			}
		}
	}
	return revealed
}

// superko scans back at most capturesBeforeMove+capturesThisMove history
// entries (at least one) for a position with equal hash and equal board
// contents. On a match the board and points are restored to the last
// history entry and ErrKo is returned.
func (s *SharedState) superko(capturesThisMove int, hash uint64) error {
	window := s.CaptureCount + capturesThisMove
	if window < 1 {
		window = 1
	}

	n := len(s.History)
	checked := 0
	for i := n - 1; i >= 0 && checked < window; i, checked = i-1, checked+1 {
		entry := s.History[i]
		if entry.Hash == hash && entry.Board.Equal(s.Board) {
			last := s.History[len(s.History)-1]
			s.Board = last.Board.Clone()
			s.Points = append([]int(nil), last.Points...)
			return state.ErrKo
		}
	}

	return nil
}
