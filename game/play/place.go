package play

import (
	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/state"
)

// placeStone returns the points actually touched by this placement
// (written stones and/or revealed fog) and consumed, which is true when
// the action is fully handled as a revelation and the caller must stop
// here — no capture pass, no superko, no turn advance, no history
// append.
func (s *SharedState) placeStone(x, y uint32) (pointsPlayed []board.Point, consumed bool, err error) {
	team := s.activeSeat().Team

	if s.Mods.Pixel {
		return s.placeStonePixel(x, y, team)
	}

	p := board.Point{X: int(x), Y: int(y)}
	if !s.Board.InBounds(p) {
		return nil, false, state.ErrOutOfBounds
	}

	revealed := false
	if s.Visibility != nil {
		revealed = !s.Visibility.Get(p).Empty()
		s.Visibility.Reveal(p)
	}

	if !s.Board.Get(p).Empty() {
		if revealed {
			s.Play.LastStone = []board.Point{p}
			return nil, true, nil
		}
		return nil, false, state.ErrPointOccupied
	}

	s.Board.Set(p, team)
	return []board.Point{p}, false, nil
}

// placeStonePixel implements the pixel variant: 1-based client
// coordinates addressing the 2x2 block (x-1,y-1)..(x,y).
func (s *SharedState) placeStonePixel(x, y uint32, team board.Color) (pointsPlayed []board.Point, consumed bool, err error) {
	if int(x) > s.Board.Width || int(y) > s.Board.Height {
		return nil, false, state.ErrOutOfBounds
	}

	baseX, baseY := int(x)-1, int(y)-1
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	anyPlaced := false
	anyRevealed := false
	var played []board.Point

	for _, off := range offsets {
		px, py := baseX+off[0], baseY+off[1]
		if px < 0 || py < 0 {
			continue
		}
		coord := board.Point{X: px, Y: py}
		if !s.Board.InBounds(coord) {
			continue
		}

		if s.Visibility != nil {
			if !s.Visibility.Get(coord).Empty() {
				anyRevealed = true
				played = append(played, coord)
			}
			s.Visibility.Reveal(coord)
		}

		if !s.Board.Get(coord).Empty() {
			continue
		}

		s.Board.Set(coord, team)
		played = append(played, coord)
		anyPlaced = true
	}

	if !anyPlaced {
		if anyRevealed {
			s.Play.LastStone = played
			return nil, true, nil
		}
		return nil, false, state.ErrPointOccupied
	}

	return played, false, nil
}
