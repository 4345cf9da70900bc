package play

import "github.com/variantgo/server/game/board"

// checkNPlusOne implements the N+1 modifier: for each just-played point,
// walk outward in each of the four line directions
// (vertical, horizontal, both diagonals) along same-color stones,
// counting the connected run including the played point exactly once per
// direction. If any run's length equals rule.Length, that direction's
// points are revealed in fog (if an overlay is present) and the move
// earns an extra turn.
//
// The backward half of each direction excludes the played point; the
// forward half includes it as its first step. This mirrors
// shared/src/states/play/n_plus_one.rs exactly: mirror the counting, do
// not "simplify" it, or the run lengths drift from the source.
func checkNPlusOne(pointsPlayed []board.Point, b *board.Board, vis *board.Visibility, rule *NPlusOneRule) (extraTurn bool) {
	target := int(rule.Length)

	addPoint := func(linePoints *[]board.Point, p board.Point, color board.Color) (stop bool) {
		if !b.InBounds(p) || b.Get(p) != color {
			return true
		}
		*linePoints = append(*linePoints, p)
		return false
	}

	revealIfMatch := func(linePoints []board.Point) {
		if len(linePoints) != target {
			return
		}
		extraTurn = true
		if vis != nil {
			for _, p := range linePoints {
				vis.Set(p, 0)
			}
		}
	}

	for _, played := range pointsPlayed {
		color := b.Get(played)

		// Vertical.
		var line []board.Point
		for y := played.Y - 1; y >= 0; y-- {
			if addPoint(&line, board.Point{X: played.X, Y: y}, color) {
				break
			}
		}
		for y := played.Y; y < b.Height; y++ {
			if addPoint(&line, board.Point{X: played.X, Y: y}, color) {
				break
			}
		}
		revealIfMatch(line)

		// Horizontal.
		line = nil
		for x := played.X - 1; x >= 0; x-- {
			if addPoint(&line, board.Point{X: x, Y: played.Y}, color) {
				break
			}
		}
		for x := played.X; x < b.Width; x++ {
			if addPoint(&line, board.Point{X: x, Y: played.Y}, color) {
				break
			}
		}
		revealIfMatch(line)

		// Diagonal: top-left to bottom-right.
		line = nil
		p := played
		for p.X > 0 && p.Y > 0 {
			p = board.Point{X: p.X - 1, Y: p.Y - 1}
			if addPoint(&line, p, color) {
				break
			}
		}
		p = played
		for b.InBounds(p) {
			if addPoint(&line, p, color) {
				break
			}
			p = board.Point{X: p.X + 1, Y: p.Y + 1}
		}
		revealIfMatch(line)

		// Diagonal: bottom-left to top-right.
		line = nil
		p = played
		for p.X > 0 {
			p = board.Point{X: p.X - 1, Y: p.Y + 1}
			if !b.InBounds(p) {
				break
			}
			if addPoint(&line, p, color) {
				break
			}
		}
		p = played
		for b.InBounds(p) {
			if addPoint(&line, p, color) {
				break
			}
			if p.Y == 0 {
				break
			}
			p = board.Point{X: p.X + 1, Y: p.Y - 1}
		}
		revealIfMatch(line)
	}

	return extraTurn
}
