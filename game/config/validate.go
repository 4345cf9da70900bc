package config

import "fmt"

const (
	MinBoardSize = 1
	MaxBoardSize = 361
	MinSeats     = 2
	MaxSeats     = 16
)

// Validate checks a template for internal consistency: positive board
// dimensions, a sane seat count, and rule modifiers that actually fit
// the board and seat roster they'd be applied to.
func Validate(tmpl *Template) error {
	if tmpl.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if tmpl.Width < MinBoardSize || tmpl.Width > MaxBoardSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, tmpl.Width)
	}
	if tmpl.Height < MinBoardSize || tmpl.Height > MaxBoardSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, tmpl.Height)
	}

	if tmpl.SeatCount < MinSeats || tmpl.SeatCount > MaxSeats {
		return fmt.Errorf("config validation: seat_count must be between %d and %d, got %d", MinSeats, MaxSeats, tmpl.SeatCount)
	}

	if rule := tmpl.Mods.NPlusOne; rule != nil {
		longestLine := tmpl.Width
		if tmpl.Height > longestLine {
			longestLine = tmpl.Height
		}
		if int(rule.Length) < 2 || int(rule.Length) > longestLine {
			return fmt.Errorf("config validation: n_plus_one.length must be between 2 and %d, got %d", longestLine, rule.Length)
		}
	}

	if rule := tmpl.Mods.ZenGo; rule != nil {
		if rule.ColorCount < 2 {
			return fmt.Errorf("config validation: zen_go.color_count must be at least 2, got %d", rule.ColorCount)
		}
		if int(rule.ColorCount) > tmpl.SeatCount {
			return fmt.Errorf("config validation: zen_go.color_count (%d) cannot exceed seat_count (%d)", rule.ColorCount, tmpl.SeatCount)
		}
	}

	if tmpl.Mods.PonnukiIsPoints != nil && *tmpl.Mods.PonnukiIsPoints < 0 {
		return fmt.Errorf("config validation: ponnuki_is_points must not be negative, got %d", *tmpl.Mods.PonnukiIsPoints)
	}

	return nil
}
