// Command analyze prints quick, human-readable heuristics about the room
// templates in a config directory: dimensions, seat count, and whether
// the configured mods can ever actually trigger on a board that size.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/variantgo/server/game/config"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", dir, err)
		os.Exit(1)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeTemplate(filepath.Join(dir, entry.Name()))
	}
}

func analyzeTemplate(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var tmpl config.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", tmpl.Name)
	fmt.Printf("Board: %d x %d, %d seats, visibility=%v\n", tmpl.Width, tmpl.Height, tmpl.SeatCount, tmpl.WithVisibility)

	area := tmpl.Width * tmpl.Height
	if tmpl.SeatCount > 0 {
		fmt.Printf("Points per seat: %.1f\n", float64(area)/float64(tmpl.SeatCount))
	}

	if err := config.Validate(&tmpl); err != nil {
		fmt.Printf("❌ fails validation: %v\n", err)
		return
	}

	longestLine := tmpl.Width
	if tmpl.Height > longestLine {
		longestLine = tmpl.Height
	}

	// config.Validate already rejects an n_plus_one.length that can't
	// fit on the board at all; what it doesn't catch is a run so close
	// to the board's edge that only a handful of positions can ever
	// complete it.
	if rule := tmpl.Mods.NPlusOne; rule != nil {
		margin := longestLine - int(rule.Length)
		if margin <= 1 {
			fmt.Printf("⚠️  n_plus_one length %d leaves only %d cell(s) of slack on a %dx%d board; few positions can complete it\n",
				rule.Length, margin, tmpl.Width, tmpl.Height)
		} else {
			fmt.Printf("✅ n_plus_one length %d has room to complete in multiple positions\n", rule.Length)
		}
	}

	// config.Validate already rejects a color_count that exceeds the
	// seat count; what it doesn't catch is one that doesn't evenly
	// divide it, which rotates some seats through fewer colors than
	// others over the course of a game.
	if rule := tmpl.Mods.ZenGo; rule != nil {
		if tmpl.SeatCount%int(rule.ColorCount) != 0 {
			fmt.Printf("⚠️  zen_go color_count %d does not evenly divide %d seats; rotation will be uneven\n",
				rule.ColorCount, tmpl.SeatCount)
		} else {
			fmt.Printf("✅ zen_go color_count %d divides %d seats evenly\n", rule.ColorCount, tmpl.SeatCount)
		}
	}

	if tmpl.Mods.PonnukiIsPoints != nil && area < 9 {
		fmt.Printf("⚠️  ponnuki_is_points is set on a %d-point board, too small for a real ponnuki shape\n", area)
	}
}
