// Package config loads and caches room templates: the board size, seat
// count, and rule modifiers a new room is created with.
//
// Templates are JSON files, one per template, in a directory (e.g.
// configs/classic.json, configs/fog9x9.json, configs/pixel-duel.json).
// Manager caches loaded templates in memory. Its default template is
// classic when that file exists, otherwise the first valid template in
// the directory, and a minimal built-in default only when the directory
// holds no valid template. LoadTemplate of a missing name returns
// ErrConfigNotFound; it does not fall back to the default.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tmpl, err := manager.LoadTemplate("fog9x9")
//	tmpls, err := manager.ListTemplates()
//	def := manager.GetDefault()
package config
