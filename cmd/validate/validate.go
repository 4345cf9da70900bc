// Command variantgo-validate batch-validates every room template JSON
// file in a directory and reports the accumulated errors across all of
// them in one pass.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/variantgo/server/game/config"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to find template files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("no template files found in %s\n", dir)
		return
	}

	var allErrs error
	validCount := 0

	for _, file := range files {
		name := filepath.Base(file)
		if err := validateFile(file); err != nil {
			allErrs = multierr.Append(allErrs, fmt.Errorf("%s: %w", name, err))
			fmt.Printf("❌ %s\n", name)
			continue
		}
		validCount++
		fmt.Printf("✅ %s\n", name)
	}

	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("%d/%d templates valid\n", validCount, len(files))

	if allErrs != nil {
		fmt.Println()
		for _, err := range multierr.Errors(allErrs) {
			fmt.Printf("  %v\n", err)
		}
		os.Exit(1)
	}
}

func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var tmpl config.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return config.Validate(&tmpl)
}
