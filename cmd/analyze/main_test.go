package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/play"
)

func writeAnalyzeTemplate(t *testing.T, dir, name string, tmpl *config.Template) string {
	t.Helper()
	data, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatalf("failed to marshal template: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

func TestAnalyzeTemplate_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalyzeTemplate(t, dir, "classic.json", &config.Template{
		Name:      "classic",
		Width:     9,
		Height:    9,
		SeatCount: 2,
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestAnalyzeTemplate_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked on missing file: %v", r)
		}
	}()
	analyzeTemplate(filepath.Join(t.TempDir(), "missing.json"))
}

func TestAnalyzeTemplate_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked on invalid JSON: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestAnalyzeTemplate_FailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalyzeTemplate(t, dir, "bad.json", &config.Template{
		Name:      "",
		Width:     0,
		Height:    9,
		SeatCount: 2,
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked on a template that fails validation: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestAnalyzeTemplate_NPlusOneFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalyzeTemplate(t, dir, "oversized-run.json", &config.Template{
		Name:      "oversized-run",
		Width:     9,
		Height:    9,
		SeatCount: 2,
		Mods: play.Mods{
			NPlusOne: &play.NPlusOneRule{Length: 20},
		},
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestAnalyzeTemplate_NPlusOneTightSlack(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalyzeTemplate(t, dir, "tight-run.json", &config.Template{
		Name:      "tight-run",
		Width:     9,
		Height:    9,
		SeatCount: 2,
		Mods: play.Mods{
			NPlusOne: &play.NPlusOneRule{Length: 9},
		},
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestAnalyzeTemplate_ZenGoUnevenDivision(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalyzeTemplate(t, dir, "uneven.json", &config.Template{
		Name:      "uneven",
		Width:     9,
		Height:    9,
		SeatCount: 3,
		Mods: play.Mods{
			ZenGo: &play.ZenGoRule{ColorCount: 2},
		},
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeTemplate panicked: %v", r)
		}
	}()
	analyzeTemplate(path)
}

func TestMain_Integration(t *testing.T) {
	tmpDir := t.TempDir()
	configsDir := filepath.Join(tmpDir, "configs")
	if err := os.Mkdir(configsDir, 0755); err != nil {
		t.Fatalf("failed to create configs dir: %v", err)
	}

	writeAnalyzeTemplate(t, configsDir, "classic.json", &config.Template{
		Name:      "classic",
		Width:     9,
		Height:    9,
		SeatCount: 2,
	})

	originalWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(originalWD)

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	// main reads its directory from os.Args[1]; run it with no arguments
	// so it analyzes the default "configs" directory, not a test flag.
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"analyze"}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("main() panicked: %v", r)
		}
	}()
	main()
}
