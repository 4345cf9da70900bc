package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/variantgo/server/game/config"
)

func writeTemplate(t *testing.T, dir, name string, tmpl *config.Template) string {
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

func TestValidateFileValidTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "classic.json", &config.Template{
		Name:      "classic",
		Width:     9,
		Height:    9,
		SeatCount: 2,
	})

	if err := validateFile(path); err != nil {
		t.Errorf("expected valid template, got error: %v", err)
	}
}

func TestValidateFileInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "bad.json", &config.Template{
		Name:      "",
		Width:     0,
		Height:    9,
		SeatCount: 2,
	})

	if err := validateFile(path); err == nil {
		t.Error("expected validation error for an empty name and zero width")
	}
}

func TestValidateFileMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "malformed.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := validateFile(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestValidateFileMissingFile(t *testing.T) {
	if err := validateFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
