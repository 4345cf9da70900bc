package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/variantgo/server/game/play"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Template is a named room blueprint: board dimensions, seat count,
// whether the room starts with a fog-of-war overlay, and the rule
// modifiers new rooms are created with.
type Template struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	SeatCount      int       `json:"seat_count"`
	WithVisibility bool      `json:"with_visibility"`
	Mods           play.Mods `json:"mods"`
}

// Manager handles room template loading and caching.
type Manager struct {
	configDir     string
	defaultConfig *Template
	configs       map[string]*Template
	mu            sync.RWMutex
}

// NewManager creates a new template manager rooted at configDir.
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*Template),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadTemplate loads a template by name, consulting the in-memory cache
// first.
func (m *Manager) LoadTemplate(name string) (*Template, error) {
	m.mu.RLock()
	if tmpl, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return tmpl, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if tmpl, exists := m.configs[name]; exists {
		return tmpl, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	configPath := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var tmpl Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&tmpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &tmpl
	return &tmpl, nil
}

// TemplateInfo is the summary ListTemplates returns for each valid
// template file found on disk.
type TemplateInfo struct {
	Filename    string `json:"filename"`
	TemplateID  string `json:"template_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SeatCount   int    `json:"seat_count"`
}

// ListTemplates returns information about every valid template file in
// the config directory, skipping any that fail to load.
func (m *Manager) ListTemplates() ([]*TemplateInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*TemplateInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		tmpl, err := m.LoadTemplate(name)
		if err != nil {
			continue
		}

		infos = append(infos, &TemplateInfo{
			Filename:    entry.Name(),
			TemplateID:  name,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Width:       tmpl.Width,
			Height:      tmpl.Height,
			SeatCount:   tmpl.SeatCount,
		})
	}

	return infos, nil
}

// GetDefault returns the default template.
func (m *Manager) GetDefault() *Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default template by name.
func (m *Manager) SetDefault(name string) error {
	tmpl, err := m.LoadTemplate(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = tmpl
	return nil
}

// RefreshCache clears the in-memory cache and reloads the default
// template from disk.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*Template)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

func (m *Manager) loadDefaultConfig() error {
	tmpl, err := m.LoadTemplate("classic")
	if err != nil {
		infos, listErr := m.ListTemplates()
		if listErr != nil || len(infos) == 0 {
			m.defaultConfig = minimalTemplate()
			return nil
		}

		tmpl, err = m.LoadTemplate(strings.TrimSuffix(infos[0].Filename, ".json"))
		if err != nil {
			m.defaultConfig = minimalTemplate()
			return nil
		}
	}

	m.defaultConfig = tmpl
	return nil
}

// SaveTemplate validates and writes a template to disk, updating the
// cache.
func (m *Manager) SaveTemplate(name string, tmpl *Template) error {
	if err := Validate(tmpl); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	configPath := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = tmpl
	m.mu.Unlock()

	return nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "default",
		Description: "Minimal 9x9 two-seat template",
		Width:       9,
		Height:      9,
		SeatCount:   2,
	}
}
