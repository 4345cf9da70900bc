package room

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/play"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
)

// Manager handles room lifecycle: creation, lookup, expiry, and
// optional durable persistence.
type Manager struct {
	rooms       map[string]*Room
	persistence Persistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory room manager.
func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

// NewManagerWithPersistence creates a new room manager backed by
// persistence.
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{rooms: make(map[string]*Room), persistence: persistence}
}

// Create creates a new room with the given ID (a fresh UUID if empty)
// from tmpl.
func (m *Manager) Create(id string, tmpl *config.Template, seats []play.Seat) (*Room, error) {
	if id == "" {
		id = m.generateRoomID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.roomExists(id) {
		return nil, ErrRoomAlreadyExists
	}

	shared := play.NewGame(tmpl.Width, tmpl.Height, seats, tmpl.Mods, tmpl.WithVisibility)

	var members []uint64
	for _, seat := range seats {
		if seat.Player != nil {
			members = append(members, *seat.Player)
		}
	}

	r := &Room{
		ID:             id,
		TemplateID:     tmpl.Name,
		Shared:         shared,
		Members:        members,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.rooms[strings.ToLower(id)] = r

	if m.persistence != nil {
		if err := m.persistence.Save(r); err != nil {
			log.Printf("warning: failed to persist room %s: %v", id, err)
		}
	}

	return r, nil
}

// Get retrieves a room by ID (case-insensitive), falling back to
// persistence if it isn't already in memory.
func (m *Manager) Get(id string) (*Room, error) {
	m.mu.RLock()
	r, exists := m.rooms[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return r, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		r, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted room: %w", err)
		}

		m.mu.Lock()
		m.rooms[strings.ToLower(id)] = r
		m.mu.Unlock()

		return r, nil
	}

	return nil, ErrRoomNotFound
}

// GetOrCreate gets an existing room or creates a new one from tmpl.
func (m *Manager) GetOrCreate(id string, tmpl *config.Template, seats []play.Seat) (*Room, error) {
	r, err := m.Get(id)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, ErrRoomNotFound) {
		return m.Create(id, tmpl, seats)
	}
	return nil, err
}

// List returns every room currently held in memory.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		result = append(result, r)
	}
	return result
}

// Delete removes a room from memory and, if configured, from
// persistence.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.rooms[lowerID]
	if inMemory {
		delete(m.rooms, lowerID)
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted room: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrRoomNotFound
	}
	return nil
}

// UpdateLastAccessed bumps a room's last-accessed time and, if
// persistence is configured, re-saves it.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.rooms[strings.ToLower(id)]
	if !exists {
		return ErrRoomNotFound
	}
	r.LastAccessedAt = time.Now()

	if m.persistence != nil {
		if err := m.persistence.Save(r); err != nil {
			log.Printf("warning: failed to persist room %s after access update: %v", id, err)
		}
	}
	return nil
}

// Save saves a specific room to persistence.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	r, exists := m.rooms[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrRoomNotFound
	}

	return m.persistence.Save(r)
}

// CleanupExpiredSessions removes rooms that haven't been accessed
// within maxAge, returning how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, r := range m.rooms {
		if r.LastAccessedAt.Before(cutoff) {
			delete(m.rooms, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of rooms currently in memory.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *Manager) generateRoomID() string {
	return uuid.NewString()
}

func (m *Manager) roomExists(id string) bool {
	_, exists := m.rooms[strings.ToLower(id)]
	return exists
}

// LoadPersistedSessions loads every persisted room into memory.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted rooms: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.rooms[strings.ToLower(id)]; exists {
			continue
		}
		r, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("warning: failed to load persisted room %s: %v", id, err)
			continue
		}
		m.rooms[strings.ToLower(id)] = r
		loaded++
	}

	if loaded > 0 {
		log.Printf("loaded %d persisted rooms from storage", loaded)
	}
	return nil
}

// SaveAllSessions saves every in-memory room to persistence, aggregating
// every failure with multierr instead of stopping at the first or only
// counting them.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	var err error
	for _, r := range rooms {
		if saveErr := m.persistence.Save(r); saveErr != nil {
			err = multierr.Append(err, fmt.Errorf("room %s: %w", r.ID, saveErr))
		}
	}
	return err
}
