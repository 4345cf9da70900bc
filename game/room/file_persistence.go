package room

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/variantgo/server/game/play"
)

// FilePersistence implements Persistence using file system storage, one
// JSON file per room.
type FilePersistence struct {
	roomsDir string
}

// NewFilePersistence creates a new file-based room persistence layer,
// creating roomsDir if it does not already exist.
func NewFilePersistence(roomsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(roomsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create rooms directory: %w", err)
	}
	return &FilePersistence{roomsDir: roomsDir}, nil
}

// Save persists a room to a JSON file.
func (fp *FilePersistence) Save(r *Room) error {
	if r == nil {
		return fmt.Errorf("room cannot be nil")
	}

	data := PersistedRoomData{
		ID:             r.ID,
		TemplateID:     r.TemplateID,
		Members:        r.Members,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339Nano),
		LastAccessedAt: r.LastAccessedAt.Format(time.RFC3339Nano),
		State:          r.Shared.Freeze(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal room data: %w", err)
	}

	if err := os.WriteFile(fp.filePath(r.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write room file: %w", err)
	}
	return nil
}

// Load retrieves a room from a JSON file.
func (fp *FilePersistence) Load(id string) (*Room, error) {
	filePath := fp.filePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrRoomNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read room file: %w", err)
	}

	var data PersistedRoomData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room data: %w", err)
	}

	stateJSON, err := json.Marshal(data.State)
	if err != nil {
		return nil, fmt.Errorf("failed to re-marshal room state: %w", err)
	}
	var persisted play.PersistedState
	if err := json.Unmarshal(stateJSON, &persisted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room state: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, data.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	lastAccessedAt, err := time.Parse(time.RFC3339Nano, data.LastAccessedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_accessed_at: %w", err)
	}

	return &Room{
		ID:             data.ID,
		TemplateID:     data.TemplateID,
		Shared:         play.Thaw(persisted),
		Members:        data.Members,
		CreatedAt:      createdAt,
		LastAccessedAt: lastAccessedAt,
	}, nil
}

// Delete removes a room file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrRoomNotFound
	}
	if err := os.Remove(fp.filePath(id)); err != nil {
		return fmt.Errorf("failed to remove room file: %w", err)
	}
	return nil
}

// ListAll returns all persisted room IDs.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.roomsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

// Exists checks if a room file exists.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.filePath(id))
	return err == nil
}

func (fp *FilePersistence) filePath(id string) string {
	return filepath.Join(fp.roomsDir, fmt.Sprintf("%s.json", id))
}
