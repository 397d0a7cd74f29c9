package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FileSnapshot is a SnapshotStore backed by a single JSON file. Writes go
// through a temp file and an atomic rename, serialized by a mutex, so a
// concurrent load never observes a partial snapshot.
type FileSnapshot struct {
	mu   sync.Mutex
	path string
}

// Ensure FileSnapshot implements SnapshotStore interface.
var _ SnapshotStore = (*FileSnapshot)(nil)

type snapshotEntry struct {
	Language string `json:"language"`
}

// NewFileSnapshot creates a snapshot store at path.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// LoadAll returns the persisted user-to-language mapping. A missing file
// is an empty snapshot, not an error.
func (f *FileSnapshot) LoadAll() (map[int64]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[int64]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", f.path, err)
	}

	var raw map[string]snapshotEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", f.path, err)
	}

	langs := make(map[int64]string, len(raw))
	for key, entry := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in snapshot %s: %w", key, f.path, err)
		}
		langs[id] = entry.Language
	}
	return langs, nil
}

// SaveAll replaces the persisted mapping.
func (f *FileSnapshot) SaveAll(langs map[int64]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw := make(map[string]snapshotEntry, len(langs))
	for id, code := range langs {
		raw[strconv.FormatInt(id, 10)] = snapshotEntry{Language: code}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", f.path, err)
	}
	return nil
}

// Backup copies the current snapshot into dir under a dated name. A
// missing snapshot is not an error.
func (f *FileSnapshot) Backup(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot for backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	target := filepath.Join(dir, fmt.Sprintf("%s_%s.json", base, time.Now().Format("20060102")))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", target, err)
	}
	return nil
}
