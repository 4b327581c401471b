package store

import (
	"context"
	"fmt"
	"sync"

	"remotefs-go/internal/remotefs"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It keeps file contents and directory markers in a map keyed by path,
// making it useful for testing. Safe for concurrent use.
type MemoryStore struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

type memoryEntry struct {
	directory bool
	format    remotefs.Format
	mimetype  string
	content   string
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Save stores a single record under its path. Directory records are stored
// as content-free markers; saving a directory over an existing entry
// replaces it.
func (m *MemoryStore) Save(ctx context.Context, rec remotefs.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch r := rec.(type) {
	case *remotefs.DirectoryRecord:
		m.entries[r.Path] = memoryEntry{directory: true}
	case *remotefs.FileRecord:
		m.entries[r.Path] = memoryEntry{
			format:   r.Format,
			mimetype: r.Mimetype,
			content:  r.Content,
		}
	default:
		return fmt.Errorf("unknown record type %T", rec)
	}
	return nil
}

// Get returns the stored record for path, or nil if nothing is stored there.
func (m *MemoryStore) Get(path string) remotefs.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[path]
	if !ok {
		return nil
	}
	if entry.directory {
		return &remotefs.DirectoryRecord{Path: path}
	}
	return &remotefs.FileRecord{
		Path:     path,
		Format:   entry.format,
		Mimetype: entry.mimetype,
		Content:  entry.content,
	}
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ remotefs.Store = (*MemoryStore)(nil)
