package testutil

import (
	"context"
	"errors"
	"sync"

	"remotefs-go/internal/remotefs"
)

// SavedRecord captures one Save call as the store received it.
type SavedRecord struct {
	Path      string
	Directory bool
	// Children is the child count as submitted. The ingest service submits
	// content-free directory markers, so this should always be zero.
	Children int
	Format   remotefs.Format
	Content  string
}

// RecordingStore records every Save call in order. It can be armed to fail
// on a specific path to exercise mid-traversal failure handling.
type RecordingStore struct {
	mu     sync.Mutex
	saves  []SavedRecord
	failOn string
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{}
}

// FailOn makes Save return an error when asked to persist the given path.
func (s *RecordingStore) FailOn(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = path
}

func (s *RecordingStore) Save(_ context.Context, rec remotefs.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && rec.RecordPath() == s.failOn {
		return errors.New("injected save failure")
	}
	switch r := rec.(type) {
	case *remotefs.DirectoryRecord:
		s.saves = append(s.saves, SavedRecord{
			Path:      r.Path,
			Directory: true,
			Children:  len(r.Children),
		})
	case *remotefs.FileRecord:
		s.saves = append(s.saves, SavedRecord{
			Path:    r.Path,
			Format:  r.Format,
			Content: r.Content,
		})
	}
	return nil
}

// Saves returns a copy of all recorded saves in order.
func (s *RecordingStore) Saves() []SavedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SavedRecord, len(s.saves))
	copy(out, s.saves)
	return out
}

// Paths returns the persisted paths in save order.
func (s *RecordingStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, len(s.saves))
	for i, rec := range s.saves {
		paths[i] = rec.Path
	}
	return paths
}

var _ remotefs.Store = (*RecordingStore)(nil)
