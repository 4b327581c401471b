package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"remotefs-go/internal/remotefs"
)

// FilesystemStore persists records under a root directory on the local
// filesystem. Record paths map directly to paths below the root; a
// directory record becomes a directory, a file record becomes a file.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a filesystem store rooted at the given path.
// The root directory is created if it does not exist.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating store root: %w", err)
	}
	return &FilesystemStore{root: root}, nil
}

// Save persists a single record. Directory records create the directory
// (existing content is left alone); file records are written atomically
// via a temp file and rename.
func (s *FilesystemStore) Save(ctx context.Context, rec remotefs.Record) error {
	dest, err := s.resolve(rec.RecordPath())
	if err != nil {
		return err
	}

	switch r := rec.(type) {
	case *remotefs.DirectoryRecord:
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
		return nil
	case *remotefs.FileRecord:
		data, err := r.Bytes()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("creating parent directory: %w", err)
		}
		return s.writeFile(dest, bytes.NewReader(data))
	default:
		return fmt.Errorf("unknown record type %T", rec)
	}
}

// resolve maps a record path to an absolute path under the store root,
// rejecting anything that would escape it.
func (s *FilesystemStore) resolve(recordPath string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+recordPath), "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: empty path after normalization: %q", remotefs.ErrPath, recordPath)
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// writeFile writes data from r to destPath using atomic write (temp file + rename).
func (s *FilesystemStore) writeFile(destPath string, r io.Reader) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies the store root exists and is a directory.
func (s *FilesystemStore) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory: %s", s.root)
	}
	return nil
}

var _ remotefs.Store = (*FilesystemStore)(nil)
