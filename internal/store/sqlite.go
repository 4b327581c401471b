package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"path"

	"github.com/zeebo/blake3"

	"remotefs-go/internal/remotefs"
	"remotefs-go/internal/store/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists records as rows in a SQLite database. Each record
// occupies one row keyed by path; saving a path that already exists
// replaces the row. File contents are stored decoded alongside a BLAKE3
// checksum.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite record store at the given
// path and brings its schema up to date. path can be ":memory:" for an
// in-memory store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := OpenConnection(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating record store: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// OpenConnection opens and configures a SQLite connection with the
// PRAGMAs the store relies on. Exported for tools and tests that need a
// properly configured connection.
func OpenConnection(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite ships with foreign keys OFF for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// Save upserts a single record row.
func (s *SQLiteStore) Save(ctx context.Context, rec remotefs.Record) error {
	switch r := rec.(type) {
	case *remotefs.DirectoryRecord:
		return s.upsert(ctx, r.Path, directoryName(r), "directory", "", "", nil, "")
	case *remotefs.FileRecord:
		data, err := r.Bytes()
		if err != nil {
			return err
		}
		sum := blake3.Sum256(data)
		return s.upsert(ctx, r.Path, r.Name, "file", string(r.Format), r.Mimetype, data, hex.EncodeToString(sum[:]))
	default:
		return fmt.Errorf("unknown record type %T", rec)
	}
}

func (s *SQLiteStore) upsert(ctx context.Context, recordPath, name, kind, format, mimetype string, content []byte, checksum string) error {
	if content == nil {
		content = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (path, name, kind, format, mimetype, content, checksum, size, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			format = excluded.format,
			mimetype = excluded.mimetype,
			content = excluded.content,
			checksum = excluded.checksum,
			size = excluded.size,
			saved_at = excluded.saved_at`,
		recordPath, name, kind, format, mimetype, content, checksum, len(content))
	if err != nil {
		return fmt.Errorf("upserting record %q: %w", recordPath, err)
	}
	return nil
}

// StoredRecord is a row from the records table.
type StoredRecord struct {
	Path     string
	Name     string
	Kind     string
	Format   string
	Mimetype string
	Content  []byte
	Checksum string
	Size     int64
}

// Lookup returns the stored row for path, or nil if no row exists.
func (s *SQLiteStore) Lookup(ctx context.Context, recordPath string) (*StoredRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, name, kind, format, mimetype, content, checksum, size
		FROM records WHERE path = ?`, recordPath)

	var rec StoredRecord
	err := row.Scan(&rec.Path, &rec.Name, &rec.Kind, &rec.Format, &rec.Mimetype, &rec.Content, &rec.Checksum, &rec.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up record %q: %w", recordPath, err)
	}
	return &rec, nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// directoryName returns the directory's name, falling back to the last
// path component when the record carries none.
func directoryName(r *remotefs.DirectoryRecord) string {
	if r.Name != "" {
		return r.Name
	}
	return path.Base(r.Path)
}

var _ remotefs.Store = (*SQLiteStore)(nil)
