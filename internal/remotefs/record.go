package remotefs

import (
	"encoding/base64"
	"fmt"
)

// Format describes how a FileRecord carries its content.
type Format string

const (
	// FormatText marks content carried as decoded UTF-8 text.
	FormatText Format = "text"
	// FormatBase64 marks content carried as base64-encoded raw bytes, the
	// transport encoding expected at the persistence boundary.
	FormatBase64 Format = "base64"
)

// Generic mimetypes assigned at record creation. The encoding decision is
// made once, from the source content type, and never re-derived.
const (
	MimeTextPlain   = "text/plain"
	MimeOctetStream = "application/octet-stream"
)

// Record is a node in an ingested content tree: either a *FileRecord or a
// *DirectoryRecord. The set of implementations is closed.
type Record interface {
	// RecordPath returns the full slash-delimited path from the ingestion
	// root to this node. It never ends with a separator.
	RecordPath() string

	record()
}

// FileRecord is a leaf carrying content. Format and Content are coupled:
// FormatText means Content is valid UTF-8 text, FormatBase64 means Content
// is the base64 encoding of the raw bytes.
type FileRecord struct {
	Name     string
	Path     string
	Format   Format
	Mimetype string
	Content  string
}

func (f *FileRecord) RecordPath() string { return f.Path }
func (f *FileRecord) record()            {}

// Bytes decodes the record's content back to raw bytes.
func (f *FileRecord) Bytes() ([]byte, error) {
	switch f.Format {
	case FormatText:
		return []byte(f.Content), nil
	case FormatBase64:
		raw, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding content of %q: %v", ErrFormat, f.Path, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: unknown content format %q", ErrFormat, f.Format)
	}
}

// DirectoryRecord is an interior node. Children are ordered and hold only
// strict one-level descendants; no two children share a name.
type DirectoryRecord struct {
	Name     string
	Path     string
	Children []Record
}

func (d *DirectoryRecord) RecordPath() string { return d.Path }
func (d *DirectoryRecord) record()            {}
