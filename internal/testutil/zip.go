package testutil

import (
	"archive/zip"
	"bytes"
	"testing"
)

// ZipEntry is one entry for BuildZip. A name with a trailing slash becomes a
// directory entry, matching what zip writers emit for explicit directories.
type ZipEntry struct {
	Name string
	Body []byte
}

// BuildZip assembles an in-memory zip archive with entries in the given
// order. Entry order matters to extraction tests, so no sorting happens.
func BuildZip(t *testing.T, entries []ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("creating zip entry %q: %v", e.Name, err)
		}
		if len(e.Body) > 0 {
			if _, err := w.Write(e.Body); err != nil {
				t.Fatalf("writing zip entry %q: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return buf.Bytes()
}
