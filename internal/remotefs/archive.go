package remotefs

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path"
)

// ExtractZipRecord decodes a base64-encoded archive record and extracts it.
// The record must carry base64 content; a zip fetched through the pipeline
// always does, since archives are never served with a text content type.
func ExtractZipRecord(rec *FileRecord, mountPath string) (*DirectoryRecord, error) {
	if rec.Format != FormatBase64 {
		return nil, fmt.Errorf("%w: archive record must carry base64 content, got %q", ErrFormat, rec.Format)
	}
	raw, err := base64.StdEncoding.DecodeString(rec.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding archive content: %v", ErrFormat, err)
	}
	return ExtractZip(raw, mountPath)
}

// ExtractZip materializes an in-memory zip archive as a directory tree
// rooted at mountPath. Entry names are walked in archive-native order with
// the shared decomposition rule; directories are created once, on first
// sight, and later entries sharing the same prefix descend into the existing
// node. File entries become base64 FileRecords holding the decompressed
// bytes.
func ExtractZip(data []byte, mountPath string) (*DirectoryRecord, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening zip archive: %v", ErrFormat, err)
	}

	root := &DirectoryRecord{Name: path.Base(mountPath), Path: mountPath}
	for _, entry := range zr.File {
		parent := root
		for _, c := range SplitPath(entry.Name) {
			if c.Dir {
				parent = parent.childDirectory(c.Name)
				continue
			}
			content, err := readZipEntry(entry)
			if err != nil {
				return nil, err
			}
			parent.Children = append(parent.Children, &FileRecord{
				Name:     c.Name,
				Path:     joinPath(parent.Path, c.Name),
				Format:   FormatBase64,
				Mimetype: MimeOctetStream,
				Content:  base64.StdEncoding.EncodeToString(content),
			})
		}
	}
	return root, nil
}

// childDirectory returns the directory child with the given name, creating
// and appending a new one when absent. First-seen creation order of children
// is preserved.
func (d *DirectoryRecord) childDirectory(name string) *DirectoryRecord {
	for _, c := range d.Children {
		if dir, ok := c.(*DirectoryRecord); ok && dir.Name == name {
			return dir
		}
	}
	child := &DirectoryRecord{Name: name, Path: joinPath(d.Path, name)}
	d.Children = append(d.Children, child)
	return child
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening archive entry %q: %v", ErrFormat, entry.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading archive entry %q: %v", ErrFormat, entry.Name, err)
	}
	return content, nil
}
