package remotefs_test

import (
	"errors"
	"testing"

	"remotefs-go/internal/remotefs"
)

func TestWrapAncestors(t *testing.T) {
	t.Run("path without separator is returned unchanged", func(t *testing.T) {
		rec := &remotefs.FileRecord{
			Name:     "foo",
			Path:     "foo",
			Format:   remotefs.FormatText,
			Mimetype: remotefs.MimeTextPlain,
			Content:  "hello",
		}
		got, err := remotefs.WrapAncestors(rec)
		if err != nil {
			t.Fatalf("WrapAncestors() error = %v", err)
		}
		if got != remotefs.Record(rec) {
			t.Errorf("expected the record itself, got %#v", got)
		}
	})

	t.Run("nested path yields a chain rooted at the first component", func(t *testing.T) {
		rec := &remotefs.FileRecord{
			Name:     "c",
			Path:     "a/b/c",
			Format:   remotefs.FormatText,
			Mimetype: remotefs.MimeTextPlain,
			Content:  "hello",
		}
		got, err := remotefs.WrapAncestors(rec)
		if err != nil {
			t.Fatalf("WrapAncestors() error = %v", err)
		}

		root, ok := got.(*remotefs.DirectoryRecord)
		if !ok {
			t.Fatalf("root should be a directory, got %T", got)
		}
		if root.Name != "a" || root.Path != "a" {
			t.Errorf("root = %s (%s), want a (a)", root.Name, root.Path)
		}
		if len(root.Children) != 1 {
			t.Fatalf("root should have exactly one child, got %d", len(root.Children))
		}

		mid, ok := root.Children[0].(*remotefs.DirectoryRecord)
		if !ok {
			t.Fatalf("middle node should be a directory, got %T", root.Children[0])
		}
		if mid.Name != "b" || mid.Path != "a/b" {
			t.Errorf("mid = %s (%s), want b (a/b)", mid.Name, mid.Path)
		}
		if len(mid.Children) != 1 {
			t.Fatalf("mid should have exactly one child, got %d", len(mid.Children))
		}

		if mid.Children[0] != remotefs.Record(rec) {
			t.Errorf("terminal child should be the input record, got %#v", mid.Children[0])
		}
	})

	t.Run("directory record wraps the same way", func(t *testing.T) {
		dir := &remotefs.DirectoryRecord{Name: "data", Path: "work/data"}
		got, err := remotefs.WrapAncestors(dir)
		if err != nil {
			t.Fatalf("WrapAncestors() error = %v", err)
		}
		root, ok := got.(*remotefs.DirectoryRecord)
		if !ok || root.Path != "work" {
			t.Fatalf("root = %#v, want directory at work", got)
		}
		if len(root.Children) != 1 || root.Children[0] != remotefs.Record(dir) {
			t.Errorf("root should contain the input directory")
		}
	})

	t.Run("trailing separator is rejected", func(t *testing.T) {
		rec := &remotefs.DirectoryRecord{Name: "bar", Path: "foo/bar/"}
		_, err := remotefs.WrapAncestors(rec)
		if !errors.Is(err, remotefs.ErrPath) {
			t.Errorf("error = %v, want ErrPath", err)
		}
	})
}
