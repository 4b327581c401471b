package remotefs

import (
	"fmt"
	"strings"
)

// WrapAncestors synthesizes the missing ancestor directories above rec so
// that a single record can be persisted through a storage API requiring
// top-down directory creation. Each synthesized directory contains exactly
// one child; the deepest one contains rec itself, unchanged. A record whose
// path has no parent components is returned as-is.
func WrapAncestors(rec Record) (Record, error) {
	p := rec.RecordPath()
	if strings.HasSuffix(p, "/") {
		return nil, fmt.Errorf("%w: path %q must not end with a separator", ErrPath, p)
	}
	comps := SplitPath(p)
	if len(comps) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrPath)
	}

	var root, parent *DirectoryRecord
	for _, c := range comps[:len(comps)-1] {
		dir := &DirectoryRecord{Name: c.Name, Path: c.Name}
		if parent == nil {
			root = dir
		} else {
			dir.Path = joinPath(parent.Path, c.Name)
			parent.Children = append(parent.Children, dir)
		}
		parent = dir
	}
	if parent == nil {
		return rec, nil
	}
	parent.Children = append(parent.Children, rec)
	return root, nil
}
