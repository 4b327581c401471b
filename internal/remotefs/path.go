package remotefs

import "strings"

// Component is one element of a decomposed slash-delimited path.
type Component struct {
	Name string
	// Dir is true for directory components. In a path without a trailing
	// separator only the final component is a file; a trailing separator
	// marks every component as a directory.
	Dir bool
}

// SplitPath applies the shared decomposition rule: split on the separator,
// tag components as directory or file, and skip empty components produced by
// doubled separators. "foo//bar" therefore yields the same components as
// "foo/bar", and "foo/bar/" yields two directory components with no file leaf.
func SplitPath(p string) []Component {
	dirOnly := strings.HasSuffix(p, "/")
	if dirOnly {
		p = strings.TrimSuffix(p, "/")
	}
	parts := strings.Split(p, "/")
	comps := make([]Component, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		comps = append(comps, Component{Name: part, Dir: dirOnly || i < len(parts)-1})
	}
	return comps
}

// PathTree is the structural model of a set of paths: each key is a path
// component, mapping to a nested PathTree for directories or nil for files.
type PathTree map[string]PathTree

// BuildPathTree folds a flat list of slash-delimited paths into a PathTree
// using the decomposition rule. A directory component supersedes an earlier
// file marker of the same name; a file component never overwrites an
// existing directory.
func BuildPathTree(paths []string) PathTree {
	tree := PathTree{}
	for _, p := range paths {
		parent := tree
		for _, c := range SplitPath(p) {
			if !c.Dir {
				if _, ok := parent[c.Name]; !ok {
					parent[c.Name] = nil
				}
				continue
			}
			child := parent[c.Name]
			if child == nil {
				child = PathTree{}
				parent[c.Name] = child
			}
			parent = child
		}
	}
	return tree
}

// joinPath appends a child component to a parent path.
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
