package remotefs_test

import (
	"reflect"
	"testing"

	"remotefs-go/internal/remotefs"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []remotefs.Component
	}{
		{
			name: "single file component",
			path: "foo",
			want: []remotefs.Component{{Name: "foo"}},
		},
		{
			name: "nested file path",
			path: "foo/bar/spam",
			want: []remotefs.Component{
				{Name: "foo", Dir: true},
				{Name: "bar", Dir: true},
				{Name: "spam"},
			},
		},
		{
			name: "trailing separator marks all components as directories",
			path: "foo/bar/",
			want: []remotefs.Component{
				{Name: "foo", Dir: true},
				{Name: "bar", Dir: true},
			},
		},
		{
			name: "doubled separator contributes nothing",
			path: "foo//bar",
			want: []remotefs.Component{
				{Name: "foo", Dir: true},
				{Name: "bar"},
			},
		},
		{
			name: "leading separator contributes nothing",
			path: "/foo",
			want: []remotefs.Component{{Name: "foo"}},
		},
		{
			name: "empty path has no components",
			path: "",
			want: []remotefs.Component{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := remotefs.SplitPath(tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSplitPathDoubledSeparatorEquivalence(t *testing.T) {
	if !reflect.DeepEqual(remotefs.SplitPath("foo//bar"), remotefs.SplitPath("foo/bar")) {
		t.Error("foo//bar and foo/bar should decompose identically")
	}
}

func TestBuildPathTree(t *testing.T) {
	t.Run("mixed files and directories", func(t *testing.T) {
		tree := remotefs.BuildPathTree([]string{"foo/", "foo/bar", "eggs/one/two"})
		want := remotefs.PathTree{
			"foo": remotefs.PathTree{
				"bar": nil,
			},
			"eggs": remotefs.PathTree{
				"one": remotefs.PathTree{
					"two": nil,
				},
			},
		}
		if !reflect.DeepEqual(tree, want) {
			t.Errorf("BuildPathTree = %v, want %v", tree, want)
		}
	})

	t.Run("doubled separators skip empty components", func(t *testing.T) {
		got := remotefs.BuildPathTree([]string{"foo//bar"})
		want := remotefs.BuildPathTree([]string{"foo/bar"})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("trees differ: %v vs %v", got, want)
		}
	})

	t.Run("directory-suffixed path yields no file leaf", func(t *testing.T) {
		tree := remotefs.BuildPathTree([]string{"foo/bar/"})
		foo, ok := tree["foo"]
		if !ok || foo == nil {
			t.Fatalf("foo should be a directory, got %v", tree)
		}
		bar, ok := foo["bar"]
		if !ok || bar == nil {
			t.Fatalf("bar should be a directory, got %v", foo)
		}
		if len(bar) != 0 {
			t.Errorf("bar should be empty, got %v", bar)
		}
	})

	t.Run("directory supersedes earlier file marker", func(t *testing.T) {
		tree := remotefs.BuildPathTree([]string{"a", "a/", "a/b"})
		a := tree["a"]
		if a == nil {
			t.Fatal("a should have become a directory")
		}
		if _, ok := a["b"]; !ok {
			t.Errorf("a should contain b, got %v", a)
		}
	})
}
