package repo

import (
	"testing"
)

func wantSet(t *testing.T, label string, got map[string]struct{}, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", label, got, want)
		return
	}
	for _, p := range want {
		if _, ok := got[p]; !ok {
			t.Errorf("%s %v is missing %q", label, got, p)
		}
	}
}

func TestEnumerateTreeNested(t *testing.T) {
	f := newFixture(t)
	tree := f.tree(
		fileEntry("README.md", f.blob("readme")),
		dirEntry("src", f.tree(
			fileEntry("main.go", f.blob("package main")),
			dirEntry("util", f.tree(
				fileEntry("util.go", f.blob("package util")),
			)),
		)),
	)
	c := f.commit(tree)
	f.setMain(c)

	files, dirs, err := f.open().EnumerateTree(tree)
	if err != nil {
		t.Fatalf("EnumerateTree: %v", err)
	}

	wantSet(t, "files", files, "README.md", "src/main.go", "src/util/util.go")
	wantSet(t, "dirs", dirs, "src", "src/util")
}

func TestEnumerateTreeEmpty(t *testing.T) {
	f := newFixture(t)
	tree := f.tree()
	c := f.commit(tree)
	f.setMain(c)

	files, dirs, err := f.open().EnumerateTree(tree)
	if err != nil {
		t.Fatalf("EnumerateTree: %v", err)
	}
	wantSet(t, "files", files)
	wantSet(t, "dirs", dirs)
}

func TestEnumerateTreeUnreadableTargetIsFile(t *testing.T) {
	f := newFixture(t)
	// An entry whose target object does not exist: it cannot be decoded
	// as a tree, so it is treated as a file.
	tree := f.tree(fileEntry("orphan.bin", "0123456789abcdef0123456789abcdef01234567"))
	c := f.commit(tree)
	f.setMain(c)

	files, dirs, err := f.open().EnumerateTree(tree)
	if err != nil {
		t.Fatalf("EnumerateTree: %v", err)
	}
	wantSet(t, "files", files, "orphan.bin")
	wantSet(t, "dirs", dirs)
}

func TestEnumerateTreeMissingRootIsError(t *testing.T) {
	f := newFixture(t)
	c := f.commit(f.tree())
	f.setMain(c)

	if _, _, err := f.open().EnumerateTree("0123456789abcdef0123456789abcdef01234567"); err == nil {
		t.Error("EnumerateTree with missing root tree should fail")
	}
}
