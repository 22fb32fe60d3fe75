package walk

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewResolverSingleSourceRoot(t *testing.T) {
	dir := t.TempDir()

	r, err := NewResolver([]string{dir}, nil)
	if err != nil {
		t.Fatalf("NewResolver: %s", err)
	}
	defer r.Close()

	if len(r.Source) != 1 {
		t.Fatalf("exp 1 source root, saw %d", len(r.Source))
	}
	if r.TargetRoot(0) != nil {
		t.Fatalf("exp nil target root when none configured")
	}
}

func TestNewResolverRejectsMissingRoot(t *testing.T) {
	if _, err := NewResolver([]string{filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Fatalf("exp error for a nonexistent root")
	}
}

func TestNewResolverRejectsSourceEqualsTarget(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewResolver([]string{dir}, []string{dir}); err == nil {
		t.Fatalf("exp error when source and target denote the same inode")
	}
}

func TestNewResolverRejectsFileRoot(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewResolver([]string{f}, nil); err == nil {
		t.Fatalf("exp error when root is not a directory")
	}
}

func TestNewResolverRejectsInequivalentSourceRoots(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	r, err := NewResolver([]string{a, b}, nil)
	// checkEquivalence requires every source root to name the same
	// directory, so two distinct dirs must be rejected.
	if err == nil {
		r.Close()
		t.Fatalf("exp equivalence error for two distinct source roots")
	}
}
