package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencoff/pwalk/fio"
)

func TestRedactorPathRoot(t *testing.T) {
	root := t.TempDir()
	r := NewRedactor(&Root{Path: root}, fio.NewFioMap())

	if got := r.Path(".", nil); got != "." {
		t.Fatalf("exp \".\", saw %q", got)
	}
	if got := r.Path("", nil); got != "." {
		t.Fatalf("exp \".\" for empty relpath, saw %q", got)
	}
}

func TestRedactorPathResolvesEveryComponent(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "b", "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRedactor(&Root{Path: root}, fio.NewFioMap())

	got := r.Path("a/b/f.txt", nil)
	parts := splitRedacted(got)
	if len(parts) != 3 {
		t.Fatalf("exp 3 redacted components, saw %d (%q)", len(parts), got)
	}
	for _, p := range parts {
		if p == "0" {
			t.Fatalf("unexpected unresolved component in %q", got)
		}
	}
}

func TestRedactorPathMissingComponentWarns(t *testing.T) {
	root := t.TempDir()
	r := NewRedactor(&Root{Path: root}, fio.NewFioMap())

	var warned []string
	got := r.Path("nope/child", func(prefix string) {
		warned = append(warned, prefix)
	})

	parts := splitRedacted(got)
	if len(parts) != 2 || parts[0] != "0" || parts[1] != "0" {
		t.Fatalf("exp both components to redact to \"0\", saw %q", got)
	}
	if len(warned) != 2 {
		t.Fatalf("exp 2 warnings (one per unresolved prefix), saw %v", warned)
	}
}

func TestRedactorPathCachesLookups(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a"), 0755); err != nil {
		t.Fatal(err)
	}

	cache := fio.NewFioMap()
	r := NewRedactor(&Root{Path: root}, cache)

	r.Path("a", nil)
	if _, ok := cache.Load("a"); !ok {
		t.Fatalf("exp \"a\" to be cached after first lookup")
	}

	// remove the directory; a cached second lookup must still succeed
	// since it should never re-stat once cached.
	if err := os.Remove(filepath.Join(root, "a")); err != nil {
		t.Fatal(err)
	}
	got := r.Path("a", func(string) { t.Fatalf("unexpected warning on cached lookup") })
	if got == "0" {
		t.Fatalf("exp cached inode to still resolve, saw %q", got)
	}
}

func splitRedacted(s string) []string {
	var out []string
	cur := ""
	for _, c := range s {
		if c == '/' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(c)
	}
	out = append(out, cur)
	return out
}
