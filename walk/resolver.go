// resolver.go - multi-root resolver (spec.md §4.B)
//
// Grounded on opencoff-go-fio's fio.Stat/fio.Info for metadata and on
// the teacher's general pattern of opening a resource once at startup
// and handing out its fd thereafter (fio.SafeFile does the analogous
// thing for output files). A Root here is the directory-handle
// analogue: opened once, held for the life of the walk, and consulted
// by every worker via *at() syscalls against its fd.
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package walk

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root is one member of a root set (spec.md §3): a canonicalized,
// opened directory plus the inode/device pair used for the
// cross-root equivalence check.
type Root struct {
	Path string   // canonical, symlink-free absolute path
	Orig string   // as supplied by the caller, before canonicalization
	Fd   *os.File // open directory handle, held for the walk's lifetime

	Dev uint64
	Ino uint64
}

// Resolver holds the opened source (and optional target) root sets and
// implements the w mod M relative-root selector (spec.md §3).
type Resolver struct {
	Source []*Root
	Target []*Root
}

// ResolverError reports a fatal setup failure from root resolution
// (spec.md §7 kind 1).
type ResolverError struct {
	Op  string
	Msg string
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("walk: %s: %s", e.Op, e.Msg)
}

// NewResolver canonicalizes and opens every path in source and target,
// then enforces the inode-equivalence and (if both sides present)
// root-distinctness invariants.
func NewResolver(source, target []string) (*Resolver, error) {
	if len(source) == 0 {
		return nil, &ResolverError{"resolve", "at least one source root is required"}
	}

	src, err := openRoots(source)
	if err != nil {
		return nil, err
	}
	var tgt []*Root
	if len(target) > 0 {
		tgt, err = openRoots(target)
		if err != nil {
			return nil, err
		}
	}

	if err := checkEquivalence("source", src); err != nil {
		return nil, err
	}
	if err := checkEquivalence("target", tgt); err != nil {
		return nil, err
	}
	if len(tgt) > 0 && src[0].Ino == tgt[0].Ino && src[0].Dev == tgt[0].Dev {
		return nil, &ResolverError{"resolve", "source and target roots denote the same inode"}
	}

	return &Resolver{Source: src, Target: tgt}, nil
}

func openRoots(paths []string) ([]*Root, error) {
	roots := make([]*Root, 0, len(paths))
	for _, p := range paths {
		real, err := filepath.EvalSymlinks(p)
		if err != nil {
			// Canonicalization failure on the root itself is fatal: the
			// root must exist and be reachable at startup.
			return nil, &ResolverError{"resolve", fmt.Sprintf("%s: %s", p, err)}
		}
		real, err = filepath.Abs(real)
		if err != nil {
			return nil, &ResolverError{"resolve", fmt.Sprintf("%s: %s", p, err)}
		}

		fd, err := os.Open(real)
		if err != nil {
			return nil, &ResolverError{"resolve", fmt.Sprintf("%s: %s", real, err)}
		}
		st, err := fd.Stat()
		if err != nil {
			fd.Close()
			return nil, &ResolverError{"resolve", fmt.Sprintf("%s: %s", real, err)}
		}
		if !st.IsDir() {
			fd.Close()
			return nil, &ResolverError{"resolve", fmt.Sprintf("%s: not a directory", real)}
		}

		dev, ino := statDevIno(st)
		roots = append(roots, &Root{
			Path: real,
			Orig: p,
			Fd:   fd,
			Dev:  dev,
			Ino:  ino,
		})
	}
	return roots, nil
}

// checkEquivalence enforces spec.md §3's "within a side, every root
// must denote the same underlying inode" invariant.
func checkEquivalence(side string, roots []*Root) error {
	if len(roots) <= 1 {
		return nil
	}
	first := roots[0]
	for _, r := range roots[1:] {
		if r.Dev != first.Dev || r.Ino != first.Ino {
			return &ResolverError{"resolve",
				fmt.Sprintf("%s roots are not equivalent: %s and %s denote different inodes", side, first.Orig, r.Orig)}
		}
	}
	return nil
}

// SourceRoot returns the (root-fd, root) pair worker w should use for
// the source side: w mod M (spec.md §3 "Relative-root selector").
func (r *Resolver) SourceRoot(w int) *Root {
	return r.Source[w%len(r.Source)]
}

// TargetRoot returns the analogous pair for the target side, or nil if
// this run has no target roots.
func (r *Resolver) TargetRoot(w int) *Root {
	if len(r.Target) == 0 {
		return nil
	}
	return r.Target[w%len(r.Target)]
}

// Close releases every opened root handle.
func (r *Resolver) Close() {
	for _, root := range r.Source {
		root.Fd.Close()
	}
	for _, root := range r.Target {
		root.Fd.Close()
	}
}
