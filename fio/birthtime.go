// birthtime.go - best-effort file creation-time repair
//
// spec.md §9 Open Question: "the source's 'fix times' policy for
// birthtimes on filesystems without native birthtime setters is
// best-effort and platform-conditional; this belongs to the
// formatter/external-collaborator layer, not the core." SetBirthtime
// either applies the platform's approximation (Darwin only) or returns
// ErrBirthtimeUnsupported, a sentinel a caller can test for. Nothing in
// this module calls it: ModeTimeFix repairs only atime and mtime.
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

package fio

import "errors"

// ErrBirthtimeUnsupported is returned by SetBirthtime when the
// underlying platform/filesystem exposes no API to set a file's
// creation time.
var ErrBirthtimeUnsupported = errors.New("fio: birthtime repair not supported on this platform")
