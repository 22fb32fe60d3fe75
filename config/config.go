// config.go - single configuration value threaded through every component
//
// Per spec.md §9 Design Notes ("collect all configuration into a single
// configuration value passed by reference into every component"), the
// rest of this repository accepts *Config rather than scattering flags
// across function arguments. Config is built once, at startup, and never
// mutated after the walk begins.
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

package config

import (
	"math"

	"github.com/opencoff/pwalk/fio"
)

// Mode is the active primary mode (spec.md §1, SPEC_FULL.md §5). Modes
// are mutually exclusive.
type Mode int

const (
	ModeList Mode = iota
	ModeXML
	ModeCompare
	ModeTimeFix
	ModeDelete
	ModeAudit
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeXML:
		return "xml"
	case ModeCompare:
		return "cmp"
	case ModeTimeFix:
		return "fix"
	case ModeDelete:
		return "rm"
	case ModeAudit:
		return "audit"
	default:
		return "unknown"
	}
}

// Ext returns the worker output file extension for this mode
// (spec.md §6: "worker-NNN.<ext>, where <ext> is determined by the
// active primary mode").
func (m Mode) Ext() string {
	switch m {
	case ModeList:
		return "ls"
	case ModeXML:
		return "xml"
	case ModeCompare:
		return "cmp"
	case ModeTimeFix:
		return "fix"
	case ModeDelete:
		return "rm"
	case ModeAudit:
		return "audit"
	default:
		return "out"
	}
}

// Selector is the single selection predicate exposed to the core
// (spec.md §9 Open Question, resolved in SPEC_FULL.md §8): the walk
// package only ever sees this func value, never the criteria that
// produced it.
type Selector func(relpath string, fi *fio.Info) bool

// Config is the single value passed by reference into every component.
type Config struct {
	// Mode selects the primary mode.
	Mode Mode

	// Workers is the configured worker count N (spec.md §4.D, §5).
	Workers int

	// SourceRoots / TargetRoots are the 1..M equivalent absolute
	// directory paths per side (spec.md §3's "Root set"). TargetRoots
	// is only used by ModeCompare and ModeTimeFix.
	SourceRoots []string
	TargetRoots []string

	// OutDir is the output directory created at startup
	// (<outroot>/<progname>-YYYY-MM-DD_HH_MM_SS, spec.md §6).
	OutDir string

	// ProgName names the output directory prefix and the primary log
	// file (<progname>.log).
	ProgName string

	// CrossFilesystem allows the walk to descend into directories
	// whose device id differs from their parent's (spec.md §3, §4.C.f).
	CrossFilesystem bool

	// SkipNames is the configured name-based skip list (e.g.
	// ".snapshot") applied to directory basenames (spec.md §4.C.f).
	SkipNames []string

	// Redact turns on the redacted-path secondary output (spec.md
	// §4.C "Redaction").
	Redact bool

	// BlockUnit is the allocated-size unit, 512 or 1024 (spec.md §4.F).
	// Allocated bytes are the nominal size rounded up to a multiple of
	// BlockUnit; the file's st_blocks count is not consulted.
	BlockUnit int64

	// Select is the composed selection predicate (may be nil, meaning
	// "select everything").
	Select Selector

	// PrefixReadBytes, when > 0, enables the small-prefix-read load
	// generator secondary mode (SPEC_FULL.md §6), reading this many
	// bytes of every regular file.
	PrefixReadBytes int

	// TallyThresholds, when non-empty, enables file-size bucket
	// tallying (spec.md §4.F). WithTally appends the overflow sentinel
	// as the last element.
	TallyThresholds []int64

	// CRCEnabled turns on the CRC checksumming secondary mode
	// (SPEC_FULL.md §4.2).
	CRCEnabled bool

	// ACLExtract / ACLStrip turn on the two ACL secondary modes
	// (SPEC_FULL.md §4.1).
	ACLExtract bool
	ACLStrip   bool

	// ProgressInterval is how often the primary log emits a progress
	// line (spec.md §6; recommended 900s).
	ProgressInterval int

	// IdleTimestampThreshold is how long since the last log line before
	// a new line gets an explicit timestamp prefix (spec.md §6: "more
	// than one second").
	IdleTimestampThreshold int
}

// Option mutates a Config; New composes zero or more Options over a
// set of sane defaults, in the style of the teacher's walk.Options /
// cmp.Option functional-options convention.
type Option func(c *Config)

// New builds a Config from defaults plus the given options.
func New(opts ...Option) *Config {
	c := &Config{
		Mode:                    ModeList,
		Workers:                 1,
		BlockUnit:               512,
		ProgressInterval:        900,
		IdleTimestampThreshold:  1,
		ProgName:                "pwalk",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithMode sets the primary mode.
func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithWorkers sets the worker count N.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithRoots sets the source and (optional) target root sets.
func WithRoots(source, target []string) Option {
	return func(c *Config) {
		c.SourceRoots = source
		c.TargetRoots = target
	}
}

// WithOutDir sets the output directory and program name.
func WithOutDir(dir, progname string) Option {
	return func(c *Config) {
		c.OutDir = dir
		c.ProgName = progname
	}
}

// WithCrossFilesystem enables or disables crossing filesystem
// boundaries during the scan.
func WithCrossFilesystem(v bool) Option {
	return func(c *Config) { c.CrossFilesystem = v }
}

// WithSkipNames sets the name-based directory skip list.
func WithSkipNames(names ...string) Option {
	return func(c *Config) { c.SkipNames = names }
}

// WithRedact enables the redacted-path secondary output.
func WithRedact(v bool) Option {
	return func(c *Config) { c.Redact = v }
}

// WithBlockUnit sets the allocated-size unit (512 or 1024).
func WithBlockUnit(unit int64) Option {
	return func(c *Config) { c.BlockUnit = unit }
}

// WithSelector sets the composed selection predicate.
func WithSelector(s Selector) Option {
	return func(c *Config) { c.Select = s }
}

// WithPrefixRead enables the small-prefix-read load generator.
func WithPrefixRead(n int) Option {
	return func(c *Config) { c.PrefixReadBytes = n }
}

// WithTally enables file-size bucket tallying over thresholds; an
// overflow sentinel is appended automatically if the caller's last
// threshold is not already math.MaxInt64.
func WithTally(thresholds []int64) Option {
	return func(c *Config) {
		if n := len(thresholds); n == 0 || thresholds[n-1] != math.MaxInt64 {
			thresholds = append(thresholds, math.MaxInt64)
		}
		c.TallyThresholds = thresholds
	}
}

// WithCRC enables the CRC checksumming secondary mode.
func WithCRC(v bool) Option {
	return func(c *Config) { c.CRCEnabled = v }
}

// WithACL enables ACL extraction and/or stripping.
func WithACL(extract, strip bool) Option {
	return func(c *Config) {
		c.ACLExtract = extract
		c.ACLStrip = strip
	}
}
