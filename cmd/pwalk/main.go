// main.go - pwalk command-line entry point
//
// Grounded on opencoff-go-walk/t/main.go's flag wiring idiom
// (github.com/opencoff/pflag: BoolVarP/StringArrayVarP/Usage/Parse/Args),
// generalized from that test driver's single FollowSymlinks/OneFS/Exclude
// set to the full mode/option surface spec.md §5/§6 names.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	flag "github.com/opencoff/pflag"

	"github.com/opencoff/pwalk/config"
	"github.com/opencoff/pwalk/fio"
	"github.com/opencoff/pwalk/plog"
	"github.com/opencoff/pwalk/walk"
)

func main() {
	var (
		mode            string
		workers         int
		targets         []string
		outroot         string
		crossFilesystem bool
		skipNames       []string
		redact          bool
		blockUnit       int64
		prefixRead      int
		crc             bool
		aclExtract      bool
		aclStrip        bool
		tallyStr        []string
		globPattern     string
		newerThan       string
	)

	flag.IntVarP(&workers, "workers", "n", 4, "number of walk workers")
	flag.StringVarP(&mode, "mode", "m", "list", "primary mode: list|xml|cmp|fix|rm|audit")
	flag.StringArrayVarP(&targets, "target", "t", nil, "target root (ModeCompare/ModeTimeFix; repeatable)")
	flag.StringVarP(&outroot, "outdir", "o", ".", "output root directory")
	flag.BoolVarP(&crossFilesystem, "xdev", "x", false, "cross filesystem boundaries while descending")
	flag.StringArrayVarP(&skipNames, "skip", "X", nil, "directory basename to skip (repeatable)")
	flag.BoolVarP(&redact, "redact", "R", false, "emit a redacted (inode-hex) parallel path for every entry")
	flag.Int64VarP(&blockUnit, "block-unit", "b", 512, "allocated-size unit: 512 or 1024")
	flag.IntVarP(&prefixRead, "prefix-read", "p", 0, "read the first N bytes of every regular file")
	flag.BoolVarP(&crc, "crc", "c", false, "compute a CRC-32 checksum of every regular file")
	flag.BoolVarP(&aclExtract, "acls", "a", false, "extract and render ACLs")
	flag.BoolVarP(&aclStrip, "rm-acls", "A", false, "strip ACLs")
	flag.StringArrayVarP(&tallyStr, "tally", "T", nil, "file-size bucket threshold in bytes (repeatable)")
	flag.StringVarP(&globPattern, "glob", "g", "", "select only entries whose basename matches this glob")
	flag.StringVarP(&newerThan, "newer-than", "N", "", "select only entries modified within this duration of now (e.g. 24h)")

	usage := fmt.Sprintf("%s [options] root...", os.Args[0])
	flag.Usage = func() {
		fmt.Printf("pwalk: concurrent directory-tree walker\n%s\n", usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	roots := flag.Args()
	if len(roots) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		os.Exit(1)
	}

	m, err := parseMode(mode)
	if err != nil {
		fatalf("%s", err)
	}

	tally, err := parseTally(tallyStr)
	if err != nil {
		fatalf("%s", err)
	}

	sel, err := buildSelector(globPattern, newerThan)
	if err != nil {
		fatalf("%s", err)
	}

	progname := filepath.Base(os.Args[0])
	now := time.Now()
	outdir, err := makeOutDir(outroot, progname, now)
	if err != nil {
		fatalf("output directory: %s", err)
	}
	if err := downgradeOwnership(outdir); err != nil {
		fatalf("chown output directory: %s", err)
	}

	if err := raiseRlimit(neededFds(workers, len(roots)+len(targets))); err != nil {
		fatalf("%s", err)
	}

	log, err := plog.New(outdir, progname)
	if err != nil {
		fatalf("%s", err)
	}
	defer log.Close()

	cfg := config.New(
		config.WithMode(m),
		config.WithWorkers(workers),
		config.WithRoots(roots, targets),
		config.WithOutDir(outdir, progname),
		config.WithCrossFilesystem(crossFilesystem),
		config.WithSkipNames(skipNames...),
		config.WithRedact(redact),
		config.WithBlockUnit(blockUnit),
		config.WithPrefixRead(prefixRead),
		config.WithTally(tally),
		config.WithCRC(crc),
		config.WithACL(aclExtract, aclStrip),
		config.WithSelector(sel),
	)
	log.IdleThreshold = time.Duration(cfg.IdleTimestampThreshold) * time.Second

	fifoPath := filepath.Join(outdir, progname+".fifo")
	res, err := walk.Walk(cfg, []string{"."}, fifoPath, log)
	if err != nil {
		log.Warn("walk failed: %s", err)
		fmt.Fprintf(os.Stderr, "pwalk: %s\n", err)
		os.Exit(1)
	}

	log.Info("done: %d dirs, %d files, %d warnings, %d stat-errors",
		res.Stats.NDirs, res.Stats.NFiles, res.Stats.Warnings, res.Stats.StatErrors)
	fmt.Printf("dirs=%d files=%d symlinks=%d bytes=%d warnings=%d stat-errors=%d\n",
		res.Stats.NDirs, res.Stats.NFiles, res.Stats.NSymlinks, res.Stats.BytesNominal,
		res.Stats.Warnings, res.Stats.StatErrors)
}

func parseMode(s string) (config.Mode, error) {
	switch s {
	case "list", "ls":
		return config.ModeList, nil
	case "xml":
		return config.ModeXML, nil
	case "cmp", "compare":
		return config.ModeCompare, nil
	case "fix", "timefix":
		return config.ModeTimeFix, nil
	case "rm", "delete":
		return config.ModeDelete, nil
	case "audit":
		return config.ModeAudit, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func parseTally(raw []string) ([]int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tally threshold %q: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// buildSelector composes the caller-supplied glob/time criteria into
// the single config.Selector the core ever sees (SPEC_FULL.md §8 Open
// Question Decision: composition lives entirely in this command, never
// in the walk package).
func buildSelector(glob, newerThan string) (config.Selector, error) {
	var sinceCutoff time.Time
	haveCutoff := false
	if newerThan != "" {
		d, err := time.ParseDuration(newerThan)
		if err != nil {
			return nil, fmt.Errorf("--newer-than %q: %w", newerThan, err)
		}
		sinceCutoff = time.Now().Add(-d)
		haveCutoff = true
	}

	if glob == "" && !haveCutoff {
		return nil, nil
	}

	return func(relpath string, fi *fio.Info) bool {
		if glob != "" {
			ok, err := filepath.Match(glob, fi.Name())
			if err != nil || !ok {
				return false
			}
		}
		if haveCutoff && fi.Mtim.Before(sinceCutoff) {
			return false
		}
		return true
	}, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "pwalk: "+format+"\n", args...)
	os.Exit(1)
}
