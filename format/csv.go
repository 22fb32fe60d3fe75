// csv.go - CSV formatter: one row per emitted entry
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

package format

import (
	"encoding/csv"
	"strconv"

	"github.com/opencoff/pwalk/fio"
)

// CSVFormatter writes one CSV row per entry: path,mode,size,uid,gid,mtime.
type CSVFormatter struct {
	lazyWriter
	w *csv.Writer
}

// NewCSV builds a CSVFormatter writing lazily to
// "<outdir>/worker-<id>.csv".
func NewCSV(outdir string, id int) *CSVFormatter {
	return &CSVFormatter{lazyWriter: lazyWriter{outdir: outdir, id: id, ext: "csv"}}
}

func (f *CSVFormatter) Ext() string { return "csv" }

func (f *CSVFormatter) Emit(relpath string, fi *fio.Info) error {
	if f.w == nil {
		w, err := f.writer()
		if err != nil {
			return err
		}
		f.w = csv.NewWriter(w)
	}

	row := []string{
		relpath,
		fi.Mode().String(),
		strconv.FormatInt(fi.Size(), 10),
		strconv.FormatUint(uint64(fi.Uid), 10),
		strconv.FormatUint(uint64(fi.Gid), 10),
		fi.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if err := f.w.Write(row); err != nil {
		return err
	}
	f.w.Flush()
	return f.w.Error()
}

func (f *CSVFormatter) Close() error {
	if f.w != nil {
		f.w.Flush()
	}
	return f.lazyWriter.Close()
}
