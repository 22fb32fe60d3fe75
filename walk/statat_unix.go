//go:build unix

package walk

import (
	"io/fs"
	"syscall"
)

func statDevIno(st fs.FileInfo) (dev, ino uint64) {
	sy := st.Sys().(*syscall.Stat_t)
	return uint64(sy.Dev), sy.Ino
}
