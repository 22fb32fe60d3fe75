package audit

import (
	"io/fs"
	"strconv"
	"testing"
	"time"

	"github.com/opencoff/pwalk/fio"
)

func mkFile(mode fs.FileMode, xattr fio.Xattr) *fio.Info {
	fi := &fio.Info{Mod: mode, Xattr: xattr}
	fi.SetPath("f")
	return fi
}

func TestInspectNoXattr(t *testing.T) {
	fi := mkFile(0644, nil)
	r := Inspect("f", fi, time.Now())
	if r.LockStatus != StatusUnlocked {
		t.Fatalf("exp unlocked, saw %c", r.LockStatus)
	}
}

func TestInspectExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	fi := mkFile(0644, fio.Xattr{RetentionXattr: itoa(past)})
	r := Inspect("f", fi, time.Now())
	if r.LockStatus != StatusExpired {
		t.Fatalf("exp expired, saw %c", r.LockStatus)
	}
}

func TestInspectCommitted(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	fi := mkFile(0444, fio.Xattr{RetentionXattr: itoa(future)})
	fi.Mod = 0444
	r := Inspect("f", fi, time.Now())
	if r.LockStatus != StatusCommitted {
		t.Fatalf("exp committed, saw %c", r.LockStatus)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
