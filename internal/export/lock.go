package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockPollInterval is how often AcquireLock retries a held lock.
const lockPollInterval = 200 * time.Millisecond

// LockPath is the lock file guarding exports into dir.
func LockPath(dir string) string {
	return filepath.Clean(dir) + ".lock"
}

// AcquireLock takes the export lock for dir, retrying until timeout. The
// returned func releases it.
func AcquireLock(dir string, timeout time.Duration) (func(), error) {
	lockPath := LockPath(dir)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return func() {}, fmt.Errorf("cannot create lock dir: %w", err)
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire export lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another export into %s is in progress (lock: %s)", dir, lockPath)
		}
		time.Sleep(lockPollInterval)
	}
}
