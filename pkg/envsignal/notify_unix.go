//go:build unix

package envsignal

import (
	"os"

	"golang.org/x/sys/unix"
)

// RefreshSignals lists the process signals that force a Refresh.
func RefreshSignals() []os.Signal {
	return []os.Signal{unix.SIGUSR1}
}
