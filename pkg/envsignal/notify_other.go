//go:build !unix

package envsignal

import "os"

// RefreshSignals lists the process signals that force a Refresh.
func RefreshSignals() []os.Signal {
	return nil
}
