//go:build darwin

package envsignal

import (
	"errors"
	"os/exec"
	"strings"
)

// osPrefersDark checks AppleInterfaceStyle. The key is absent in light
// mode, which makes defaults exit non-zero.
func osPrefersDark() (prefersDark, ok bool) {
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, true
		}
		return false, false
	}
	return strings.TrimSpace(string(out)) == "Dark", true
}
