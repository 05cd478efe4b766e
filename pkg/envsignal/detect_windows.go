//go:build windows

package envsignal

import (
	"golang.org/x/sys/windows/registry"
)

const personalizeKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// osPrefersDark reads AppsUseLightTheme. Older Windows releases have
// neither the key nor the value.
func osPrefersDark() (prefersDark, ok bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false, false
	}
	defer k.Close()

	useLight, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return false, false
	}
	return useLight == 0, true
}
