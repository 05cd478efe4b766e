//go:build !darwin && !windows

package envsignal

// Linux desktops expose the preference through GTK_THEME or the portal,
// not a stable file, so there is no OS query here.
var osPrefersDark func() (prefersDark, ok bool)
