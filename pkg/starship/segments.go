package starship

import (
	"path/filepath"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// ANSI 256-colour foregrounds for the two theme families.
const (
	ssColorLight = "\033[38;5;214m" // amber
	ssColorDark  = "\033[38;5;141m" // violet
	ssColorDim   = "\033[2m"
)

// ssEffectiveSegment reads the mirrored document and describes the
// effective theme. Returns nil when the document is missing or carries no
// theme attribute.
func ssEffectiveSegment(reg *theme.Registry, stateDir string) *Segment {
	attrs, err := document.ReadFile(filepath.Join(stateDir, document.FileName))
	if err != nil {
		return nil
	}
	id := attrs[document.AttrEffectiveTheme]
	if id == "" {
		id = attrs[document.AttrTheme]
	}
	if id == "" {
		return nil
	}

	seg := &Segment{Icon: "◐", Text: id, Color: ssColorLight}
	if d, ok := reg.Get(theme.ID(id)); ok && d.Icon != "" {
		seg.Icon = d.Icon
	}
	if reg.IsDarkFamily(theme.ID(id)) {
		seg.Color = ssColorDark
	}
	return seg
}

// ssRequestedSegment names the requested theme when it differs from the
// effective one, which in practice means "auto".
func ssRequestedSegment(reg *theme.Registry, stateDir, key, effective string) *Segment {
	if key == "" {
		key = prefstore.DefaultKey
	}
	requested, err := prefstore.NewFileStore(stateDir).Get(key)
	if err != nil || requested == "" || requested == effective {
		return nil
	}

	seg := &Segment{Icon: "→", Text: requested, Color: ssColorDim}
	if d, ok := reg.Get(theme.ID(requested)); ok && d.Icon != "" {
		seg.Icon = d.Icon
	}
	return seg
}
