package envsignal

// OSDetector reads the operating system's appearance setting. It is
// unavailable on platforms without a supported query.
type OSDetector struct {
	query func() (prefersDark, ok bool)
}

// NewOSDetector returns the detector for the current platform.
func NewOSDetector() *OSDetector {
	return &OSDetector{query: osPrefersDark}
}

func (*OSDetector) Name() string  { return "os" }
func (*OSDetector) Priority() int { return priorityOS }

func (d *OSDetector) Available() bool {
	return d.query != nil
}

func (d *OSDetector) Detect() (prefersDark, ok bool) {
	if d.query == nil {
		return false, false
	}
	return d.query()
}
