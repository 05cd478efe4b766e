package theme

// builtinDescriptors lists the stock themes in cycling order.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{ID: Light, Label: "Light", Icon: "☀️"},
		{ID: Dark, Label: "Dark", Icon: "🌙", DarkFamily: true},
		{ID: Auto, Label: "Auto", Icon: "🔄"},
		{ID: HighContrast, Label: "High Contrast", Icon: "⚫", DarkFamily: true},
	}
}

// Builtin returns the stock registry: light, dark, auto, high-contrast.
func Builtin() *Registry {
	r, err := NewRegistry(builtinDescriptors()...)
	if err != nil {
		// The stock descriptors are static; a failure here is a programming error.
		panic(err)
	}
	return r
}
