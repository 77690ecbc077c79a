package console

const (
	// Default terminal width in characters.
	defaultTermWidth = 80
	// Shortest width payloads are truncated to, even on narrow terminals.
	minPayloadWidth = 16
	// Marker appended to truncated payloads.
	ellipsis = "..."
)
