package anim

// Matrix geometry. Current flows left to right along the wire row; the
// resistor body straddles the wire in the middle of the panel.
const (
	Width  = 64
	Height = 32

	WireY = 16

	// Resistor body bounds, inclusive.
	ResistorX1 = 24
	ResistorX2 = 40
	ResistorY1 = 12
	ResistorY2 = 20

	resistorCenterY = (ResistorY1 + ResistorY2) / 2

	// Lead wire length on each side of the body.
	leadLength = 3

	// Pixels past the right edge before an electron wraps to respawn.
	RespawnMargin = 4
)
