package anim

import (
	"github.com/resistorlab/portal/render"
)

const (
	markerSpacing = 8

	// Extra phase steps per tick per amp; faster current advances the
	// markers faster.
	markerSpeedPerAmp = 60
)

// drawFlowMarkers paints dim dots chasing along the wire. Pure function
// of (tick, current); the resistor span and its leads are left alone.
func drawFlowMarkers(fb *render.Buffer, tick uint64, current float64) {
	step := 1 + int(current*markerSpeedPerAmp)
	phase := int(tick) * step % markerSpacing

	for x := 0; x < Width; x++ {
		if x >= ResistorX1-leadLength && x <= ResistorX2+leadLength {
			continue
		}
		if ((x-phase)%markerSpacing+markerSpacing)%markerSpacing == 0 {
			fb.SetMax(x, WireY, render.IdxFlowMarker)
		}
	}
}
