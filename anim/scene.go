package anim

import (
	"github.com/resistorlab/portal/render"
)

const (
	// Flicker only runs above this heat intensity (0..100); below it the
	// body paints uniformly in the coolest glow color.
	glowThreshold = 5

	// Per-pixel nudge applied by the flicker decision.
	flickerStep = 12
)

// drawScene repaints the static circuit each frame: wires skipping the
// resistor span, the resistor body with its heat glow, leads, and
// polarity markers. Everything here is deterministic in (tick,
// heatIntensity); the shimmer needs no per-pixel state.
func drawScene(fb *render.Buffer, tick uint64, heatIntensity int) {
	// Wire row, skipping the resistor body span.
	for x := 0; x < Width; x++ {
		if x >= ResistorX1 && x <= ResistorX2 {
			continue
		}
		fb.Set(x, WireY, render.IdxWire)
	}

	// Leads on both sides of the body.
	for t := 1; t <= leadLength; t++ {
		fb.Set(ResistorX1-t, WireY, render.IdxLead)
		fb.Set(ResistorX2+t, WireY, render.IdxLead)
	}

	// Body outline and caps.
	for x := ResistorX1; x <= ResistorX2; x++ {
		fb.Set(x, ResistorY1, render.IdxGlowBase)
		fb.Set(x, ResistorY2, render.IdxGlowBase)
	}
	for y := ResistorY1; y <= ResistorY2; y++ {
		fb.Set(ResistorX1, y, render.IdxGlowBase)
		fb.Set(ResistorX2, y, render.IdxGlowBase)
	}

	// Interior with deterministic flicker.
	for y := ResistorY1 + 1; y < ResistorY2; y++ {
		for x := ResistorX1 + 1; x < ResistorX2; x++ {
			fb.Set(x, y, glowColor(tick, x, y, heatIntensity))
		}
	}

	// Polarity markers: plus on the supply side, minus on the return.
	fb.Set(2, 10, render.IdxPolarityPlus)
	fb.Set(2, 11, render.IdxPolarityPlus)
	fb.Set(2, 12, render.IdxPolarityPlus)
	fb.Set(1, 11, render.IdxPolarityPlus)
	fb.Set(3, 11, render.IdxPolarityPlus)

	fb.Set(60, 21, render.IdxPolarityMinus)
	fb.Set(61, 21, render.IdxPolarityMinus)
	fb.Set(62, 21, render.IdxPolarityMinus)
}

// glowColor picks the glow level for one interior pixel. The flicker
// direction comes from a fixed modulo mix of tick and coordinates, so the
// same inputs always produce the same frame.
func glowColor(tick uint64, x, y, heatIntensity int) uint8 {
	if heatIntensity < glowThreshold {
		return render.IdxGlowBase
	}

	h := heatIntensity
	if (tick+uint64(x)*31+uint64(y)*17)%4 < 2 {
		h += flickerStep
	} else {
		h -= flickerStep
	}
	if h < 0 {
		h = 0
	}
	if h > 100 {
		h = 100
	}

	level := h * render.GlowLevels / 101
	return render.IdxGlowBase + uint8(level)
}
