package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Palette band layout. The engine depends only on the ordering inside
// each band (ascending = brighter/hotter) and on the global ordering that
// makes brightness-max compositing meaningful: scene colors sit below the
// particle ramps, particle cores on top. Index 0 is always background.
const (
	IdxBackground    uint8 = 0
	IdxWire          uint8 = 1
	IdxLead          uint8 = 2
	IdxPolarityMinus uint8 = 3
	IdxPolarityPlus  uint8 = 4
	IdxIdleMarker    uint8 = 5
	IdxFlowMarker    uint8 = 6

	// Resistor body glow, coolest to hottest.
	IdxGlowBase uint8 = 7
	GlowLevels        = 6

	// Blended electron trail colors, cool to hot.
	IdxTrailBase uint8 = 13
	TrailLevels        = 5

	// Heat particle brightness, dim (dying) to bright (fresh).
	IdxHeatBase uint8 = 18
	HeatLevels        = 5

	// Electron core banks: cool for heat <= 50, hot above.
	IdxCoreCoolBase uint8 = 23
	IdxCoreHotBase  uint8 = 28
	CoreLevels            = 5

	PaletteSize = 33
)

// RGB is a concrete display color. The engine itself never reads these;
// only sinks resolve indices to RGB.
type RGB struct {
	R, G, B uint8
}

// Palette maps indices to display colors, PaletteSize entries.
type Palette []RGB

// ramp interpolates n colors from a to b in Lab space, which keeps the
// perceived brightness increase even across hue changes.
func ramp(a, b colorful.Color, n int) []RGB {
	out := make([]RGB, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
		out[i] = RGB{R: r, G: g, B: bl}
	}
	return out
}

// DefaultPalette builds the station's standard color table: electrons run
// blue (cool) to orange (full-scale current), the resistor body glows from
// deep red toward yellow-white, heat particles fade orange to ember.
func DefaultPalette() Palette {
	p := make(Palette, PaletteSize)

	p[IdxBackground] = RGB{0, 0, 0}
	p[IdxIdleMarker] = RGB{60, 60, 60}
	p[IdxFlowMarker] = RGB{0, 70, 35}
	p[IdxWire] = RGB{0, 130, 0}
	p[IdxLead] = RGB{150, 150, 150}
	p[IdxPolarityPlus] = RGB{255, 255, 255}
	p[IdxPolarityMinus] = RGB{180, 180, 180}

	glow := ramp(
		colorful.Color{R: 0.22, G: 0.04, B: 0.0},
		colorful.Color{R: 1.0, G: 0.85, B: 0.35},
		GlowLevels,
	)
	copy(p[IdxGlowBase:], glow)

	trail := ramp(
		colorful.Color{R: 0.0, G: 0.12, B: 0.45},
		colorful.Color{R: 0.75, G: 0.3, B: 0.0},
		TrailLevels,
	)
	copy(p[IdxTrailBase:], trail)

	heat := ramp(
		colorful.Color{R: 0.3, G: 0.06, B: 0.0},
		colorful.Color{R: 1.0, G: 0.55, B: 0.1},
		HeatLevels,
	)
	copy(p[IdxHeatBase:], heat)

	coreCool := ramp(
		colorful.Color{R: 0.1, G: 0.4, B: 1.0},
		colorful.Color{R: 0.5, G: 0.9, B: 1.0},
		CoreLevels,
	)
	copy(p[IdxCoreCoolBase:], coreCool)

	coreHot := ramp(
		colorful.Color{R: 1.0, G: 0.55, B: 0.1},
		colorful.Color{R: 1.0, G: 0.95, B: 0.7},
		CoreLevels,
	)
	copy(p[IdxCoreHotBase:], coreHot)

	return p
}
