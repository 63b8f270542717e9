// Package colorcode maps resistance values to standard 4-band resistor
// color codes using the E24 series.
package colorcode

import (
	"math"

	"github.com/resistorlab/portal/render"
)

// E24Values is one decade of the E24 standard series.
var E24Values = []float64{
	1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
	3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
}

// digitColors is ordered so the index equals the digit value.
var digitColors = [10]string{
	"black", "brown", "red", "orange", "yellow",
	"green", "blue", "violet", "grey", "white",
}

// multiplierColors maps the decade exponent to the third band.
var multiplierColors = map[int]string{
	-2: "silver",
	-1: "gold",
	0:  "black",
	1:  "brown",
	2:  "red",
	3:  "orange",
	4:  "yellow",
	5:  "green",
	6:  "blue",
}

// Tolerances maps fourth-band colors to percent tolerance.
var Tolerances = map[string]float64{
	"brown":  1.0,
	"red":    2.0,
	"gold":   5.0,
	"silver": 10.0,
}

var bandRGB = map[string]render.RGB{
	"black":  {R: 0, G: 0, B: 0},
	"brown":  {R: 139, G: 69, B: 19},
	"red":    {R: 220, G: 20, B: 20},
	"orange": {R: 255, G: 140, B: 0},
	"yellow": {R: 255, G: 220, B: 0},
	"green":  {R: 0, G: 160, B: 0},
	"blue":   {R: 0, G: 80, B: 200},
	"violet": {R: 148, G: 0, B: 211},
	"grey":   {R: 160, G: 160, B: 160},
	"white":  {R: 255, G: 255, B: 255},
	"gold":   {R: 212, G: 175, B: 55},
	"silver": {R: 192, G: 192, B: 192},
}

// SnapE24 returns the smallest E24 standard value >= resistance. Rounding
// is always up so a substituted part is never under-specified.
func SnapE24(resistance float64) float64 {
	if resistance <= 0 {
		return E24Values[0]
	}

	exponent := math.Floor(math.Log10(resistance))
	decade := math.Pow(10, exponent)

	for _, e24 := range E24Values {
		candidate := e24 * decade
		// Epsilon absorbs float imprecision when the input is already an
		// exact E24 value.
		if candidate >= resistance-1e-9 {
			return candidate
		}
	}
	return E24Values[0] * decade * 10
}

// ResistanceToBands converts a positive resistance to
// [digit, digit, multiplier, tolerance]. The tolerance band is always
// gold (5%), matching the station's stocked parts.
func ResistanceToBands(resistance float64) [4]string {
	if resistance <= 0 {
		return [4]string{"black", "black", "black", "gold"}
	}

	exponent := int(math.Floor(math.Log10(resistance))) - 1
	decade := math.Pow(10, float64(exponent))
	mantissa := int(math.Round(resistance / decade))

	if mantissa >= 100 {
		mantissa /= 10
		exponent++
	}

	digit1 := clampDigit(mantissa / 10)
	digit2 := clampDigit(mantissa % 10)

	mult, ok := multiplierColors[exponent]
	if !ok {
		mult = "black"
	}

	return [4]string{digitColors[digit1], digitColors[digit2], mult, "gold"}
}

// BandsToRGB maps band names to display colors; unknown names fall back
// to gray.
func BandsToRGB(bands []string) []render.RGB {
	out := make([]render.RGB, len(bands))
	for i, name := range bands {
		if rgb, ok := bandRGB[name]; ok {
			out[i] = rgb
		} else {
			out[i] = render.RGB{R: 128, G: 128, B: 128}
		}
	}
	return out
}

// KnownBand reports whether name is a valid band color.
func KnownBand(name string) bool {
	_, ok := bandRGB[name]
	return ok
}

func clampDigit(d int) int {
	if d < 0 {
		return 0
	}
	if d > 9 {
		return 9
	}
	return d
}
