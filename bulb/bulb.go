// Package bulb maps measured current to LED bulb brightness. The scale
// matches the station's reference load: 3.3 V across 100 Ohm = 0.033 A =
// full brightness.
package bulb

const (
	// FullScaleAmps saturates the brightness output.
	FullScaleAmps = 0.033

	// MaxLevel is the 16-bit DAC ceiling.
	MaxLevel = 65535
)

// Level converts amps to a DAC value in [0, MaxLevel], clamped linearly.
func Level(amps float64) int {
	if amps <= 0 {
		return 0
	}
	t := amps / FullScaleAmps
	if t > 1 {
		t = 1
	}
	return int(t * MaxLevel)
}
