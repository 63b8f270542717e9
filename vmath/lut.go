package vmath

import "math"

// sinLUT holds one sine period scaled to [-SinAmplitude, SinAmplitude].
// Built once at process start; float trig never runs during animation.
var sinLUT [SinTableSize]int

func init() {
	for i := 0; i < SinTableSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / SinTableSize
		sinLUT[i] = int(math.Round(math.Sin(rad) * SinAmplitude))
	}
}
