package vmath

// Fixed-point position math for the matrix animation engine.
// One pixel = Scale units; all per-frame particle arithmetic stays in
// integers so the hot path never touches the FPU.
const (
	Scale = 100 // fixed-point units per pixel (centi-pixels)

	// SinTableSize is one full sine period. Phase accumulators wrap
	// modulo this size via masking, so it must stay a power of two.
	SinTableSize = 256
	sinTableMask = SinTableSize - 1

	// SinAmplitude is the peak value returned by Sin.
	SinAmplitude = 100
)

func FromInt(i int) int { return i * Scale }

// ToInt truncates toward zero, matching the pixel the position occupies.
func ToInt(v int) int {
	if v < 0 {
		return -((-v) / Scale)
	}
	return v / Scale
}

func FromFloat(f float64) int { return int(f * Scale) }

func ToFloat(v int) float64 { return float64(v) / Scale }

// Sin returns sine scaled to [-SinAmplitude, SinAmplitude] for an integer
// phase. Any phase is valid; indexing wraps modulo the table size.
func Sin(phase int) int {
	return sinLUT[phase&sinTableMask]
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
