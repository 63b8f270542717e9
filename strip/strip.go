// Package strip animates an LED strip as a companion readout to the
// matrix: lit dots chase along the strip at a speed and density that
// both rise with current, shifting from blue toward orange. All state is
// allocated at construction; Update is non-blocking.
package strip

import "github.com/resistorlab/portal/render"

// Sink is the physical strip the animation writes into. Implementations
// own the pixel count they expose and the transport behind Show.
type Sink interface {
	Set(i int, c render.RGB)
	Show()
}

const (
	DefaultPixels = 30

	// MaxAmps bounds SetCurrent input.
	MaxAmps = 0.5

	// Full-scale reference current (3.3 V across 100 Ohm).
	fullScaleAmps = 0.033

	// Chase speed in pixels per update.
	stepPerAmp = 200
	stepMax    = 8

	// Spacing between lit dots: sparse near zero current, dense at full
	// scale.
	spacingMax = 10
	spacingMin = 4
)

var (
	black    = render.RGB{}
	idleBlue = render.RGB{B: 40}
)

// Animation drives the chase. Single-owner, synchronous with the host
// poll loop.
type Animation struct {
	sink  Sink
	num   int
	amps  float64
	phase int
}

func New(sink Sink, numPixels int) *Animation {
	if numPixels <= 0 {
		numPixels = DefaultPixels
	}
	return &Animation{sink: sink, num: numPixels}
}

// SetCurrent stores the target current, clamped to [0, MaxAmps].
func (a *Animation) SetCurrent(amps float64) {
	if amps < 0 {
		amps = 0
	} else if amps > MaxAmps {
		amps = MaxAmps
	}
	a.amps = amps
}

// Update advances the chase one step and pushes the frame.
func (a *Animation) Update() {
	step := int(a.amps * stepPerAmp)
	if step < 1 {
		step = 1
	} else if step > stepMax {
		step = stepMax
	}
	a.phase = (a.phase + step) % a.num

	t := a.amps / fullScaleAmps
	if t > 1 {
		t = 1
	}
	lit := chaseColor(t)
	spacing := spacingMax - int(t*(spacingMax-spacingMin))

	for px := 0; px < a.num; px++ {
		if ((px-a.phase)%spacing+spacing)%spacing == 0 {
			a.sink.Set(px, lit)
		} else {
			a.sink.Set(px, black)
		}
	}
	a.sink.Show()
}

// IdleStep drifts a single dim dot along the strip while no measurement
// is running.
func (a *Animation) IdleStep() {
	a.phase = (a.phase + 1) % a.num
	for px := 0; px < a.num; px++ {
		if px == a.phase {
			a.sink.Set(px, idleBlue)
		} else {
			a.sink.Set(px, black)
		}
	}
	a.sink.Show()
}

// Off blacks the strip, pushes immediately, and resets the phase.
func (a *Animation) Off() {
	for px := 0; px < a.num; px++ {
		a.sink.Set(px, black)
	}
	a.sink.Show()
	a.phase = 0
}

// chaseColor blends blue (t=0) to orange (t=1) with an integer blend, no
// float in the per-pixel path.
func chaseColor(t float64) render.RGB {
	t256 := int(t * 256)
	inv := 256 - t256
	return render.RGB{
		R: uint8(255 * t256 >> 8),
		G: uint8(100 * t256 >> 8),
		B: uint8(255 * inv >> 8),
	}
}
