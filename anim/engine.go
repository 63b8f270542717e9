package anim

import (
	"math"
	"time"

	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/vmath"
)

// Electrical limits. Inputs are clamped, never rejected; the resistance
// floor makes the Ohm's-law division structurally safe.
const (
	NominalVoltage = 3.3
	MaxVoltage     = 24.0
	MinResistance  = 0.1
	MaxCurrent     = 0.5

	// Currents below this are treated as "nothing connected".
	currentEpsilon = 1e-4

	// Resistance pinned when SetCurrent sees a near-zero reading, large
	// enough that the derived current is indistinguishable from zero.
	SentinelResistance = 1e9

	// HeatIntensityFactor converts current to heat intensity before the
	// [0,1] clamp.
	HeatIntensityFactor = 0.35
)

const idleStepInterval = 80 * time.Millisecond

// Engine owns all animation state: the particle pools, the electrical
// parameters, and the Active/Stopped machine. It is single-threaded by
// contract; every method runs to completion in bounded time and nothing
// allocates after New.
type Engine struct {
	sink render.Sink
	rng  *vmath.FastRand

	electrons *electronPool
	heat      *heatPool

	voltage    float64
	resistance float64
	active     bool
	tick       uint64

	// Idle sub-mode runs on the wall clock, not the frame tick.
	idleX    int
	idleLast time.Time
}

// New constructs the engine and performs all allocation up front. The
// random source is injectable so tests can fix respawn placement.
func New(sink render.Sink, rng *vmath.FastRand) *Engine {
	return &Engine{
		sink:       sink,
		rng:        rng,
		electrons:  newElectronPool(ElectronCount, rng),
		heat:       newHeatPool(rng),
		resistance: SentinelResistance,
	}
}

// SetParams ingests a measurement. Voltage clamps to [0, MaxVoltage],
// resistance to [MinResistance, inf). The engine keeps no history; last
// write wins.
func (e *Engine) SetParams(voltage, resistance float64) {
	e.voltage = vmath.ClampFloat(voltage, 0, MaxVoltage)
	if resistance < MinResistance {
		resistance = MinResistance
	}
	e.resistance = resistance
	e.active = e.voltage > 0
}

// SetCurrent is the compatibility path for hosts that report amps
// directly. A reading below epsilon deactivates and pins the resistance
// to the sentinel; otherwise resistance is derived at the nominal supply
// voltage.
func (e *Engine) SetCurrent(amps float64) {
	amps = vmath.ClampFloat(amps, 0, MaxCurrent)
	if amps < currentEpsilon {
		e.voltage = NominalVoltage
		e.resistance = SentinelResistance
		e.active = false
		return
	}
	e.voltage = NominalVoltage
	// Round to a micro-ohm so reference readings come out exact
	// (3.3/0.033 in floats is a hair under 100).
	e.resistance = math.Round(NominalVoltage/amps*1e6) / 1e6
	e.active = true
}

// Current returns the derived current, zero when stopped.
func (e *Engine) Current() float64 {
	if !e.active {
		return 0
	}
	return e.voltage / e.resistance
}

// HeatIntensity returns the normalized heat scalar in [0, 1].
func (e *Engine) HeatIntensity() float64 {
	return vmath.ClampFloat(e.Current()*HeatIntensityFactor, 0, 1)
}

func (e *Engine) Active() bool        { return e.active }
func (e *Engine) Voltage() float64    { return e.voltage }
func (e *Engine) Resistance() float64 { return e.resistance }
func (e *Engine) Tick() uint64        { return e.tick }

// Update advances one frame: clear, scene, electrons, heat particles,
// flow markers, present. No-op while inactive. O(particle count), zero
// allocation.
func (e *Engine) Update(fb *render.Buffer) {
	if !e.active {
		return
	}

	current := e.voltage / e.resistance
	heatIntensity := int(e.HeatIntensity() * 100)
	e.tick++

	fb.Clear()
	drawScene(fb, e.tick, heatIntensity)
	e.electrons.advanceAndDraw(current, fb)
	e.heat.updateAndDraw(heatIntensity, current, fb)
	drawFlowMarkers(fb, e.tick, current)
	fb.Flush(e.sink)
}

// IdleAnimation walks a single dim marker along the wire while no live
// measurement is running. It self-throttles on the supplied wall clock
// and jumps over the resistor span instead of entering it. Callers invoke
// it once per host loop iteration; frames are only presented when the
// marker actually steps.
func (e *Engine) IdleAnimation(fb *render.Buffer, now time.Time) {
	if now.Sub(e.idleLast) < idleStepInterval {
		return
	}
	e.idleLast = now

	e.idleX++
	if e.idleX >= ResistorX1 && e.idleX <= ResistorX2 {
		e.idleX = ResistorX2 + 1
	}
	if e.idleX >= Width {
		e.idleX = 0
	}

	fb.Clear()
	drawScene(fb, 0, 0)
	fb.SetMax(e.idleX, WireY, render.IdxIdleMarker)
	fb.Flush(e.sink)
}

// IdleX reports the idle marker position, for tests.
func (e *Engine) IdleX() int { return e.idleX }

// Stop clears the display to background, presents, and deactivates.
// Idempotent.
func (e *Engine) Stop(fb *render.Buffer) {
	fb.Clear()
	fb.Flush(e.sink)
	e.active = false
}

// HeatAlive reports the number of live heat particles, for tests.
func (e *Engine) HeatAlive() int { return e.heat.alive() }
