package anim

import (
	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/vmath"
)

const (
	// ElectronCount is the pool size; fixed at engine construction.
	ElectronCount = 16

	// Speed is centi-pixels per tick before the pacing divisor. The wire
	// rate rises steeply with current; inside the resistor electrons slow
	// down under load.
	wireSpeedBase       = 60
	wireSpeedPerAmp     = 3000
	resistorSpeedBase   = 25
	resistorSpeedPerAmp = 800
	speedDivisor        = 2

	heatRise  = 3
	heatDecay = 2

	phaseStep = 7

	// Wobble amplitude in centi-pixels.
	wireWobbleAmp     = 80
	resistorWobbleAmp = 250

	tailLength = 3

	// Respawn window left of the screen, in pixels.
	respawnBackMin = 1
	respawnBackMax = 20
)

// electron is a pooled particle. Slots are never freed; exiting the right
// edge respawns the same slot off-screen left.
type electron struct {
	x, y  int // fixed-point position
	baseY int // fixed-point baseline row outside the resistor
	phase int // sine phase accumulator, wraps modulo the table size
	heat  int // 0..100
}

type electronPool struct {
	parts []electron
	rng   *vmath.FastRand
}

// newElectronPool allocates the pool once and spreads initial x positions
// evenly across the visible width. No allocation happens after this.
func newElectronPool(count int, rng *vmath.FastRand) *electronPool {
	p := &electronPool{
		parts: make([]electron, count),
		rng:   rng,
	}
	for i := range p.parts {
		e := &p.parts[i]
		e.x = vmath.FromInt(i * Width / count)
		e.baseY = vmath.FromInt(WireY + rng.Between(-1, 1))
		e.phase = rng.Intn(vmath.SinTableSize)
		e.heat = 0
	}
	return p
}

func (p *electronPool) respawn(e *electron) {
	e.x = -vmath.FromInt(p.rng.Between(respawnBackMin, respawnBackMax))
	e.baseY = vmath.FromInt(WireY + p.rng.Between(-1, 1))
	e.phase = p.rng.Intn(vmath.SinTableSize)
	e.heat = 0
}

// advanceAndDraw updates and draws every particle in index order.
func (p *electronPool) advanceAndDraw(current float64, fb *render.Buffer) {
	for i := range p.parts {
		e := &p.parts[i]

		px := vmath.ToInt(e.x)
		inside := px >= ResistorX1 && px <= ResistorX2

		var speed int
		if inside {
			speed = resistorSpeedBase + int(current*resistorSpeedPerAmp)
			e.heat = vmath.Clamp(e.heat+heatRise, 0, 100)
		} else {
			speed = wireSpeedBase + int(current*wireSpeedPerAmp)
			e.heat = vmath.Clamp(e.heat-heatDecay, 0, 100)
		}

		e.x += speed / speedDivisor
		e.phase = (e.phase + phaseStep) % vmath.SinTableSize

		if inside {
			y := vmath.FromInt(resistorCenterY) + vmath.Sin(e.phase)*resistorWobbleAmp/vmath.SinAmplitude
			e.y = vmath.Clamp(y, vmath.FromInt(ResistorY1+1), vmath.FromInt(ResistorY2-1))
		} else {
			e.y = e.baseY + vmath.Sin(e.phase)*wireWobbleAmp/vmath.SinAmplitude
		}

		if e.x > vmath.FromInt(Width+RespawnMargin) {
			p.respawn(e)
		}

		p.draw(e, fb)
	}
}

func (p *electronPool) draw(e *electron, fb *render.Buffer) {
	px := vmath.ToInt(e.x)
	py := vmath.ToInt(e.y)

	fb.SetMax(px, py, trailColor(e.heat))
	fb.SetMax(px, py, coreColor(e.heat))

	// Trailing tail behind the direction of travel.
	tail := render.IdxTrailBase
	if e.heat > 50 {
		tail = render.IdxTrailBase + 1
	}
	for t := 1; t <= tailLength; t++ {
		fb.SetMax(px-t, py, tail)
	}
}

// trailColor maps heat monotonically onto the 5-level blended trail ramp.
func trailColor(heat int) uint8 {
	level := heat * render.TrailLevels / 101
	return render.IdxTrailBase + uint8(level)
}

// coreColor picks the bright core: cool bank up to heat 50, hot bank
// above, each scaled linearly into its 5 levels.
func coreColor(heat int) uint8 {
	if heat <= 50 {
		level := heat * render.CoreLevels / 51
		return render.IdxCoreCoolBase + uint8(level)
	}
	level := (heat - 51) * render.CoreLevels / 50
	if level >= render.CoreLevels {
		level = render.CoreLevels - 1
	}
	return render.IdxCoreHotBase + uint8(level)
}
