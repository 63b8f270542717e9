package anim

import (
	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/vmath"
)

const (
	// HeatPoolCap bounds the heat particle pool; it never grows.
	HeatPoolCap = 24

	heatLifeMax   = 100
	heatLifeDecay = 4

	// Spawn gating: no particles below this heat intensity (0..100).
	spawnIntensityThreshold = 5

	// Frames between spawns, shrinking as current rises. The floor of one
	// spawn per frame against a 25-frame lifetime outpaces the pool, so a
	// sustained full load fills every slot.
	spawnRateMax    = 30
	spawnRateMin    = 1
	spawnRatePerAmp = 80

	// Spawn stays this many pixels inside the body's horizontal span.
	spawnEdgeMargin = 2

	// Velocity ranges, centi-pixels per tick.
	heatVyMin    = 20
	heatVyMax    = 60
	heatVxJitter = 15
)

// heatParticle occupies a pool slot. life == 0 marks the slot dead and
// its position/velocity undefined until the next spawn.
type heatParticle struct {
	x, y   int // fixed-point
	vx, vy int // fixed-point per tick, constant after spawn
	life   int // 0 dead, else 1..100
}

type heatPool struct {
	parts        [HeatPoolCap]heatParticle
	rng          *vmath.FastRand
	spawnCounter int
}

func newHeatPool(rng *vmath.FastRand) *heatPool {
	return &heatPool{rng: rng}
}

// spawn claims the first dead slot; a full pool drops the request.
func (p *heatPool) spawn() {
	for i := range p.parts {
		hp := &p.parts[i]
		if hp.life != 0 {
			continue
		}
		hp.x = vmath.FromInt(ResistorX1 + spawnEdgeMargin +
			p.rng.Intn(ResistorX2-ResistorX1-2*spawnEdgeMargin+1))
		vy := p.rng.Between(heatVyMin, heatVyMax)
		if p.rng.Intn(2) == 0 {
			hp.y = vmath.FromInt(ResistorY1)
			hp.vy = -vy // off the top edge, rising
		} else {
			hp.y = vmath.FromInt(ResistorY2)
			hp.vy = vy
		}
		hp.vx = p.rng.Between(-heatVxJitter, heatVxJitter)
		hp.life = heatLifeMax
		return
	}
}

// updateAndDraw runs spawn-rate control, advances alive particles, frees
// expired slots, and draws the survivors on the life-keyed ramp.
func (p *heatPool) updateAndDraw(heatIntensity int, current float64, fb *render.Buffer) {
	p.spawnCounter++
	if heatIntensity > spawnIntensityThreshold {
		rate := spawnRateMax - int(current*spawnRatePerAmp)
		if rate < spawnRateMin {
			rate = spawnRateMin
		}
		if p.spawnCounter >= rate {
			p.spawn()
			p.spawnCounter = 0
		}
	}

	for i := range p.parts {
		hp := &p.parts[i]
		if hp.life == 0 {
			continue
		}

		hp.x += hp.vx
		hp.y += hp.vy
		hp.life -= heatLifeDecay
		if hp.life <= 0 {
			hp.life = 0
			continue
		}

		level := (hp.life - 1) * render.HeatLevels / heatLifeMax
		fb.SetMax(vmath.ToInt(hp.x), vmath.ToInt(hp.y), render.IdxHeatBase+uint8(level))
	}
}

// alive reports the number of live slots, for tests and diagnostics.
func (p *heatPool) alive() int {
	n := 0
	for i := range p.parts {
		if p.parts[i].life != 0 {
			n++
		}
	}
	return n
}
