package anim

import (
	"math"
	"testing"
	"time"

	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/vmath"
)

func newTestEngine(seed uint64) (*Engine, *render.Recorder, *render.Buffer) {
	rec := render.NewRecorder(Width, Height)
	e := New(rec, vmath.NewFastRand(seed))
	return e, rec, render.NewBuffer(Width, Height)
}

func framesEqual(a, b *render.Recorder) bool {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

func TestOhmDerivation(t *testing.T) {
	tests := []struct {
		name       string
		voltage    float64
		resistance float64
		want       float64
	}{
		{"Reference load", 3.3, 100, 0.033},
		{"High resistance", 3.3, 330, 0.01},
		{"Clamped voltage", 100, 330, MaxVoltage / 330},
		{"Floored resistance", 3.3, 0, 3.3 / MinResistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(1)
			e.SetParams(tt.voltage, tt.resistance)
			if got := e.Current(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected current %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHeatIntensityClamped(t *testing.T) {
	e, _, _ := newTestEngine(1)

	e.SetParams(3.3, 0.1) // 33 A, far past the clamp
	if got := e.HeatIntensity(); got != 1 {
		t.Errorf("Expected heat intensity clamped to 1, got %v", got)
	}

	e.SetParams(3.3, 1000)
	want := 3.3 / 1000 * HeatIntensityFactor
	if got := e.HeatIntensity(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected heat intensity %v, got %v", want, got)
	}

	e.SetParams(0, 100)
	if got := e.HeatIntensity(); got != 0 {
		t.Errorf("Expected zero heat intensity at zero volts, got %v", got)
	}
}

func TestSetCurrentDerivesResistance(t *testing.T) {
	e, _, _ := newTestEngine(1)

	e.SetCurrent(0.033)
	if !e.Active() {
		t.Fatal("Expected engine active at 33 mA")
	}
	if got := e.Resistance(); got != 100 {
		t.Errorf("Expected derived resistance exactly 100, got %v", got)
	}
	if got := e.Current(); math.Abs(got-0.033) > 1e-9 {
		t.Errorf("Expected current 0.033, got %v", got)
	}
}

func TestSetCurrentNearZeroDeactivates(t *testing.T) {
	e, _, _ := newTestEngine(1)

	e.SetCurrent(0.033)
	e.SetCurrent(0.000005)

	if e.Active() {
		t.Error("Expected engine inactive below the epsilon")
	}
	if got := e.Resistance(); got != SentinelResistance {
		t.Errorf("Expected sentinel resistance, got %v", got)
	}
	if got := e.Current(); got != 0 {
		t.Errorf("Expected zero current while inactive, got %v", got)
	}
}

func TestSetCurrentClampsToMax(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.SetCurrent(5)
	if got := e.Current(); math.Abs(got-MaxCurrent) > 1e-9 {
		t.Errorf("Expected current clamped to %v, got %v", MaxCurrent, got)
	}
}

func TestUpdateInactiveIsNoOp(t *testing.T) {
	e, rec, fb := newTestEngine(1)

	e.Update(fb)
	if rec.Presents != 0 {
		t.Errorf("Expected no presents while inactive, got %d", rec.Presents)
	}
	if e.Tick() != 0 {
		t.Errorf("Expected tick unchanged, got %d", e.Tick())
	}
}

func TestUpdatePresentsOncePerFrame(t *testing.T) {
	e, rec, fb := newTestEngine(1)
	e.SetParams(3.3, 100)

	for i := 1; i <= 10; i++ {
		e.Update(fb)
		if rec.Presents != i {
			t.Fatalf("Expected %d presents, got %d", i, rec.Presents)
		}
		if e.Tick() != uint64(i) {
			t.Fatalf("Expected tick %d, got %d", i, e.Tick())
		}
	}
}

func TestStopClearsAndDeactivates(t *testing.T) {
	e, rec, fb := newTestEngine(1)
	e.SetParams(3.3, 100)

	for i := 0; i < 30; i++ {
		e.Update(fb)
	}

	before := rec.Presents
	e.Stop(fb)

	if e.Active() {
		t.Error("Expected engine inactive after Stop")
	}
	if rec.Presents != before+1 {
		t.Errorf("Expected Stop to present once, got %d extra", rec.Presents-before)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if rec.At(x, y) != render.IdxBackground {
				t.Fatalf("Expected background at (%d, %d), got %d", x, y, rec.At(x, y))
			}
		}
	}

	// Idempotent: stopping again just presents another blank frame.
	e.Stop(fb)
	if e.Active() {
		t.Error("Expected engine to stay inactive")
	}

	// And Update stays a no-op afterwards.
	presents := rec.Presents
	e.Update(fb)
	if rec.Presents != presents {
		t.Error("Expected Update after Stop to be a no-op")
	}
}

func TestElectronsStayInsideRespawnEnvelope(t *testing.T) {
	e, _, fb := newTestEngine(99)
	e.SetParams(3.3, 10) // 0.33 A, fast electrons

	limit := vmath.FromInt(Width + RespawnMargin)
	for frame := 0; frame < 2000; frame++ {
		e.Update(fb)
		for i := range e.electrons.parts {
			if x := e.electrons.parts[i].x; x > limit {
				t.Fatalf("Frame %d: electron %d at %d past respawn envelope", frame, i, x)
			}
		}
	}
}

func TestElectronsConfinedInsideResistor(t *testing.T) {
	e, _, fb := newTestEngine(7)
	e.SetParams(3.3, 100)

	for frame := 0; frame < 1000; frame++ {
		e.Update(fb)
		for i := range e.electrons.parts {
			el := &e.electrons.parts[i]
			px := vmath.ToInt(el.x)
			if px < ResistorX1 || px > ResistorX2 {
				continue
			}
			py := vmath.ToInt(el.y)
			if py <= ResistorY1 || py >= ResistorY2 {
				t.Fatalf("Frame %d: electron %d at row %d touches the body wall", frame, i, py)
			}
		}
	}
}

func TestElectronHeatBounded(t *testing.T) {
	e, _, fb := newTestEngine(3)
	e.SetParams(3.3, 10)

	for frame := 0; frame < 1500; frame++ {
		e.Update(fb)
		for i := range e.electrons.parts {
			h := e.electrons.parts[i].heat
			if h < 0 || h > 100 {
				t.Fatalf("Frame %d: electron %d heat %d out of range", frame, i, h)
			}
		}
	}
}

func TestHeatPoolEmptyAtLowIntensity(t *testing.T) {
	e, _, fb := newTestEngine(1)
	e.SetParams(3.3, 1e6) // effectively zero heat

	for i := 0; i < 300; i++ {
		e.Update(fb)
	}
	if got := e.HeatAlive(); got != 0 {
		t.Errorf("Expected no heat particles at negligible current, got %d", got)
	}
}

func TestHeatPoolSaturatesAtFullLoad(t *testing.T) {
	e, _, fb := newTestEngine(5)
	e.SetParams(3.3, 0.1) // saturates intensity and spawn rate

	maxAlive := 0
	for i := 0; i < 600; i++ {
		e.Update(fb)
		n := e.HeatAlive()
		if n > HeatPoolCap {
			t.Fatalf("Frame %d: %d heat particles exceeds pool cap", i, n)
		}
		if n > maxAlive {
			maxAlive = n
		}
	}
	// Sustained full load must eventually occupy every slot, never more.
	if maxAlive != HeatPoolCap {
		t.Errorf("Expected pool to saturate at %d slots, peaked at %d",
			HeatPoolCap, maxAlive)
	}
}

func TestIdleMarkerSkipsResistorSpan(t *testing.T) {
	e, _, fb := newTestEngine(1)

	now := time.Unix(1000, 0)
	for i := 0; i < 3*Width; i++ {
		now = now.Add(idleStepInterval)
		e.IdleAnimation(fb, now)
		x := e.IdleX()
		if x >= ResistorX1 && x <= ResistorX2 {
			t.Fatalf("Step %d: idle marker inside the resistor at x=%d", i, x)
		}
		if x < 0 || x >= Width {
			t.Fatalf("Step %d: idle marker off screen at x=%d", i, x)
		}
	}
}

func TestIdleMarkerWraps(t *testing.T) {
	e, _, fb := newTestEngine(1)

	now := time.Unix(1000, 0)
	seenZero := false
	for i := 0; i < 2*Width; i++ {
		now = now.Add(idleStepInterval)
		e.IdleAnimation(fb, now)
		if e.IdleX() == 0 {
			seenZero = true
		}
	}
	if !seenZero {
		t.Error("Expected idle marker to wrap back to column 0")
	}
}

func TestIdleAnimationThrottles(t *testing.T) {
	e, rec, fb := newTestEngine(1)

	now := time.Unix(1000, 0)
	e.IdleAnimation(fb, now)
	if rec.Presents != 1 {
		t.Fatalf("Expected first invocation to present, got %d", rec.Presents)
	}
	x := e.IdleX()

	// Same instant and anything under the step interval are swallowed.
	e.IdleAnimation(fb, now)
	e.IdleAnimation(fb, now.Add(idleStepInterval/2))
	if rec.Presents != 1 {
		t.Errorf("Expected throttled invocations not to present, got %d", rec.Presents)
	}
	if e.IdleX() != x {
		t.Error("Expected throttled invocation not to move the marker")
	}

	e.IdleAnimation(fb, now.Add(idleStepInterval))
	if rec.Presents != 2 {
		t.Errorf("Expected present after full interval, got %d", rec.Presents)
	}
	if e.IdleX() == x {
		t.Error("Expected marker to advance after full interval")
	}
}

func TestIdleMarkerVisibleOnWire(t *testing.T) {
	e, rec, fb := newTestEngine(1)

	now := time.Unix(1000, 0)
	e.IdleAnimation(fb, now.Add(idleStepInterval))
	if got := rec.At(e.IdleX(), WireY); got != render.IdxIdleMarker {
		t.Errorf("Expected idle marker at (%d, %d), got index %d", e.IdleX(), WireY, got)
	}
}

// Frames must be a pure function of (seed, parameters, tick): two engines
// driven identically produce byte-identical output.
func TestFrameDeterminism(t *testing.T) {
	e1, rec1, fb1 := newTestEngine(12345)
	e2, rec2, fb2 := newTestEngine(12345)

	e1.SetParams(3.3, 47)
	e2.SetParams(3.3, 47)

	for frame := 0; frame < 120; frame++ {
		e1.Update(fb1)
		e2.Update(fb2)
		if !framesEqual(rec1, rec2) {
			t.Fatalf("Frame %d diverged between identical engines", frame)
		}
	}
}

func TestNewAllocatesSentinelResistance(t *testing.T) {
	e, _, _ := newTestEngine(1)
	if e.Resistance() != SentinelResistance {
		t.Errorf("Expected sentinel resistance at construction, got %v", e.Resistance())
	}
	if e.Active() {
		t.Error("Expected new engine inactive")
	}
}
