// Standalone desktop demo of the Resistor Station matrix. No hardware
// required: a synthetic measurement sweep walks through common E24
// values while the animation runs in an ebiten window, with a low hum
// whose loudness follows the simulated current.
//
// Controls: left/right step the sweep, space toggles idle mode,
// escape or q quits.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/resistorlab/portal/anim"
	"github.com/resistorlab/portal/bulb"
	"github.com/resistorlab/portal/colorcode"
	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/vmath"
)

const (
	pixelScale   = 10
	windowWidth  = anim.Width * pixelScale
	windowHeight = anim.Height*pixelScale + 40

	sweepInterval = 2 * time.Second
	humFrequency  = 110.0
)

// sweep is the demo's synthetic measurement sequence, ohms.
var sweep = []float64{100000, 10000, 4700, 1000, 470, 220, 100, 47, 10}

// imageSink keeps an RGBA copy of the frame for ebiten to draw.
type imageSink struct {
	pix     []byte
	palette render.Palette
}

func newImageSink(palette render.Palette) *imageSink {
	return &imageSink{
		pix:     make([]byte, anim.Width*anim.Height*4),
		palette: palette,
	}
}

func (s *imageSink) Set(x, y int, index uint8) {
	if x < 0 || x >= anim.Width || y < 0 || y >= anim.Height || int(index) >= len(s.palette) {
		return
	}
	rgb := s.palette[index]
	i := (y*anim.Width + x) * 4
	s.pix[i] = rgb.R
	s.pix[i+1] = rgb.G
	s.pix[i+2] = rgb.B
	s.pix[i+3] = 0xff
}

func (s *imageSink) Present() {}

type demo struct {
	engine *anim.Engine
	fb     *render.Buffer
	sink   *imageSink
	matrix *ebiten.Image

	sweepIdx int
	lastStep time.Time
	idle     bool

	hum     *effects.Volume
	audioOK bool
}

func newDemo() *demo {
	palette := render.DefaultPalette()
	sink := newImageSink(palette)

	d := &demo{
		sink:     sink,
		fb:       render.NewBuffer(anim.Width, anim.Height),
		matrix:   ebiten.NewImage(anim.Width, anim.Height),
		engine:   anim.New(sink, vmath.NewFastRand(uint64(time.Now().UnixNano()))),
		lastStep: time.Now(),
	}
	d.applyStep()

	if err := d.initAudio(); err != nil {
		// The demo runs fine silent.
		log.Printf("Audio initialization failed: %v", err)
	}
	return d
}

func (d *demo) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	sine, err := generators.SineTone(sampleRate, humFrequency)
	if err != nil {
		return err
	}
	d.hum = &effects.Volume{Streamer: sine, Base: 2, Volume: -8, Silent: true}
	speaker.Play(d.hum)
	d.audioOK = true
	return nil
}

// updateHum follows the simulated current: louder near full scale,
// silent when idle.
func (d *demo) updateHum() {
	if !d.audioOK {
		return
	}
	t := d.engine.Current() / bulb.FullScaleAmps
	if t > 1 {
		t = 1
	}
	speaker.Lock()
	d.hum.Silent = d.idle || t <= 0
	d.hum.Volume = -8 + 6*t
	speaker.Unlock()
}

func (d *demo) applyStep() {
	r := colorcode.SnapE24(sweep[d.sweepIdx])
	d.engine.SetParams(anim.NominalVoltage, r)
}

func (d *demo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.idle = !d.idle
		if d.idle {
			d.engine.Stop(d.fb)
		} else {
			d.applyStep()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		d.sweepIdx = (d.sweepIdx + 1) % len(sweep)
		d.lastStep = time.Now()
		d.applyStep()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		d.sweepIdx = (d.sweepIdx + len(sweep) - 1) % len(sweep)
		d.lastStep = time.Now()
		d.applyStep()
	}

	now := time.Now()
	if d.idle {
		d.engine.IdleAnimation(d.fb, now)
	} else {
		if now.Sub(d.lastStep) >= sweepInterval {
			d.sweepIdx = (d.sweepIdx + 1) % len(sweep)
			d.lastStep = now
			d.applyStep()
		}
		d.engine.Update(d.fb)
	}

	d.updateHum()
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	d.matrix.WritePixels(d.sink.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(pixelScale, pixelScale)
	screen.DrawImage(d.matrix, op)

	var status string
	if d.idle {
		status = "IDLE (space resumes)"
	} else {
		status = fmt.Sprintf("R=%.1f ohm  I=%.4f A  bulb=%d%%",
			d.engine.Resistance(), d.engine.Current(),
			bulb.Level(d.engine.Current())*100/bulb.MaxLevel)
	}
	ebitenutil.DebugPrintAt(screen, status, 4, anim.Height*pixelScale+8)
}

func (d *demo) Layout(int, int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Resistor Station - Demo")

	if err := ebiten.RunGame(newDemo()); err != nil {
		log.Fatal(err)
	}
}
