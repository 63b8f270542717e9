// Resistor Station portal: drives the current-flow animation on a 64x32
// indexed-color matrix, simulated in the terminal. Measurement packets
// arrive over USB serial from the Pi (R:<ohms>,<b1>,<b2>,<b3>,<b4>\n);
// without a port the station runs from keyboard-simulated measurements.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.bug.st/serial"

	"github.com/resistorlab/portal/anim"
	"github.com/resistorlab/portal/bulb"
	"github.com/resistorlab/portal/colorcode"
	"github.com/resistorlab/portal/feed"
	"github.com/resistorlab/portal/render"
	"github.com/resistorlab/portal/strip"
	"github.com/resistorlab/portal/vmath"
)

const (
	frameInterval = 33 * time.Millisecond // ~30 FPS host loop

	// Seconds without a valid packet before dropping to idle.
	idleTimeout = 3 * time.Second

	// Matrix placement on the terminal: each pixel is two columns wide so
	// cells come out roughly square.
	matrixOriginX = 2
	matrixOriginY = 1
	pixelCols     = 2
)

// Simulated resistances for keyboard keys 1..9, in ohms.
var simResistances = [9]float64{10, 47, 100, 220, 470, 1000, 4700, 10000, 100000}

// matrixSink renders the indexed frame buffer onto a tcell screen.
type matrixSink struct {
	screen  tcell.Screen
	palette render.Palette
	styles  []tcell.Style
}

func newMatrixSink(screen tcell.Screen, palette render.Palette) *matrixSink {
	s := &matrixSink{screen: screen, palette: palette}
	s.styles = make([]tcell.Style, len(palette))
	for i, rgb := range palette {
		color := tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
		s.styles[i] = tcell.StyleDefault.Background(color)
	}
	return s
}

func (s *matrixSink) Set(x, y int, index uint8) {
	if int(index) >= len(s.styles) {
		return
	}
	sx := matrixOriginX + x*pixelCols
	sy := matrixOriginY + y
	for c := 0; c < pixelCols; c++ {
		s.screen.SetContent(sx+c, sy, ' ', nil, s.styles[index])
	}
}

func (s *matrixSink) Present() {
	s.screen.Show()
}

// stripSink paints the LED strip simulation as a row of cells below the
// status line.
type stripSink struct {
	screen tcell.Screen
}

func (s *stripSink) Set(i int, c render.RGB) {
	style := tcell.StyleDefault.Background(
		tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	sx := matrixOriginX + i*pixelCols
	sy := matrixOriginY + anim.Height + 3
	for col := 0; col < pixelCols; col++ {
		s.screen.SetContent(sx+col, sy, ' ', nil, style)
	}
}

func (s *stripSink) Show() {
	s.screen.Show()
}

// Station is the host: it owns the poll loop, the feed, and the engine.
type Station struct {
	screen tcell.Screen
	sink   *matrixSink
	engine *anim.Engine
	fb     *render.Buffer
	strip  *strip.Animation

	receiver *feed.Receiver
	port     serial.Port
	readBuf  []byte

	buttons *buttons

	lastResistance float64
	lastBands      [4]string
	havePacket     bool

	active bool
}

func NewStation(portName, gpioChip string, seed uint64) (*Station, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	st := &Station{
		screen:   screen,
		receiver: feed.NewReceiver(),
		readBuf:  make([]byte, 64),
	}

	palette := render.DefaultPalette()
	st.sink = newMatrixSink(screen, palette)
	st.engine = anim.New(st.sink, vmath.NewFastRand(seed))
	st.fb = render.NewBuffer(anim.Width, anim.Height)
	st.strip = strip.New(&stripSink{screen: screen}, strip.DefaultPixels)

	if portName != "" {
		port, err := serial.Open(portName, &serial.Mode{BaudRate: 115200})
		if err != nil {
			screen.Fini()
			return nil, fmt.Errorf("open serial %s: %w", portName, err)
		}
		if err := port.SetReadTimeout(time.Millisecond); err != nil {
			port.Close()
			screen.Fini()
			return nil, err
		}
		st.port = port
	}

	if gpioChip != "" {
		b, err := newButtons(gpioChip)
		if err != nil {
			// Buttons are reserved for future mode switching; the station
			// runs without them.
			log.Printf("GPIO buttons unavailable: %v", err)
		} else {
			st.buttons = b
		}
	}

	return st, nil
}

// pollSerial drains available bytes and applies the newest packet.
func (st *Station) pollSerial(now time.Time) {
	if st.port == nil {
		return
	}
	for {
		n, err := st.port.Read(st.readBuf)
		if n > 0 {
			if p, ok := st.receiver.Push(st.readBuf[:n], now); ok {
				st.applyPacket(p)
			}
		}
		if err != nil || n == 0 {
			return
		}
	}
}

func (st *Station) applyPacket(p feed.Packet) {
	r := p.Resistance
	if r < anim.MinResistance {
		r = anim.MinResistance
	}
	st.engine.SetParams(anim.NominalVoltage, r)
	st.lastResistance = r
	st.lastBands = p.Bands
	st.havePacket = true
}

// simulate injects a keyboard measurement as if a packet had arrived.
func (st *Station) simulate(r float64, now time.Time) {
	snapped := colorcode.SnapE24(r)
	bands := colorcode.ResistanceToBands(snapped)
	if p, ok := st.receiver.Push([]byte(feed.Format(feed.Packet{
		Resistance: snapped,
		Bands:      bands,
	})), now); ok {
		st.applyPacket(p)
	}
}

func (st *Station) drawStatus() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	row := matrixOriginY + anim.Height + 1
	var line string
	if st.active && st.havePacket {
		current := st.engine.Current()
		line = fmt.Sprintf("R=%.1f ohm  I=%.4f A  bulb=%3d%%  bands=%s/%s/%s/%s",
			st.lastResistance, current,
			bulb.Level(current)*100/bulb.MaxLevel,
			st.lastBands[0], st.lastBands[1], st.lastBands[2], st.lastBands[3])
	} else {
		line = "IDLE - waiting for measurement (keys 1-9 simulate, 0 clears, q quits)"
	}

	for i, r := range line {
		st.screen.SetContent(matrixOriginX+i, row, r, nil, style)
	}
	// Pad the remainder so shorter lines do not leave stale text.
	for i := len(line); i < 96; i++ {
		st.screen.SetContent(matrixOriginX+i, row, ' ', nil, dim)
	}
}

func (st *Station) handleKey(ev *tcell.EventKey, now time.Time) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r >= '1' && r <= '9':
		st.simulate(simResistances[r-'1'], now)
	case r == '0':
		// Force idle: pretend the feed went silent long ago.
		st.receiver = feed.NewReceiver()
		st.havePacket = false
	}
	return true
}

func (st *Station) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			eventChan <- st.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !st.handleKey(ev, time.Now()) {
					return
				}
			case *tcell.EventResize:
				st.screen.Sync()
			}

		case <-ticker.C:
			now := time.Now()
			st.pollSerial(now)

			last, seen := st.receiver.LastPacket()
			wantActive := seen && now.Sub(last) <= idleTimeout

			if wantActive && !st.active {
				st.active = true
				log.Printf("-> ACTIVE R=%.1f ohm", st.lastResistance)
			} else if !wantActive && st.active {
				st.active = false
				st.engine.Stop(st.fb)
				log.Printf("-> IDLE (no packet for %s)", idleTimeout)
			}

			if st.active {
				st.engine.Update(st.fb)
				st.strip.SetCurrent(st.engine.Current())
				st.strip.Update()
			} else {
				st.engine.IdleAnimation(st.fb, now)
				st.strip.IdleStep()
			}
			st.drawStatus()
		}
	}
}

func (st *Station) cleanup() {
	if st.buttons != nil {
		st.buttons.Close()
	}
	if st.port != nil {
		st.port.Close()
	}
	st.strip.Off()
	st.screen.Fini()
}

// setupLogging keeps log output off the terminal tcell owns: stderr would
// smear over the matrix, so transitions go to the named file or nowhere.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	portName := flag.String("port", "", "serial device for Pi packets, e.g. /dev/ttyACM0 (empty: keyboard simulation)")
	gpioChip := flag.String("gpio", "", "GPIO chip for station buttons, e.g. gpiochip0 (empty: disabled)")
	logPath := flag.String("log", "", "append host logs to this file (empty: discard)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "particle RNG seed")
	flag.Parse()

	logFile, err := setupLogging(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	station, err := NewStation(*portName, *gpioChip, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer station.cleanup()

	station.run()
}
