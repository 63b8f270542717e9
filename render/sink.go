package render

// Sink is the display capability the engine draws through: an
// indexed-color pixel surface with an explicit present. Implemented by
// the tcell simulator, the ebiten demo window, and test recorders.
type Sink interface {
	// Set writes one palette index. Implementations must tolerate
	// out-of-bounds coordinates.
	Set(x, y int, index uint8)

	// Present pushes the composed frame to the physical surface.
	Present()
}

// NullSink discards all output. Used when benchmarking the engine and as
// the default sink before a display is attached.
type NullSink struct{}

func (NullSink) Set(int, int, uint8) {}
func (NullSink) Present()            {}

// Recorder is a test sink that keeps the last presented frame and counts
// presents.
type Recorder struct {
	width, height int
	pix           []uint8
	Presents      int
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

func (r *Recorder) Set(x, y int, index uint8) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.pix[y*r.width+x] = index
}

func (r *Recorder) Present() { r.Presents++ }

func (r *Recorder) At(x, y int) uint8 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return IdxBackground
	}
	return r.pix[y*r.width+x]
}
