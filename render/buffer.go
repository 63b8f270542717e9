package render

// Buffer is the indexed-color frame buffer the animation engine composes
// into. All writes are bounds-checked and silently clipped; an off-screen
// coordinate is geometry at the display edge, not an error.
type Buffer struct {
	pix    []uint8
	width  int
	height int
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		pix:    make([]uint8, width*height),
		width:  width,
		height: height,
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a palette index unconditionally.
func (b *Buffer) Set(x, y int, index uint8) {
	if !b.inBounds(x, y) {
		return
	}
	b.pix[y*b.width+x] = index
}

// SetMax composites with the brightness-max rule: the pixel is only
// overwritten if the new index is numerically greater than the current
// one. Palette bands are ordered ascending by brightness, so a hot
// particle is never hidden behind a cooler one sharing the pixel.
func (b *Buffer) SetMax(x, y int, index uint8) {
	if !b.inBounds(x, y) {
		return
	}
	i := y*b.width + x
	if index > b.pix[i] {
		b.pix[i] = index
	}
}

// At returns the index at (x, y), or the background index out of bounds.
func (b *Buffer) At(x, y int) uint8 {
	if !b.inBounds(x, y) {
		return IdxBackground
	}
	return b.pix[y*b.width+x]
}

// Clear resets every pixel to the background index using exponential copy.
func (b *Buffer) Clear() {
	if len(b.pix) == 0 {
		return
	}
	b.pix[0] = IdxBackground
	for filled := 1; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

func (b *Buffer) Fill(index uint8) {
	if len(b.pix) == 0 {
		return
	}
	b.pix[0] = index
	for filled := 1; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// Flush pushes every pixel to the sink and presents once.
func (b *Buffer) Flush(s Sink) {
	i := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			s.Set(x, y, b.pix[i])
			i++
		}
	}
	s.Present()
}
