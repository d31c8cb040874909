package raster

// IndexBuffer is a palette-index grid used by the automaton and particle
// effects. Values are resolved to colours only when a frame is presented.
type IndexBuffer struct {
	Width  int
	Height int
	Idx    []uint8
}

// NewIndexBuffer allocates a zeroed index buffer.
func NewIndexBuffer(w, h int) *IndexBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &IndexBuffer{Width: w, Height: h, Idx: make([]uint8, w*h)}
}

// At returns the index at (x, y), or 0 outside the grid.
func (ib *IndexBuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= ib.Width || y >= ib.Height {
		return 0
	}
	return ib.Idx[y*ib.Width+x]
}

// Set writes an index. Writes outside the grid are dropped.
func (ib *IndexBuffer) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= ib.Width || y >= ib.Height {
		return
	}
	ib.Idx[y*ib.Width+x] = v
}

// Clear zeroes every cell.
func (ib *IndexBuffer) Clear() {
	clear(ib.Idx)
}

// Resolve maps every index through pal into dst. dst must have the same size
// and pal must hold 256 entries.
func (ib *IndexBuffer) Resolve(dst *FrameBuffer, pal []uint32) {
	pal = pal[:256]
	n := min(len(dst.Pix), len(ib.Idx))
	for i := 0; i < n; i++ {
		dst.Pix[i] = pal[ib.Idx[i]]
	}
}
