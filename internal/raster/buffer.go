package raster

import "image"

// FrameBuffer holds one rendered frame as packed 0xRRGGBB values, row-major.
// Textures use the same layout so kernels can read and write them alike.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint32 // len = Width*Height
}

// NewFrameBuffer allocates a zeroed (black) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint32, w*h),
	}
}

// Resize reallocates the buffer for a new viewport. Contents are cleared.
func (fb *FrameBuffer) Resize(w, h int) {
	fb.Width = w
	fb.Height = h
	if cap(fb.Pix) >= w*h {
		fb.Pix = fb.Pix[:w*h]
		clear(fb.Pix)
		return
	}
	fb.Pix = make([]uint32, w*h)
}

// In reports whether (x, y) lies inside the buffer.
func (fb *FrameBuffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// At returns the pixel at (x, y), or 0 outside the buffer.
func (fb *FrameBuffer) At(x, y int) uint32 {
	if !fb.In(x, y) {
		return 0
	}
	return fb.Pix[y*fb.Width+x]
}

// Set writes a pixel. Writes outside the buffer are dropped.
func (fb *FrameBuffer) Set(x, y int, c uint32) {
	if !fb.In(x, y) {
		return
	}
	fb.Pix[y*fb.Width+x] = c
}

// Wrapped returns the pixel at (x mod W, y mod H).
func (fb *FrameBuffer) Wrapped(x, y int) uint32 {
	if fb.Width == 0 || fb.Height == 0 {
		return 0
	}
	x %= fb.Width
	if x < 0 {
		x += fb.Width
	}
	y %= fb.Height
	if y < 0 {
		y += fb.Height
	}
	return fb.Pix[y*fb.Width+x]
}

// Clamped returns the pixel nearest to (x, y) inside the buffer.
func (fb *FrameBuffer) Clamped(x, y int) uint32 {
	if fb.Width == 0 || fb.Height == 0 {
		return 0
	}
	x = min(max(x, 0), fb.Width-1)
	y = min(max(y, 0), fb.Height-1)
	return fb.Pix[y*fb.Width+x]
}

// Fill sets every pixel to c.
func (fb *FrameBuffer) Fill(c uint32) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
}

// FillRect fills the rectangle [x0,x1)×[y0,y1), clipped to the buffer.
func (fb *FrameBuffer) FillRect(x0, y0, x1, y1 int, c uint32) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, fb.Width), min(y1, fb.Height)
	for y := y0; y < y1; y++ {
		row := fb.Pix[y*fb.Width : (y+1)*fb.Width]
		for x := x0; x < x1; x++ {
			row[x] = c
		}
	}
}

// Clone returns a deep copy.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	out := &FrameBuffer{Width: fb.Width, Height: fb.Height, Pix: make([]uint32, len(fb.Pix))}
	copy(out.Pix, fb.Pix)
	return out
}

// CopyFrom copies src into fb starting at (dx, dy), clipped to both buffers.
func (fb *FrameBuffer) CopyFrom(src *FrameBuffer, dx, dy int) {
	for sy := 0; sy < src.Height; sy++ {
		y := sy + dy
		if y < 0 || y >= fb.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			x := sx + dx
			if x < 0 || x >= fb.Width {
				continue
			}
			fb.Pix[y*fb.Width+x] = src.Pix[sy*src.Width+sx]
		}
	}
}

// Equal reports whether both buffers have the same size and pixels.
func (fb *FrameBuffer) Equal(o *FrameBuffer) bool {
	if fb.Width != o.Width || fb.Height != o.Height {
		return false
	}
	for i, p := range fb.Pix {
		if o.Pix[i] != p {
			return false
		}
	}
	return true
}

// NRGBA packs the buffer into an opaque NRGBA image for display or encoding.
func (fb *FrameBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyTo(img)
	return img
}

// CopyTo writes the buffer into dst, which must be at least as large.
func (fb *FrameBuffer) CopyTo(dst *image.NRGBA) {
	for y := 0; y < fb.Height; y++ {
		off := y * dst.Stride
		for x := 0; x < fb.Width; x++ {
			c := fb.Pix[y*fb.Width+x]
			i := off + x*4
			dst.Pix[i] = uint8(c >> 16)
			dst.Pix[i+1] = uint8(c >> 8)
			dst.Pix[i+2] = uint8(c)
			dst.Pix[i+3] = 255
		}
	}
}

// FromImage converts any image into a FrameBuffer, dropping alpha.
// Fully transparent pixels become black.
func FromImage(src image.Image) *FrameBuffer {
	b := src.Bounds()
	fb := NewFrameBuffer(b.Dx(), b.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < fb.Height; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < fb.Width; x++ {
				i := off + x*4
				if n.Pix[i+3] == 0 {
					continue
				}
				fb.Pix[y*fb.Width+x] = RGB(n.Pix[i], n.Pix[i+1], n.Pix[i+2])
			}
		}
		return fb
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 {
				continue
			}
			// un-premultiply
			r = r * 0xffff / a
			g = g * 0xffff / a
			bl = bl * 0xffff / a
			fb.Pix[y*fb.Width+x] = RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return fb
}

// RGB packs three channels.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Channels unpacks a packed colour.
func Channels(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
