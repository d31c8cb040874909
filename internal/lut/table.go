// Package lut holds the precomputed tables the effects index every frame:
// trigonometric samples, distortion offsets and 256-entry palettes.
package lut

import "math"

// Wrap returns i modulo n in [0, n). Negative indices wrap to the end of the
// table instead of following the sign of the dividend.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Table is an immutable 1-D lookup table.
type Table []int

// At returns the entry at i, wrapping out-of-range indices.
func (t Table) At(i int) int {
	return t[Wrap(i, len(t))]
}

// Build fills a table of n entries with f(i).
func Build(n int, f func(i int) int) Table {
	t := make(Table, n)
	for i := range t {
		t[i] = f(i)
	}
	return t
}

// Sine returns n samples of amp·sin(i·step) truncated toward zero.
func Sine(n int, step, amp float64) Table {
	return Build(n, func(i int) int {
		return int(math.Sin(float64(i)*step) * amp)
	})
}

// Cosine returns n samples of amp·cos(i·step) truncated toward zero.
func Cosine(n int, step, amp float64) Table {
	return Build(n, func(i int) int {
		return int(math.Cos(float64(i)*step) * amp)
	})
}

// Grid is an immutable 2-D table stored row-major.
type Grid struct {
	W, H int
	V    []int32
}

// NewGrid allocates a w×h grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, V: make([]int32, w*h)}
}

// At returns the value at (x, y) with both coordinates wrapped.
func (g *Grid) At(x, y int) int32 {
	return g.V[Wrap(y, g.H)*g.W+Wrap(x, g.W)]
}

// Set stores v at (x, y); out-of-range writes are dropped.
func (g *Grid) Set(x, y int, v int32) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.V[y*g.W+x] = v
}
