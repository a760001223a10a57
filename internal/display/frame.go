// Package display provides the LED matrix frame buffer, proportional
// bitmap fonts, and the MAX7219 driver with hardware abstraction.
package display

// Physical geometry: eight 8x8 MAX7219 modules arranged 4x2.
const (
	Width      = 32
	Height     = 16
	NumModules = 8
)

// Frame is a 32x16 monochrome pixel buffer.
type Frame struct {
	pixels [Height][Width]bool
}

// Set turns on the pixel at (x, y). Out-of-bounds coordinates are ignored,
// which is what makes clipping at the display edge free for callers.
func (f *Frame) Set(x, y int) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	f.pixels[y][x] = true
}

// Pixel reports whether the pixel at (x, y) is on.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pixels[y][x]
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	*f = Frame{}
}

// Rows returns the buffer as one bitmask per row, bit 0 = leftmost column.
// Used by the web mirror view.
func (f *Frame) Rows() [Height]uint32 {
	var rows [Height]uint32
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.pixels[y][x] {
				rows[y] |= 1 << uint(x)
			}
		}
	}
	return rows
}

// Empty reports whether no pixel is set.
func (f *Frame) Empty() bool {
	return *f == Frame{}
}
