package display

// Font is a proportional bitmap font. Each glyph is a slice of column
// bitmasks with bit 0 at the top; glyph width is the column count.
type Font struct {
	Height int
	Glyphs map[rune][]uint16
}

// GlyphWidth returns the column count for r, or 0 for unknown runes.
func (f *Font) GlyphWidth(r rune) int {
	return len(f.Glyphs[r])
}

// Digits5x8 renders time digits on one 8-pixel bank.
var Digits5x8 = &Font{
	Height: 8,
	Glyphs: map[rune][]uint16{
		'0': {0x3E, 0x51, 0x49, 0x45, 0x3E},
		'1': {0x00, 0x42, 0x7F, 0x40, 0x00},
		'2': {0x42, 0x61, 0x51, 0x49, 0x46},
		'3': {0x21, 0x41, 0x45, 0x4B, 0x31},
		'4': {0x18, 0x14, 0x12, 0x7F, 0x10},
		'5': {0x27, 0x45, 0x45, 0x45, 0x39},
		'6': {0x3C, 0x4A, 0x49, 0x49, 0x30},
		'7': {0x01, 0x71, 0x09, 0x05, 0x03},
		'8': {0x36, 0x49, 0x49, 0x49, 0x36},
		'9': {0x06, 0x49, 0x49, 0x29, 0x1E},
		':': {0x36},
		' ': {0x00, 0x00},
	},
}

// Digits3x5 renders the small seconds beside the time.
var Digits3x5 = &Font{
	Height: 5,
	Glyphs: map[rune][]uint16{
		'0': {0x1F, 0x11, 0x1F},
		'1': {0x12, 0x1F, 0x10},
		'2': {0x1D, 0x15, 0x17},
		'3': {0x15, 0x15, 0x1F},
		'4': {0x07, 0x04, 0x1F},
		'5': {0x17, 0x15, 0x1D},
		'6': {0x1F, 0x15, 0x1D},
		'7': {0x01, 0x01, 0x1F},
		'8': {0x1F, 0x15, 0x1F},
		'9': {0x17, 0x15, 0x1F},
		' ': {0x00},
	},
}

// Text3x7 renders the bottom line (environment, date) and status messages.
var Text3x7 = &Font{
	Height: 7,
	Glyphs: map[rune][]uint16{
		'A': {0x7E, 0x09, 0x7E},
		'B': {0x7F, 0x49, 0x36},
		'C': {0x3E, 0x41, 0x22},
		'D': {0x7F, 0x41, 0x3E},
		'E': {0x7F, 0x49, 0x41},
		'F': {0x7F, 0x09, 0x01},
		'G': {0x3E, 0x49, 0x7A},
		'H': {0x7F, 0x08, 0x7F},
		'I': {0x41, 0x7F, 0x41},
		'J': {0x20, 0x40, 0x3F},
		'K': {0x7F, 0x1C, 0x63},
		'L': {0x7F, 0x40, 0x40},
		'M': {0x7F, 0x06, 0x7F},
		'N': {0x7F, 0x1C, 0x7F},
		'O': {0x3E, 0x41, 0x3E},
		'P': {0x7F, 0x09, 0x06},
		'Q': {0x3E, 0x61, 0x7E},
		'R': {0x7F, 0x19, 0x66},
		'S': {0x46, 0x49, 0x31},
		'T': {0x01, 0x7F, 0x01},
		'U': {0x3F, 0x40, 0x3F},
		'V': {0x1F, 0x60, 0x1F},
		'W': {0x7F, 0x30, 0x7F},
		'X': {0x77, 0x08, 0x77},
		'Y': {0x07, 0x78, 0x07},
		'Z': {0x71, 0x49, 0x47},
		'0': {0x3E, 0x41, 0x3E},
		'1': {0x42, 0x7F, 0x40},
		'2': {0x62, 0x51, 0x4E},
		'3': {0x41, 0x49, 0x36},
		'4': {0x1C, 0x12, 0x7F},
		'5': {0x4F, 0x49, 0x31},
		'6': {0x3E, 0x49, 0x32},
		'7': {0x01, 0x71, 0x0F},
		'8': {0x36, 0x49, 0x36},
		'9': {0x26, 0x49, 0x3E},
		'%': {0x63, 0x1C, 0x63},
		'.': {0x40},
		'!': {0x5F},
		'/': {0x60, 0x1C, 0x03},
		'-': {0x08, 0x08, 0x08},
		':': {0x14},
		' ': {0x00, 0x00},
	},
}

// DigitsLarge is the 16-pixel-high digit set for the large time mode,
// derived from Digits5x8 by doubling each column bit vertically.
var DigitsLarge = stretch(Digits5x8)

func stretch(src *Font) *Font {
	dst := &Font{Height: src.Height * 2, Glyphs: make(map[rune][]uint16, len(src.Glyphs))}
	for r, cols := range src.Glyphs {
		out := make([]uint16, len(cols))
		for i, c := range cols {
			var v uint16
			for b := 0; b < src.Height; b++ {
				if c&(1<<uint(b)) != 0 {
					v |= 3 << uint(2*b)
				}
			}
			out[i] = v
		}
		dst.Glyphs[r] = out
	}
	return dst
}
