package display

// glyphSpacing is the blank column between adjacent glyphs.
const glyphSpacing = 1

// DrawGlyph draws a single glyph with its top-left corner at (x, y) and
// returns the glyph width. Unknown runes draw nothing and return 0.
// Columns past the right edge are clipped.
func DrawGlyph(f *Frame, r rune, font *Font, x, y int) int {
	cols, ok := font.Glyphs[r]
	if !ok {
		return 0
	}
	for i, c := range cols {
		for b := 0; b < font.Height; b++ {
			if c&(1<<uint(b)) != 0 {
				f.Set(x+i, y+b)
			}
		}
	}
	return len(cols)
}

// DrawText lays out text left-to-right starting at (x, y) with proportional
// glyph widths and returns the x position after the final glyph's spacing.
func DrawText(f *Frame, text string, font *Font, x, y int) int {
	for _, r := range text {
		if x >= Width {
			break
		}
		w := DrawGlyph(f, r, font, x, y)
		if w > 0 {
			x += w + glyphSpacing
		}
	}
	return x
}

// TextWidth returns the layout width of text in pixels, including the
// spacing after every drawn glyph.
func TextWidth(text string, font *Font) int {
	x := 0
	for _, r := range text {
		if w := font.GlyphWidth(r); w > 0 {
			x += w + glyphSpacing
		}
	}
	return x
}
