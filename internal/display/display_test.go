package display

import "testing"

func TestFrameSetAndBounds(t *testing.T) {
	var f Frame
	f.Set(0, 0)
	f.Set(31, 15)
	if !f.Pixel(0, 0) || !f.Pixel(31, 15) {
		t.Error("corner pixels should be set")
	}

	// Out-of-bounds writes and reads are silent no-ops.
	f.Set(-1, 0)
	f.Set(32, 0)
	f.Set(0, 16)
	if f.Pixel(-1, 0) || f.Pixel(32, 0) || f.Pixel(0, 16) {
		t.Error("out-of-bounds pixels must read as off")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestFrameRows(t *testing.T) {
	var f Frame
	f.Set(0, 3)
	f.Set(31, 3)
	rows := f.Rows()
	want := uint32(1) | 1<<31
	if rows[3] != want {
		t.Errorf("row 3: got %#x, want %#x", rows[3], want)
	}
	if rows[0] != 0 {
		t.Errorf("row 0 should be empty, got %#x", rows[0])
	}
}

func TestDrawGlyphWidths(t *testing.T) {
	var f Frame
	if w := DrawGlyph(&f, '8', Digits5x8, 0, 0); w != 5 {
		t.Errorf("digit width: got %d, want 5", w)
	}
	if w := DrawGlyph(&f, ':', Digits5x8, 6, 0); w != 1 {
		t.Errorf("colon width: got %d, want 1", w)
	}
	if w := DrawGlyph(&f, '~', Digits5x8, 0, 0); w != 0 {
		t.Errorf("unknown rune width: got %d, want 0", w)
	}
	if f.Empty() {
		t.Error("drawing should have set pixels")
	}
}

func TestDrawTextProportional(t *testing.T) {
	var f Frame
	end := DrawText(&f, "1.", Text3x7, 0, 9)
	// '1' is 3 columns + spacing, '.' is 1 column + spacing.
	if end != 6 {
		t.Errorf("advance: got %d, want 6", end)
	}
	if got := TextWidth("1.", Text3x7); got != 6 {
		t.Errorf("TextWidth: got %d, want 6", got)
	}
}

func TestDrawTextClipsAtRightEdge(t *testing.T) {
	var f Frame
	end := DrawText(&f, "88888888888888", Digits5x8, 0, 0)
	// Layout walks past the edge but stops instead of wrapping.
	if end < Width {
		t.Errorf("advance: got %d, want >= %d", end, Width)
	}
	if !f.Pixel(30, 0) && !f.Pixel(31, 0) && !f.Pixel(30, 3) {
		t.Error("glyphs should render up to the right edge")
	}
}

func TestTextFontCoversRenderableRunes(t *testing.T) {
	needed := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 %.!/-:"
	for _, r := range needed {
		if Text3x7.GlyphWidth(r) == 0 {
			t.Errorf("Text3x7 missing glyph %q", r)
		}
	}
	for _, r := range "0123456789: " {
		if Digits5x8.GlyphWidth(r) == 0 {
			t.Errorf("Digits5x8 missing glyph %q", r)
		}
		if DigitsLarge.GlyphWidth(r) == 0 {
			t.Errorf("DigitsLarge missing glyph %q", r)
		}
	}
	for _, r := range "0123456789 " {
		if Digits3x5.GlyphWidth(r) == 0 {
			t.Errorf("Digits3x5 missing glyph %q", r)
		}
	}
}

func TestStretchDoublesHeight(t *testing.T) {
	if DigitsLarge.Height != 16 {
		t.Errorf("large font height: got %d, want 16", DigitsLarge.Height)
	}
	// A stretched column has each source bit doubled: the top pixel of a
	// '1' column maps to the top two pixels.
	var small, large Frame
	DrawGlyph(&small, '0', Digits5x8, 0, 0)
	DrawGlyph(&large, '0', DigitsLarge, 0, 0)
	for x := 0; x < 5; x++ {
		for y := 0; y < 8; y++ {
			want := small.Pixel(x, y)
			if large.Pixel(x, 2*y) != want || large.Pixel(x, 2*y+1) != want {
				t.Fatalf("stretch mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestApplierIdempotence(t *testing.T) {
	d := NewFakeDriver()
	a := NewApplier(d)

	if err := a.Apply(true, 8); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	a.Apply(true, 8)
	a.Apply(true, 8)
	if got := len(d.PowerCommands); got != 1 {
		t.Errorf("power commands: got %d, want 1", got)
	}
	if got := len(d.IntensityCommands); got != 1 {
		t.Errorf("intensity commands: got %d, want 1", got)
	}

	// Intensity change while powered sends exactly one command.
	a.Apply(true, 3)
	if got := len(d.IntensityCommands); got != 2 {
		t.Errorf("intensity commands after change: got %d, want 2", got)
	}

	// While off, intensity commands are suppressed entirely.
	a.Apply(false, 12)
	a.Apply(false, 5)
	if got := len(d.PowerCommands); got != 2 {
		t.Errorf("power commands after off: got %d, want 2", got)
	}
	if got := len(d.IntensityCommands); got != 2 {
		t.Errorf("intensity must not be commanded while off, got %d commands", got)
	}

	// Power back on refreshes intensity even if unchanged since last on.
	a.Apply(true, 5)
	if got := len(d.IntensityCommands); got != 3 {
		t.Errorf("intensity should refresh on power-on, got %d commands", got)
	}
}
