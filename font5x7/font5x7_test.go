package font5x7

import "testing"

func TestGlyphRange(t *testing.T) {
	tests := []struct {
		name string
		c    byte
		ok   bool
	}{
		{"NUL", 0x00, false},
		{"newline", '\n', false},
		{"before first", First - 1, false},
		{"space", ' ', true},
		{"letter", 'A', true},
		{"tilde", '~', true},
		{"DEL", 0x7F, false},
		{"high byte", 0xC8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Default.Glyph(tt.c)
			if ok != tt.ok {
				t.Errorf("Glyph(0x%02X) ok = %v, want %v", tt.c, ok, tt.ok)
			}
		})
	}
}

func TestGlyphOutOfRangeIsBlank(t *testing.T) {
	cols, _ := Default.Glyph(0x7F)
	if cols != ([Width]byte{}) {
		t.Errorf("Glyph(0x7F) = %v, want blank", cols)
	}
}

func TestGlyphLookupByOffset(t *testing.T) {
	tests := []struct {
		c    byte
		want [Width]byte
	}{
		{' ', [Width]byte{0x00, 0x00, 0x00, 0x00, 0x00}},
		{'0', [Width]byte{0x3E, 0x51, 0x49, 0x45, 0x3E}},
		{'A', [Width]byte{0x7E, 0x11, 0x11, 0x11, 0x7E}},
		{'L', [Width]byte{0x7F, 0x40, 0x40, 0x40, 0x40}},
		{'~', [Width]byte{0x08, 0x08, 0x2A, 0x1C, 0x08}},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			got, ok := Default.Glyph(tt.c)
			if !ok {
				t.Fatalf("Glyph(%q) not found", tt.c)
			}
			if got != tt.want {
				t.Errorf("Glyph(%q) = % X, want % X", tt.c, got, tt.want)
			}
			if got != Default[tt.c-First] {
				t.Errorf("Glyph(%q) does not match table entry %d", tt.c, tt.c-First)
			}
		})
	}
}

func TestGlyphsFitInSevenRows(t *testing.T) {
	for i, g := range Default {
		for col, b := range g {
			if b&^(1<<Height-1) != 0 {
				t.Errorf("glyph %q column %d = 0x%02X uses bit 7", rune(First+i), col, b)
			}
		}
	}
}

func TestPrintableGlyphsNotBlank(t *testing.T) {
	for c := byte(First + 1); c <= Last; c++ {
		g, _ := Default.Glyph(c)
		if g == ([Width]byte{}) {
			t.Errorf("glyph %q is blank", c)
		}
	}
}
