package ssd1305

import (
	"bytes"
	"errors"
	"testing"
)

func TestGotoPixelSetsPointer(t *testing.T) {
	dev, sim := newSim(t, nil)
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x += 3 {
			if err := dev.GotoPixel(x, y); err != nil {
				t.Fatalf("GotoPixel(%d, %d) error = %v", x, y, err)
			}
			if col, page := sim.Pointer(); col != x || page != y/8 {
				t.Fatalf("GotoPixel(%d, %d): Pointer() = (%d, %d), want (%d, %d)", x, y, col, page, x, y/8)
			}
		}
	}
	checkBus(t, sim)
}

func TestGotoPixelCommands(t *testing.T) {
	dev, sim := newSim(t, nil)
	if err := dev.GotoPixel(3, 17); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{0x21, 0x03, 0x7F}, {0xB2}}
	got := sim.Commands()
	if len(got) != len(want) {
		t.Fatalf("GotoPixel sent % X, want % X", got, want)
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("command %d = % X, want % X", i, got[i], want[i])
		}
	}
}

func TestGotoPixelOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"x = width", 128, 0},
		{"negative y", 0, -1},
		{"y = height", 0, 64},
		{"far away", 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, sim := newSim(t, nil)
			if err := dev.GotoPixel(5, 24); err != nil {
				t.Fatal(err)
			}
			sim.ResetLog()

			err := dev.GotoPixel(tt.x, tt.y)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("GotoPixel(%d, %d) error = %v, want ErrOutOfBounds", tt.x, tt.y, err)
			}
			if n := len(sim.Commands()); n != 0 {
				t.Errorf("GotoPixel(%d, %d) sent %d commands", tt.x, tt.y, n)
			}
			if col, page := sim.Pointer(); col != 5 || page != 3 {
				t.Errorf("Pointer() = (%d, %d), want unchanged (5, 3)", col, page)
			}
		})
	}
}

func TestGotoPixelSmallDisplay(t *testing.T) {
	dev, sim := newSim(t, &Opts{W: 96, H: 32})
	if err := dev.GotoPixel(95, 31); err != nil {
		t.Errorf("GotoPixel(95, 31) error = %v", err)
	}
	if got := sim.Commands()[0]; !bytes.Equal(got, []byte{0x21, 95, 95}) {
		t.Errorf("column command = % X, want 21 5F 5F", got)
	}
	if err := dev.GotoPixel(0, 32); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GotoPixel(0, 32) error = %v, want ErrOutOfBounds", err)
	}
}

func TestGotoLine(t *testing.T) {
	dev, sim := newSim(t, nil)
	for line := 0; line < 8; line++ {
		if err := dev.GotoPixel(50, 0); err != nil {
			t.Fatal(err)
		}
		if err := dev.GotoLine(line); err != nil {
			t.Fatalf("GotoLine(%d) error = %v", line, err)
		}
		if col, page := sim.Pointer(); col != 0 || page != line {
			t.Errorf("GotoLine(%d): Pointer() = (%d, %d), want (0, %d)", line, col, page, line)
		}
		if col, l := dev.Cursor(); col != 0 || l != line {
			t.Errorf("GotoLine(%d): Cursor() = (%d, %d), want (0, %d)", line, col, l, line)
		}
	}
}

func TestGotoLineOutOfBounds(t *testing.T) {
	for _, line := range []int{-1, 8, 100} {
		dev, sim := newSim(t, nil)
		if err := dev.GotoLine(2); err != nil {
			t.Fatal(err)
		}
		if err := dev.PutString("ab"); err != nil {
			t.Fatal(err)
		}
		sim.ResetLog()

		if err := dev.GotoLine(line); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GotoLine(%d) error = %v, want ErrOutOfBounds", line, err)
		}
		if n := len(sim.Commands()); n != 0 {
			t.Errorf("GotoLine(%d) sent %d commands", line, n)
		}
		if col, l := dev.Cursor(); col != 2 || l != 2 {
			t.Errorf("GotoLine(%d): Cursor() = (%d, %d), want unchanged (2, 2)", line, col, l)
		}
	}
}
