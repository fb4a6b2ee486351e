package ssd1305

import (
	"bytes"
	"testing"
)

func TestInitSequenceDefault(t *testing.T) {
	want := []byte{
		0xAE,       // display off
		0xD5, 0x80, // clock divider
		0xA8, 0x3F, // multiplex ratio
		0xD3, 0x00, // display offset
		0x40,       // start line
		0xC8,       // COM scan remapped
		0xDA, 0x12, // COM pins
		0x81, 0xFF, // contrast
		0xD9, 0xF1, // pre-charge
		0xDB, 0x40, // VCOMH deselect
		0xA4,       // resume from RAM
		0xA6,       // normal display
		0x20, 0x00, // horizontal addressing
		0x21, 0x00, 0x7F, // column range
		0xAF, // display on
	}
	opts := DefaultOpts
	if got := initBytes(&opts); !bytes.Equal(got, want) {
		t.Errorf("initBytes() =\n% X\nwant\n% X", got, want)
	}
}

func TestInitSequenceOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Opts
		at   int    // index of the checked command
		want []byte // expected command at index at
		n    int    // number of commands
	}{
		{"32 rows", Opts{W: 128, H: 32, Contrast: 0xFF}, 2, []byte{0xA8, 0x1F}, 15},
		{"96 columns", Opts{W: 96, H: 64}, 13, []byte{0x21, 0x00, 0x5F}, 15},
		{"contrast", Opts{W: 128, H: 64, Contrast: 0x10}, 7, []byte{0x81, 0x10}, 15},
		{"flip vertical", Opts{W: 128, H: 64, FlipVertical: true}, 5, []byte{0xC0}, 15},
		{"flip horizontal", Opts{W: 128, H: 64, FlipHorizontal: true}, 5, []byte{0xA1}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := initSequence(&tt.opts)
			if len(seq) != tt.n {
				t.Fatalf("initSequence() has %d commands, want %d", len(seq), tt.n)
			}
			if got := seq[tt.at].bytes(); !bytes.Equal(got, tt.want) {
				t.Errorf("command %d = % X, want % X", tt.at, got, tt.want)
			}
			// The script always starts with the display off and ends with it on.
			if seq[0].op != cmdDisplayOff || seq[len(seq)-1].op != cmdDisplayOn {
				t.Error("script must start with display off and end with display on")
			}
		})
	}
}

func TestCommandBytes(t *testing.T) {
	c := command{op: 0x21, args: []byte{0x01, 0x02}}
	if got := c.bytes(); !bytes.Equal(got, []byte{0x21, 0x01, 0x02}) {
		t.Errorf("bytes() = % X", got)
	}
	if got := (command{op: 0xAF}).bytes(); !bytes.Equal(got, []byte{0xAF}) {
		t.Errorf("bytes() = % X", got)
	}
}
