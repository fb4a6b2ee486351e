package ssd1305

// Fundamental commands.
const (
	cmdMemoryMode         = 0x20
	cmdSetColumnAddress   = 0x21
	cmdSetStartLine       = 0x40
	cmdSetContrast        = 0x81
	cmdSegRemapReverse    = 0xA1
	cmdDisplayAllOnResume = 0xA4
	cmdNormalDisplay      = 0xA6
	cmdInvertDisplay      = 0xA7
	cmdSetMultiplex       = 0xA8
	cmdDisplayOff         = 0xAE
	cmdDisplayOn          = 0xAF
	cmdSetPageStart       = 0xB0
	cmdComScanNormal      = 0xC0
	cmdComScanRemap       = 0xC8
	cmdSetDisplayOffset   = 0xD3
	cmdSetDisplayClockDiv = 0xD5
	cmdSetPrecharge       = 0xD9
	cmdSetComPins         = 0xDA
	cmdSetVCOMDeselect    = 0xDB
)

// addrHorizontal selects horizontal addressing for cmdMemoryMode: the
// column pointer wraps to the next page at the end of the column range.
const addrHorizontal = 0x00

// command is one controller command with its parameter bytes.
type command struct {
	op   byte
	args []byte
}

func (c command) bytes() []byte {
	return append([]byte{c.op}, c.args...)
}

// initSequence returns the power-up script for opts. The order follows the
// controller datasheet and must not change.
func initSequence(opts *Opts) []command {
	comScan := byte(cmdComScanRemap)
	if opts.FlipVertical {
		comScan = cmdComScanNormal
	}
	seq := []command{
		{op: cmdDisplayOff},
		{op: cmdSetDisplayClockDiv, args: []byte{0x80}}, // suggested ratio
		{op: cmdSetMultiplex, args: []byte{byte(opts.H - 1)}},
		{op: cmdSetDisplayOffset, args: []byte{0x00}},
		{op: cmdSetStartLine | 0x00},
	}
	// Segment remap stays at its reset value unless mirrored.
	if opts.FlipHorizontal {
		seq = append(seq, command{op: cmdSegRemapReverse})
	}
	seq = append(seq,
		command{op: comScan},
		command{op: cmdSetComPins, args: []byte{0x12}}, // alternative COM pins, no left/right remap
		command{op: cmdSetContrast, args: []byte{opts.Contrast}},
		command{op: cmdSetPrecharge, args: []byte{0xF1}},
		command{op: cmdSetVCOMDeselect, args: []byte{0x40}}, // ~0.43 x VCC
		command{op: cmdDisplayAllOnResume},
		command{op: cmdNormalDisplay},
		command{op: cmdMemoryMode, args: []byte{addrHorizontal}},
		command{op: cmdSetColumnAddress, args: []byte{0, byte(opts.W - 1)}},
		command{op: cmdDisplayOn},
	)
	return seq
}

// initBytes flattens the script into the bytes sent on the command bus.
func initBytes(opts *Opts) []byte {
	var out []byte
	for _, c := range initSequence(opts) {
		out = append(out, c.bytes()...)
	}
	return out
}
