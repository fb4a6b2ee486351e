// Package ssd1305 controls a SSD1305 OLED display via its 8-bit parallel
// (8080) interface.
//
// The SSD1305 is a monochrome OLED controller driving up to 132x64 pixels.
// The common module resolution is 128x64.
//
// See the examples for how to use this package.
package ssd1305

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/flavioheleno/ssd1305/font5x7"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	// ErrOutOfBounds is returned when a pixel or line lies outside the
	// display. The operation is a no-op: nothing is sent to the controller
	// and the cursor does not move.
	ErrOutOfBounds = errors.New("ssd1305: out of bounds")
	// ErrSizeMismatch is returned by Write when the buffer is not exactly
	// one frame long.
	ErrSizeMismatch = errors.New("ssd1305: invalid buffer size")
)

// resetPulse is the default duration of each step of the reset sequence.
const resetPulse = 15 * time.Microsecond

// Font provides the 5 column bytes of a character glyph.
//
// Glyph returns false for characters it does not cover; those are rendered
// as a blank glyph.
type Font interface {
	Glyph(c byte) ([5]byte, bool)
}

// Opts is the configuration for the SSD1305 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤132)
	H int // Height (default: 64, multiple of 8 and ≤64)

	// Contrast loaded during initialization (0-255). Start from DefaultOpts
	// to get full contrast.
	Contrast byte

	// Mirroring
	FlipVertical   bool // Normal COM scan direction instead of remapped
	FlipHorizontal bool // Reversed segment remap

	// Font used by PutChar. nil means font5x7.Default.
	Font Font

	// Delay blocks for the given duration during the reset sequence. nil
	// means time.Sleep.
	Delay func(time.Duration)
}

// DefaultOpts is a 128x64 module at full contrast.
var DefaultOpts = Opts{
	W:        128,
	H:        64,
	Contrast: 0xFF,
}

// Dev is the device handle for the SSD1305 display.
//
// All methods are safe for concurrent use; each one holds the bus for its
// whole duration.
type Dev struct {
	mu sync.Mutex

	// Communication
	bus bus

	// Configuration
	opts  Opts
	font  Font
	delay func(time.Duration)

	// Display geometry
	rect  image.Rectangle
	pages int // 8 pixel rows each
	cols  int // glyphs per text line

	// Text cursor: glyphs written on the current line and the line itself.
	col, line int

	// Shadow of the controller RAM, same layout as image1bit.VerticalLSB.
	buffer []byte
	next   *image1bit.VerticalLSB // lazy back buffer for Draw
	stale  bool                   // buffer no longer matches the controller
}

// New creates a new SSD1305 device connected through the given control and
// data lines, runs the reset sequence and initializes the controller.
//
// opts can be nil to use DefaultOpts.
func New(ctrl ControlLines, data DataBus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.W == 0 && o.H == 0 {
		o.W, o.H = DefaultOpts.W, DefaultOpts.H
	}
	if o.W <= 0 || o.W > 132 {
		return nil, errors.New("ssd1305: width must be between 1 and 132")
	}
	if o.H < 8 || o.H > 64 || o.H%8 != 0 {
		return nil, errors.New("ssd1305: height must be a multiple of 8 between 8 and 64")
	}
	if err := ctrl.validate(); err != nil {
		return nil, err
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	if o.Font == nil {
		o.Font = font5x7.Default
	}
	if o.Delay == nil {
		o.Delay = time.Sleep
	}

	d := &Dev{
		bus:    bus{ctrl: ctrl, data: data},
		opts:   o,
		font:   o.Font,
		delay:  o.Delay,
		rect:   image.Rect(0, 0, o.W, o.H),
		pages:  o.H / 8,
		cols:   o.W / 6,
		buffer: make([]byte, o.W*o.H/8),
	}

	if err := d.Initialize(); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize resets the controller, sends the initialization script and
// clears the display.
//
// The bus has no acknowledge line, so a missing or unresponsive controller
// cannot be detected.
func (d *Dev) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.init()
}

func (d *Dev) init() error {
	if err := d.initPorts(); err != nil {
		return err
	}
	if err := d.bus.writeCommands(initBytes(&d.opts)...); err != nil {
		return err
	}
	return d.clearRAM()
}

// initPorts drives every line as an output and pulses reset.
func (d *Dev) initPorts() error {
	if err := d.bus.drive(0x00); err != nil {
		return err
	}
	c := &d.bus.ctrl
	// CS goes inactive first so the idle strobe levels do not start a cycle.
	if err := sequence(
		step{c.CS, gpio.High},
		step{c.WR, gpio.High},
		step{c.RD, gpio.High},
		step{c.DC, gpio.Low},
		step{c.RES, gpio.High},
	); err != nil {
		return err
	}
	d.delay(resetPulse)
	if err := out(c.RES, gpio.Low); err != nil {
		return err
	}
	d.delay(resetPulse)
	if err := out(c.RES, gpio.High); err != nil {
		return err
	}
	d.delay(resetPulse)
	return nil
}

// Clear turns every pixel off and moves the text cursor home.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearRAM()
}

func (d *Dev) clearRAM() error {
	if err := d.gotoPixel(0, 0); err != nil {
		return err
	}
	for range d.buffer {
		if err := d.bus.writeData(0x00); err != nil {
			return err
		}
	}
	clear(d.buffer)
	d.stale = false
	d.col, d.line = 0, 0
	return nil
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a full frame to the display, starting at pixel (0, 0).
//
// Each byte represents 8 vertical pixels of one column; bytes are ordered
// page by page, which is the layout of image1bit.VerticalLSB.Pix. The data
// must be exactly W*H/8 bytes or ErrSizeMismatch is returned and nothing is
// sent.
func (d *Dev) Write(pixels []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(pixels) != len(d.buffer) {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d bytes", ErrSizeMismatch, len(d.buffer), len(pixels))
	}
	if err := d.blit(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// blit sends a full frame and records it as the controller content.
func (d *Dev) blit(pixels []byte) error {
	if err := d.gotoPixel(0, 0); err != nil {
		return err
	}
	for _, b := range pixels {
		if err := d.bus.writeData(b); err != nil {
			d.stale = true
			return err
		}
	}
	copy(d.buffer, pixels)
	if d.next != nil {
		copy(d.next.Pix, pixels)
	}
	d.stale = false
	return nil
}

// Draw implements display.Drawer.
//
// It draws synchronously. Only the changed column span of each changed page
// is sent. After text or raw data writes the known RAM content is stale: a
// full frame image1bit.VerticalLSB is then sent whole, any other draw first
// reads the frame back from the controller.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}

	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) {
		// Exact size, full frame, image1bit encoding: fast path!
		if d.stale {
			return d.blit(img.Pix)
		}
		return d.drawDiff(img.Pix)
	}

	// The shadow must match RAM before r is composed into it.
	if d.stale {
		if err := d.resync(); err != nil {
			return err
		}
	}
	// Lazy-initialize double buffer
	if d.next == nil {
		d.next = image1bit.NewVerticalLSB(d.rect)
		copy(d.next.Pix, d.buffer)
	}
	draw.Src.Draw(d.next, r, src, sp)
	return d.drawDiff(d.next.Pix)
}

// drawDiff sends the changed span of every page of next.
func (d *Dev) drawDiff(next []byte) error {
	w := d.rect.Dx()
	for page := 0; page < d.pages; page++ {
		off := page * w
		start, end := diffSpan(d.buffer[off:off+w], next[off:off+w])
		if start > end {
			continue
		}
		if err := d.gotoPixel(start, page*8); err != nil {
			return err
		}
		for _, b := range next[off+start : off+end+1] {
			if err := d.bus.writeData(b); err != nil {
				d.stale = true
				return err
			}
		}
		copy(d.buffer[off+start:], next[off+start:off+end+1])
	}
	if d.next != nil {
		copy(d.next.Pix, next)
	}
	return nil
}

// resync reads the whole frame back from the controller into the shadow
// buffer.
func (d *Dev) resync() error {
	if err := d.gotoPixel(0, 0); err != nil {
		return err
	}
	for i := range d.buffer {
		v, err := d.bus.read()
		if err != nil {
			return err
		}
		d.buffer[i] = v
	}
	if d.next != nil {
		copy(d.next.Pix, d.buffer)
	}
	d.stale = false
	return nil
}

// diffSpan returns the first and last index where a and b differ, or
// (len(a), -1) when they are equal.
func diffSpan(a, b []byte) (start, end int) {
	start, end = len(a), -1
	for i := range a {
		if a[i] != b[i] {
			if i < start {
				start = i
			}
			end = i
		}
	}
	return start, end
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.writeCommands(cmdSetContrast, level)
}

// Invert inverts the display colors (lit pixels become dark and vice versa).
func (d *Dev) Invert(invert bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	mode := byte(cmdNormalDisplay)
	if invert {
		mode = cmdInvertDisplay
	}
	return d.bus.writeCommand(mode)
}

// Show switches the panel on or off. RAM content is kept while off.
func (d *Dev) Show(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cmd := byte(cmdDisplayOff)
	if on {
		cmd = cmdDisplayOn
	}
	return d.bus.writeCommand(cmd)
}

// Halt turns off the display.
//
// Show(true) turns it back on with its content intact.
func (d *Dev) Halt() error {
	return d.Show(false)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1305.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

var _ conn.Resource = &Dev{}
var _ display.Drawer = &Dev{}
