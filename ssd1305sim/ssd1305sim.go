// Package ssd1305sim is a software model of an SSD1305 controller wired to an
// 8080-style parallel bus.
//
// The Controller exposes fake GPIO pins built on gpiotest.Pin. Driving them
// the way a host would (strobing WR and RD while CS is low) makes the model
// latch commands, write and read its display RAM and move its column/page
// pointer as the real chip does. This lets drivers be tested down to the
// individual bus cycle without hardware.
package ssd1305sim

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Addressing modes selected by command 0x20.
const (
	Horizontal = 0x00
	Vertical   = 0x01
	PageMode   = 0x02
)

// Size of the SSD1305 GDDRAM.
const (
	ramWidth = 132
	ramPages = 8
)

// argCount lists the commands followed by parameter bytes.
var argCount = map[byte]int{
	0x20: 1, // memory addressing mode
	0x21: 2, // column address
	0x22: 2, // page address
	0x81: 1, // contrast
	0x82: 1, // brightness
	0x91: 4, // look up table
	0xA8: 1, // multiplex ratio
	0xAD: 1, // master configuration
	0xD3: 1, // display offset
	0xD5: 1, // clock divide ratio
	0xD8: 1, // area color mode
	0xD9: 1, // pre-charge period
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH deselect level
}

type role int

const (
	roleData role = iota
	roleCS
	roleDC
	roleWR
	roleRD
	roleRES
)

// Pin is one bus line of the simulated controller.
type Pin struct {
	gpiotest.Pin
	c     *Controller
	role  role
	bit   uint
	input bool
}

// Out drives the line from the host side.
func (p *Pin) Out(l gpio.Level) error {
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.role == roleData {
		p.input = false
		return nil
	}
	p.c.edge(p.role, l)
	return nil
}

// In switches a data line to input. Only data lines are readable by the
// host.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if p.role != roleData {
		return fmt.Errorf("ssd1305sim: %s is output only", p.Name())
	}
	if edge != gpio.NoEdge {
		return errors.New("ssd1305sim: edge detection not supported")
	}
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	p.input = true
	return nil
}

// Read returns the level the controller drives while the line is an input,
// or the last level the host drove otherwise.
func (p *Pin) Read() gpio.Level {
	p.c.mu.Lock()
	input := p.input
	out := p.c.out
	p.c.mu.Unlock()
	if input {
		return gpio.Level(out&(1<<p.bit) != 0)
	}
	return p.Pin.Read()
}

// Controller is the simulated SSD1305.
type Controller struct {
	CS, DC, WR, RD, RES *Pin
	Data                [8]*Pin

	mu    sync.Mutex
	w, h  int
	ram   [][]byte
	level [roleRES + 1]gpio.Level

	mode               byte
	colStart, colEnd   int
	pageStart, pageEnd int
	col, page          int

	cmd      []byte
	cmds     [][]byte
	writes   int
	reads    int
	resets   int
	dummy    bool
	latch    byte
	out      byte
	on       bool
	invert   bool
	contrast byte
	err      error
}

// New returns a controller driving a w×h panel. h is rounded up to a whole
// number of pages. Both are clamped to the 132×64 RAM of the chip, with at
// least one page.
func New(w, h int) *Controller {
	w = min(max(w, 0), ramWidth)
	h = min(max(h, 8), ramPages*8)
	pages := (h + 7) / 8
	c := &Controller{w: w, h: h, ram: make([][]byte, pages)}
	for i := range c.ram {
		c.ram[i] = make([]byte, ramWidth)
	}
	newPin := func(name string, r role, bit uint) *Pin {
		return &Pin{Pin: gpiotest.Pin{N: name}, c: c, role: r, bit: bit}
	}
	c.CS = newPin("CS", roleCS, 0)
	c.DC = newPin("DC", roleDC, 0)
	c.WR = newPin("WR", roleWR, 0)
	c.RD = newPin("RD", roleRD, 0)
	c.RES = newPin("RES", roleRES, 0)
	for i := range c.Data {
		c.Data[i] = newPin(fmt.Sprintf("D%d", i), roleData, uint(i))
	}
	c.reset()
	return c
}

// reset loads the power-on register values. RAM content is kept.
func (c *Controller) reset() {
	c.mode = PageMode
	c.colStart, c.colEnd = 0, ramWidth-1
	c.pageStart, c.pageEnd = 0, len(c.ram)-1
	c.col, c.page = 0, 0
	c.cmd = nil
	c.dummy = true
	c.on = false
	c.invert = false
	c.contrast = 0x80
}

// edge is called with c.mu held whenever a control line is driven.
func (c *Controller) edge(r role, l gpio.Level) {
	prev := c.level[r]
	c.level[r] = l
	selected := c.level[roleCS] == gpio.Low
	switch {
	case r == roleRES && prev == gpio.High && l == gpio.Low:
		c.resets++
		c.reset()
	case c.level[roleRES] == gpio.Low:
		// Held in reset.
	case r == roleWR && prev == gpio.Low && l == gpio.High && selected:
		if c.level[roleRD] == gpio.Low {
			c.fail("WR strobe while RD is low")
			return
		}
		b, ok := c.sample()
		if !ok {
			c.fail("WR strobe while data lines are inputs")
			return
		}
		if c.level[roleDC] == gpio.Low {
			c.command(b)
		} else {
			c.data(b)
		}
	case r == roleRD && prev == gpio.Low && l == gpio.High && selected:
		if c.level[roleWR] == gpio.Low {
			c.fail("RD strobe while WR is low")
			return
		}
		if c.level[roleDC] == gpio.Low {
			c.fail("status read is not supported")
			return
		}
		c.read()
	}
}

func (c *Controller) fail(msg string) {
	if c.err == nil {
		c.err = errors.New("ssd1305sim: " + msg)
	}
}

// sample returns the byte the host drives on D0..D7.
func (c *Controller) sample() (byte, bool) {
	var b byte
	for i, p := range c.Data {
		if p.input {
			return 0, false
		}
		if p.Pin.Read() == gpio.High {
			b |= 1 << uint(i)
		}
	}
	return b, true
}

func (c *Controller) command(b byte) {
	c.dummy = true
	if c.cmd == nil {
		if n := argCount[b]; n > 0 {
			c.cmd = append(make([]byte, 0, n+1), b)
			return
		}
		c.exec([]byte{b})
		return
	}
	c.cmd = append(c.cmd, b)
	if len(c.cmd) == argCount[c.cmd[0]]+1 {
		cmd := c.cmd
		c.cmd = nil
		c.exec(cmd)
	}
}

func (c *Controller) exec(cmd []byte) {
	c.cmds = append(c.cmds, cmd)
	op := cmd[0]
	switch {
	case op <= 0x0F:
		c.col = c.col&0xF0 | int(op)
	case op >= 0x10 && op <= 0x1F:
		c.col = c.col&0x0F | int(op&0x0F)<<4
	case op == 0x20:
		c.mode = cmd[1] & 0x03
	case op == 0x21:
		c.colStart, c.colEnd = int(cmd[1]), int(cmd[2])
		c.col = c.colStart
	case op == 0x22:
		c.pageStart, c.pageEnd = int(cmd[1]&0x07), int(cmd[2]&0x07)
		c.page = c.pageStart
	case op == 0x81:
		c.contrast = cmd[1]
	case op == 0xA6, op == 0xA7:
		c.invert = op == 0xA7
	case op == 0xAE, op == 0xAF:
		c.on = op == 0xAF
	case op >= 0xB0 && op <= 0xB7:
		c.page = int(op & 0x07)
	}
}

func (c *Controller) data(b byte) {
	c.dummy = true
	c.writes++
	if c.inRAM(c.col, c.page) {
		c.ram[c.page][c.col] = b
	}
	c.advance()
}

func (c *Controller) read() {
	c.reads++
	if c.dummy {
		c.dummy = false
		c.latch = c.at(c.col, c.page)
		return
	}
	c.out = c.latch
	c.advance()
	c.latch = c.at(c.col, c.page)
}

func (c *Controller) inRAM(col, page int) bool {
	return col >= 0 && col < ramWidth && page >= 0 && page < len(c.ram)
}

func (c *Controller) at(col, page int) byte {
	if c.inRAM(col, page) {
		return c.ram[page][col]
	}
	return 0
}

// advance moves the pointer after a data access.
func (c *Controller) advance() {
	switch c.mode {
	case Horizontal:
		c.col++
		if c.col > c.colEnd {
			c.col = c.colStart
			c.page++
			if c.page > c.pageEnd {
				c.page = c.pageStart
			}
		}
	case Vertical:
		c.page++
		if c.page > c.pageEnd {
			c.page = c.pageStart
			c.col++
			if c.col > c.colEnd {
				c.col = c.colStart
			}
		}
	default:
		if c.col < ramWidth-1 {
			c.col++
		}
	}
}

// Pointer returns the column and page the next data access will hit.
func (c *Controller) Pointer() (col, page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col, c.page
}

// Mode returns the current addressing mode.
func (c *Controller) Mode() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Byte returns the RAM byte at col, page.
func (c *Controller) Byte(col, page int) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at(col, page)
}

// SetByte stores b in RAM at col, page without any bus traffic.
func (c *Controller) SetByte(col, page int, b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inRAM(col, page) {
		c.ram[page][col] = b
	}
}

// Commands returns every complete command received, parameters included.
func (c *Controller) Commands() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.cmds))
	copy(out, c.cmds)
	return out
}

// ResetLog forgets recorded commands and the access counters.
func (c *Controller) ResetLog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = nil
	c.writes, c.reads = 0, 0
}

// Writes returns the number of data write cycles.
func (c *Controller) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

// Reads returns the number of data read cycles, dummy reads included.
func (c *Controller) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Resets returns the number of hardware resets seen on RES.
func (c *Controller) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// On reports whether the display is switched on.
func (c *Controller) On() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

// Inverted reports whether inverse display mode is active.
func (c *Controller) Inverted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invert
}

// Contrast returns the contrast register.
func (c *Controller) Contrast() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contrast
}

// Err returns the first bus protocol violation, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Image returns a copy of the visible part of RAM.
func (c *Controller) Image() *image1bit.VerticalLSB {
	c.mu.Lock()
	defer c.mu.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, c.w, len(c.ram)*8))
	for page, row := range c.ram {
		copy(img.Pix[page*img.Stride:], row[:c.w])
	}
	return img
}

// Render writes the panel as text, one line per pixel row, using on and off
// for lit and dark pixels.
func (c *Controller) Render(w io.Writer, on, off rune) error {
	img := c.Image()
	line := make([]rune, 0, c.w+1)
	for y := 0; y < c.h; y++ {
		line = line[:0]
		for x := 0; x < c.w; x++ {
			if img.BitAt(x, y) {
				line = append(line, on)
			} else {
				line = append(line, off)
			}
		}
		line = append(line, '\n')
		if _, err := io.WriteString(w, string(line)); err != nil {
			return err
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (c *Controller) String() string {
	return fmt.Sprintf("ssd1305sim.Controller{%dx%d}", c.w, c.h)
}
