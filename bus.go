package ssd1305

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// ControlLines are the 8080 bus control pins.
//
// All lines are active low except DC, which selects data when high and
// command when low.
type ControlLines struct {
	CS  gpio.PinOut // Chip select
	DC  gpio.PinOut // Data/Command select
	WR  gpio.PinOut // Write strobe
	RD  gpio.PinOut // Read strobe
	RES gpio.PinOut // Reset
}

// DataBus holds the eight data lines, D0 first.
type DataBus [8]gpio.PinIO

func (c *ControlLines) validate() error {
	lines := []struct {
		name string
		pin  gpio.PinOut
	}{{"CS", c.CS}, {"DC", c.DC}, {"WR", c.WR}, {"RD", c.RD}, {"RES", c.RES}}
	for _, l := range lines {
		if l.pin == nil || l.pin == gpio.INVALID {
			return fmt.Errorf("ssd1305: %s pin is required", l.name)
		}
	}
	return nil
}

func (b *DataBus) validate() error {
	for i, p := range b {
		if p == nil || p == gpio.INVALID {
			return fmt.Errorf("ssd1305: data pin D%d is required", i)
		}
	}
	return nil
}

// bus runs single bus cycles. It holds no lock; callers serialize.
type bus struct {
	ctrl ControlLines
	data DataBus
	last byte // last value driven on D0..D7

	// primed is set once the controller output latch holds the byte at the
	// column pointer. Any write cycle clears it.
	primed bool
}

// out drives a control line.
func out(p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return fmt.Errorf("ssd1305: %s: %w", p, err)
	}
	return nil
}

// drive puts v on D0..D7.
func (b *bus) drive(v byte) error {
	for i, p := range b.data {
		if err := out(p, gpio.Level(v&(1<<uint(i)) != 0)); err != nil {
			return err
		}
	}
	b.last = v
	return nil
}

type step struct {
	p gpio.PinOut
	l gpio.Level
}

// sequence drives each pin/level pair in order.
func sequence(steps ...step) error {
	for _, s := range steps {
		if err := out(s.p, s.l); err != nil {
			return err
		}
	}
	return nil
}

// write performs one write cycle. dc selects data (High) or command (Low).
func (b *bus) write(v byte, dc gpio.Level) error {
	b.primed = false
	if err := b.drive(v); err != nil {
		return err
	}
	c := &b.ctrl
	// CS and DC settle before WR is strobed.
	return sequence(
		step{c.RD, gpio.High},
		step{c.DC, dc},
		step{c.CS, gpio.Low},
		step{c.WR, gpio.Low},
		step{c.WR, gpio.High},
		step{c.CS, gpio.High},
	)
}

func (b *bus) writeCommand(v byte) error {
	return b.write(v, gpio.Low)
}

func (b *bus) writeCommands(cmds ...byte) error {
	for _, v := range cmds {
		if err := b.writeCommand(v); err != nil {
			return err
		}
	}
	return nil
}

func (b *bus) writeData(v byte) error {
	return b.write(v, gpio.High)
}

// strobe is one RD pulse with CS held low.
func (b *bus) strobe() error {
	c := &b.ctrl
	return sequence(
		step{c.CS, gpio.Low},
		step{c.DC, gpio.High},
		step{c.WR, gpio.High},
		step{c.RD, gpio.Low},
		step{c.RD, gpio.High},
		step{c.CS, gpio.High},
	)
}

// read performs one read cycle. The first read after a write cycle is
// preceded by a dummy strobe that loads the controller output latch.
func (b *bus) read() (byte, error) {
	for i, p := range b.data {
		if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return 0, fmt.Errorf("ssd1305: D%d: %w", i, err)
		}
	}
	if !b.primed {
		if err := b.strobe(); err != nil {
			return 0, err
		}
		b.primed = true
	}
	if err := b.strobe(); err != nil {
		return 0, err
	}
	var v byte
	for i, p := range b.data {
		if p.Read() == gpio.High {
			v |= 1 << uint(i)
		}
	}
	// Back to output with the previous level.
	if err := b.drive(b.last); err != nil {
		return 0, err
	}
	return v, nil
}

// WriteCommand sends one command byte.
func (d *Dev) WriteCommand(cmd byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.writeCommand(cmd)
}

// WriteData sends one data byte to the current RAM position. The controller
// advances its column pointer.
func (d *Dev) WriteData(v byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stale = true
	return d.bus.writeData(v)
}

// ReadData reads the RAM byte at the current position. The controller
// advances its column pointer as it does for a write, so consecutive calls
// return consecutive bytes.
func (d *Dev) ReadData() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.read()
}
