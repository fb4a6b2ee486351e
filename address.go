package ssd1305

import (
	"fmt"
	"image"
)

// GotoPixel points the controller at column x of the page holding row y.
// Subsequent data bytes fill that page from x rightwards and then continue at
// column x of the next page.
//
// Coordinates outside the display return an error wrapping ErrOutOfBounds
// and send nothing.
func (d *Dev) GotoPixel(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gotoPixel(x, y)
}

// GotoLine points the controller at the first column of text line line and
// moves the text cursor there.
//
// Lines outside 0..H/8-1 return an error wrapping ErrOutOfBounds, leave the
// cursor unchanged and send nothing.
func (d *Dev) GotoLine(line int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gotoLine(line); err != nil {
		return err
	}
	d.col, d.line = 0, line
	return nil
}

func (d *Dev) gotoPixel(x, y int) error {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return fmt.Errorf("%w: pixel (%d, %d)", ErrOutOfBounds, x, y)
	}
	return d.bus.writeCommands(
		cmdSetColumnAddress, byte(x), byte(d.rect.Dx()-1),
		cmdSetPageStart|byte(y/8),
	)
}

func (d *Dev) gotoLine(line int) error {
	if line < 0 || line >= d.pages {
		return fmt.Errorf("%w: line %d", ErrOutOfBounds, line)
	}
	return d.gotoPixel(0, line*8)
}
