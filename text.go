package ssd1305

import "io"

// PutChar renders c at the text cursor.
//
// A newline, or a character that would not fit on the current line, moves
// the cursor to the start of the next line, wrapping from the last line back
// to the first without scrolling. The character that overflows the line is
// dropped and not rendered on the new line either.
//
// Characters the font does not cover render as a blank glyph.
func (d *Dev) PutChar(c byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.putChar(c)
}

// PutString renders s one byte at a time, exactly as repeated PutChar calls.
func (d *Dev) PutString(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < len(s); i++ {
		if err := d.putChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Console returns a writer rendering everything written to it as text, for
// use with fmt.Fprintf and friends.
func (d *Dev) Console() io.Writer {
	return console{d}
}

// Cursor returns the text cursor: the number of glyphs already written on
// the current line, and the line.
func (d *Dev) Cursor() (col, line int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.col, d.line
}

// Cols returns how many glyphs fit on a text line.
func (d *Dev) Cols() int {
	return d.cols
}

// Lines returns the number of text lines.
func (d *Dev) Lines() int {
	return d.pages
}

func (d *Dev) putChar(c byte) error {
	if c == '\n' || d.col+1 > d.cols {
		line := (d.line + 1) % d.pages
		if err := d.gotoLine(line); err != nil {
			return err
		}
		d.col, d.line = 0, line
		return nil
	}
	d.stale = true
	glyph, _ := d.font.Glyph(c)
	for _, b := range glyph {
		if err := d.bus.writeData(b); err != nil {
			return err
		}
	}
	// Spacing column.
	if err := d.bus.writeData(0x00); err != nil {
		return err
	}
	d.col++
	return nil
}

type console struct {
	d *Dev
}

func (c console) Write(p []byte) (int, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	for i, b := range p {
		if err := c.d.putChar(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}
