package ssd1305

// ClearPixel turns off the pixel at (x, y), keeping the other 7 pixels of
// its page byte.
//
// It is a read-modify-write of display RAM. Coordinates outside the display
// return an error wrapping ErrOutOfBounds and send nothing.
func (d *Dev) ClearPixel(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modifyPixel(x, y, false)
}

// SetPixel turns on the pixel at (x, y). See ClearPixel.
func (d *Dev) SetPixel(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modifyPixel(x, y, true)
}

func (d *Dev) modifyPixel(x, y int, on bool) error {
	if err := d.gotoPixel(x, y); err != nil {
		return err
	}
	v, err := d.bus.read()
	if err != nil {
		return err
	}
	// The read moved the pointer one column on.
	if err := d.gotoPixel(x, y); err != nil {
		return err
	}
	mask := byte(1) << uint(y%8)
	if on {
		v |= mask
	} else {
		v &^= mask
	}
	if err := d.bus.writeData(v); err != nil {
		return err
	}
	i := y/8*d.rect.Dx() + x
	d.buffer[i] = v
	if d.next != nil {
		d.next.Pix[i] = v
	}
	return nil
}
