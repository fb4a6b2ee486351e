// Package font5x7 provides the 5x7 ASCII glyph table used for text output on
// page-addressed monochrome controllers such as the SSD1305.
//
// Each glyph is stored column by column. A column is one byte where bit 0 is
// the top pixel and bit 6 the bottom one, which is exactly the layout of a
// controller page byte, so glyph columns can be written to display RAM as-is.
//
// Memory layout example for the letter 'L':
//
//	Column:  0     1     2     3     4
//	Byte:    0x7F  0x40  0x40  0x40  0x40
//
//	bit 0    #
//	bit 1    #
//	bit 2    #
//	bit 3    #
//	bit 4    #
//	bit 5    #
//	bit 6    #     #     #     #     #
//
// Only printable ASCII (32 to 126) is covered. Glyphs are addressed by
// code - 32.
//
// Example usage:
//
//	cols, ok := font5x7.Default.Glyph('A')
//	if !ok {
//		// not printable
//	}
//	for _, c := range cols {
//		fmt.Printf("%08b\n", c)
//	}
package font5x7
