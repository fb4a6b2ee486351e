// Package ssd1305 controls a SSD1305 OLED display via its 8-bit parallel
// (8080) interface.
//
// The SSD1305 is a monochrome OLED controller supporting up to 132×64 pixels.
// This driver implements the display.Drawer interface from periph.io and adds
// a small text console on top of the controller's page addressing.
//
// # Display Characteristics
//
// - Monochrome, 1 bit per pixel
// - Display RAM organized in pages: one byte covers 8 vertical pixels of a column
// - Typical resolution 128×64 (8 pages of 128 columns)
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the SSD1305 display in 8080 parallel mode (BS1=1, BS2=1):
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC/VDD     → 3.3V
//	D0..D7      → 8 GPIO (one data bus)
//	CS#         → GPIO
//	D/C#        → GPIO
//	WR#         → GPIO
//	RD#         → GPIO
//	RES#        → GPIO
//
// SPI and I²C modes are not supported.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/flavioheleno/ssd1305"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		ctrl := ssd1305.ControlLines{
//			CS:  gpioreg.ByName("GPIO8"),
//			DC:  gpioreg.ByName("GPIO25"),
//			WR:  gpioreg.ByName("GPIO24"),
//			RD:  gpioreg.ByName("GPIO23"),
//			RES: gpioreg.ByName("GPIO18"),
//		}
//		var data ssd1305.DataBus
//		for i, name := range []string{"GPIO4", "GPIO5", "GPIO6", "GPIO12", "GPIO13", "GPIO16", "GPIO19", "GPIO20"} {
//			data[i] = gpioreg.ByName(name)
//		}
//
//		dev, _ := ssd1305.New(ctrl, data, nil)
//		defer dev.Halt()
//
//		fmt.Fprintf(dev.Console(), "Hello\nworld")
//	}
//
// # Text Output
//
// Text uses a 5×7 font with one blank column between glyphs, so a 128 pixel
// wide display holds 21 characters on each of its 8 lines. PutChar, PutString
// and the Console writer share one cursor. A newline or a full line moves the
// cursor to the next line and wraps from the last line to the first without
// scrolling. The character that overflows a full line is dropped:
//
//	dev.PutString("0123456789abcdefghijkX") // 'X' is not rendered
//
// # Drawing Modes
//
// ## Full-Frame Update
//
// Write sends raw page data, 8 vertical pixels per byte, page after page:
//
//	pixels := make([]byte, 128*64/8) // 1024 bytes for 128×64
//	// ... fill pixels ...
//	dev.Write(pixels)
//
// ## Differential Updates
//
// Draw keeps a copy of the last frame and only sends the changed columns of
// each changed page:
//
//	img := image1bit.NewVerticalLSB(dev.Bounds())
//	img.SetBit(10, 20, image1bit.On)
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// ## Pixels
//
// SetPixel and ClearPixel read the page byte back from the controller, change
// one bit and write it again.
//
// # Errors
//
// Coordinates outside the display are ignored: nothing is sent and the error
// wraps ErrOutOfBounds so callers can choose to check it. Write returns
// ErrSizeMismatch for buffers that are not exactly one frame.
//
// The parallel bus has no acknowledge, so a disconnected controller is not
// detected. Only GPIO errors are reported.
//
// # Concurrency
//
// Every method of Dev holds an internal lock while it drives the bus, so the
// two-step reposition and access sequences cannot interleave.
//
// # Testing
//
// Package ssd1305sim provides fake pins backed by a software model of the
// controller, to exercise the driver without hardware.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1305.pdf
package ssd1305
