// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// AutoScroll implements display.TextDisplay. See Autoscroll.
func (lcd *Dev) AutoScroll(enabled bool) error {
	return lcd.Autoscroll(enabled)
}

// Return the number of columns the display supports
func (lcd *Dev) Cols() int {
	return lcd.cols
}

// Return the number of rows the display supports.
func (lcd *Dev) Rows() int {
	return lcd.rows
}

// Return the min column position.
func (lcd *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (lcd *Dev) MinRow() int {
	return 1
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
//
// The controller has an underline cursor and a blinking block, which can be
// shown together. CursorBlock and CursorBlink both select the blinking block.
func (lcd *Dev) Cursor(modes ...display.CursorMode) error {
	c := lcd.control
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			c.cursor = false
			c.blink = false
		case display.CursorUnderline:
			c.cursor = true
		case display.CursorBlock, display.CursorBlink:
			c.blink = true
		default:
			return fmt.Errorf("%s: cursor mode %d: %w", packageName, mode, display.ErrInvalidCommand)
		}
	}
	return lcd.setControl(c)
}

// Turn the display on / off
func (lcd *Dev) Display(on bool) error {
	return lcd.EnableDisplay(on)
}

// Move the cursor forward or backward. The display does not shift; see
// MoveLeft and MoveRight for that.
func (lcd *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		return lcd.command(cmdShift)
	case display.Forward:
		return lcd.command(cmdShift | shiftRight)
	case display.Down, display.Up:
		return fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
	default:
		return fmt.Errorf("%s: cursor direction %d: %w", packageName, dir, display.ErrInvalidCommand)
	}
}

// MoveTo moves the cursor to row, col counted from MinRow() and MinCol().
// Unlike SetCursor, rows are not clamped.
func (lcd *Dev) MoveTo(row, col int) error {
	if row < lcd.MinRow() || row > lcd.rows || col < lcd.MinCol() || col > lcd.cols {
		return fmt.Errorf("%w: MoveTo(%d, %d) on %dx%d", ErrOutOfRange, row, col, lcd.rows, lcd.cols)
	}
	return lcd.SetCursor(col-lcd.MinCol(), row-lcd.MinRow())
}

// Write sends p as character data at the current cursor position. Bytes are
// not interpreted, so '\n' prints the controller's glyph for 0x0a.
func (lcd *Dev) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if err = lcd.writeData(b); err != nil {
			return
		}
		n++
	}
	return
}

// Write a string output to the display. Runes outside the character ROM are
// replaced by '?'.
func (lcd *Dev) WriteString(text string) (int, error) {
	n := 0
	for _, r := range text {
		if err := lcd.writeData(charCode(r)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Backlight implements display.DisplayBacklight. Any non zero intensity turns
// the backlight on.
func (lcd *Dev) Backlight(intensity display.Intensity) error {
	return lcd.SetBacklight(intensity > 0)
}

// Halt clears the display, turns it off, and turns the backlight off if there
// is one.
func (lcd *Dev) Halt() error {
	err := lcd.Clear()
	if e := lcd.EnableDisplay(false); err == nil {
		err = e
	}
	if lcd.backlight != nil {
		if e := lcd.SetBacklight(false); err == nil {
			err = e
		}
	}
	return err
}

func (lcd *Dev) String() string {
	return fmt.Sprintf("HD44780::%s - Rows: %d, Cols: %d", lcd.rs, lcd.rows, lcd.cols)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
