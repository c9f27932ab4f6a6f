// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 over a
// 4-bit parallel bus built from individual GPIO pins.
//
// The R/W line is expected to be tied low. The busy flag is never read, so
// every write waits a fixed settle time instead.
//
// A Dev is owned by a single goroutine. It keeps shadow copies of the
// controller registers and mutates them without locking; callers sharing a
// Dev must serialize access themselves.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Dev is an HD44780 display wired in 4-bit mode.
type Dev struct {
	rs        gpio.PinOut
	enable    gpio.PinOut
	data      [4]gpio.PinOut
	backlight *GPIOMonoBacklight
	rows      int
	cols      int

	// Always equal to the last value the controller accepted.
	function functionSet
	control  displayControl
	entry    entryMode

	log logrus.FieldLogger
}

// New configures the pins in opts as outputs, runs the controller
// initialization sequence and returns a cleared display with the cursor
// hidden.
func New(opts *Opts) (*Dev, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	lcd := &Dev{
		rs:     opts.RS,
		enable: opts.E,
		data:   opts.Data,
		rows:   opts.Rows,
		cols:   opts.Cols,
		log:    opts.Logger,
	}
	if lcd.log == nil {
		lcd.log = logrus.StandardLogger()
	}
	if opts.Backlight != nil {
		lcd.backlight = NewBacklight(opts.Backlight, opts.BacklightPWM)
	}
	if err := lcd.configurePins(opts.BacklightOn); err != nil {
		return nil, err
	}
	if err := lcd.init(opts.LargeFont); err != nil {
		return nil, err
	}
	lcd.log.WithFields(logrus.Fields{
		"rows":      lcd.rows,
		"cols":      lcd.cols,
		"backlight": lcd.backlight != nil,
		"function":  lcd.function,
		"control":   lcd.control,
		"entry":     lcd.entry,
	}).Debug("hd44780: initialized")
	return lcd, nil
}

func (lcd *Dev) configurePins(backlightOn bool) error {
	pins := append([]gpio.PinOut{lcd.rs, lcd.enable}, lcd.data[:]...)
	for _, p := range pins {
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPinConfig, p, err)
		}
	}
	if lcd.backlight != nil {
		if err := lcd.backlight.Set(backlightOn); err != nil {
			return fmt.Errorf("%w: backlight %s: %w", ErrPinConfig, lcd.backlight, err)
		}
	}
	return nil
}

func (lcd *Dev) init(largeFont bool) error {
	for _, b := range []byte{cmdBootstrap8, cmdBootstrap4} {
		if err := lcd.command(b); err != nil {
			return err
		}
	}
	lcd.function = functionSet{twoLine: lcd.rows > 1, largeFont: largeFont && lcd.rows == 1}
	lcd.control = displayControl{display: true}
	lcd.entry = entryMode{leftToRight: true}
	for _, b := range []byte{lcd.function.encode(), lcd.control.encode(), lcd.entry.encode()} {
		if err := lcd.command(b); err != nil {
			return err
		}
	}
	return lcd.Clear()
}

// Clear blanks the display and moves the cursor to the first position.
func (lcd *Dev) Clear() error {
	if err := lcd.command(cmdClear); err != nil {
		return err
	}
	time.Sleep(clearDelay)
	// Clear forces the controller back to left to right entry.
	if !lcd.entry.leftToRight {
		return lcd.command(lcd.entry.encode())
	}
	return nil
}

// Home moves the cursor to the first position and undoes any display shift.
func (lcd *Dev) Home() error {
	if err := lcd.command(cmdReturnHome); err != nil {
		return err
	}
	time.Sleep(clearDelay)
	return nil
}

// SetCursor moves the cursor to col, row, both counted from 0. A row past the
// bottom of the display is clamped to the last row. A column outside the
// display is an error.
func (lcd *Dev) SetCursor(col, row int) error {
	if row >= lcd.rows {
		row = lcd.rows - 1
	}
	if row < 0 || col < 0 || col >= lcd.cols {
		return fmt.Errorf("%w: SetCursor(%d, %d) on %dx%d", ErrOutOfRange, col, row, lcd.cols, lcd.rows)
	}
	return lcd.command(cmdSetDDRAMAddr | (rowOffsets[row] + byte(col)))
}

// ShowCursor shows or hides the underline cursor.
func (lcd *Dev) ShowCursor(show bool) error {
	c := lcd.control
	c.cursor = show
	return lcd.setControl(c)
}

// Blink turns the blinking block cursor on or off.
func (lcd *Dev) Blink(on bool) error {
	c := lcd.control
	c.blink = on
	return lcd.setControl(c)
}

// EnableDisplay turns the whole display on or off. The content is kept.
func (lcd *Dev) EnableDisplay(on bool) error {
	c := lcd.control
	c.display = on
	return lcd.setControl(c)
}

// MoveLeft shifts the display content one position to the left.
func (lcd *Dev) MoveLeft() error {
	return lcd.command(cmdShift | shiftDisplay)
}

// MoveRight shifts the display content one position to the right.
func (lcd *Dev) MoveRight() error {
	return lcd.command(cmdShift | shiftDisplay | shiftRight)
}

// SetLeftToRight makes text flow left to right from the cursor.
func (lcd *Dev) SetLeftToRight() error {
	e := lcd.entry
	e.leftToRight = true
	return lcd.setEntry(e)
}

// SetRightToLeft makes text flow right to left from the cursor.
func (lcd *Dev) SetRightToLeft() error {
	e := lcd.entry
	e.leftToRight = false
	return lcd.setEntry(e)
}

// Autoscroll makes the display shift with each character written, so the
// cursor stays put and text scrolls past it.
func (lcd *Dev) Autoscroll(on bool) error {
	e := lcd.entry
	e.shift = on
	return lcd.setEntry(e)
}

// SetBacklight turns the backlight on or off. It returns ErrNoBacklight if no
// backlight pin was configured.
func (lcd *Dev) SetBacklight(on bool) error {
	if lcd.backlight == nil {
		return ErrNoBacklight
	}
	return wrap(lcd.backlight.Set(on))
}

// Message writes text from the current cursor position. A '\n' moves to the
// start of the next row: column 0 for left to right text, the last column
// otherwise. Lines are not wrapped; characters past the last column go to
// controller memory outside the visible window.
func (lcd *Dev) Message(text string) error {
	line := 0
	for _, r := range text {
		if r == '\n' {
			line++
			col := 0
			if !lcd.entry.leftToRight {
				col = lcd.cols - 1
			}
			if err := lcd.SetCursor(col, line); err != nil {
				return err
			}
			continue
		}
		if err := lcd.writeData(charCode(r)); err != nil {
			return err
		}
	}
	return nil
}

func (lcd *Dev) setControl(c displayControl) error {
	if err := lcd.command(c.encode()); err != nil {
		return err
	}
	lcd.control = c
	return nil
}

func (lcd *Dev) setEntry(e entryMode) error {
	if err := lcd.command(e.encode()); err != nil {
		return err
	}
	lcd.entry = e
	return nil
}

func (lcd *Dev) writeData(b byte) error {
	return wrap(lcd.write(b, modeData))
}

// charCode maps r to the controller's 8-bit character ROM.
func charCode(r rune) byte {
	if r < 0 || r > 0xff {
		return '?'
	}
	return byte(r)
}
