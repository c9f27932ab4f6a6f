// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Instruction opcodes. The low bits of each are the flags of the matching
// register below.
const (
	cmdClear          byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdShift          byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetDDRAMAddr   byte = 0x80

	// Written back to back in command mode, these leave the controller in 4-bit
	// mode whatever state it powered up in.
	cmdBootstrap8 byte = 0x33
	cmdBootstrap4 byte = 0x32
)

// Cursor/display shift flags.
const (
	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04
)

// rowOffsets are the DDRAM addresses of the first column of each row. Rows 2
// and 3 of a four line panel continue rows 0 and 1 of the controller.
var rowOffsets = [4]byte{0x00, 0x40, 0x14, 0x54}

// functionSet is the shadow of the function set register.
type functionSet struct {
	eightBit  bool
	twoLine   bool
	largeFont bool
}

func (f functionSet) encode() byte {
	v := cmdFunctionSet
	if f.eightBit {
		v |= 0x10
	}
	if f.twoLine {
		v |= 0x08
	}
	if f.largeFont {
		v |= 0x04
	}
	return v
}

func (f functionSet) String() string {
	return fmt.Sprintf("function{8bit:%t 2line:%t 5x10:%t}", f.eightBit, f.twoLine, f.largeFont)
}

// displayControl is the shadow of the display on/off control register.
type displayControl struct {
	display bool
	cursor  bool
	blink   bool
}

func (d displayControl) encode() byte {
	v := cmdDisplayControl
	if d.display {
		v |= 0x04
	}
	if d.cursor {
		v |= 0x02
	}
	if d.blink {
		v |= 0x01
	}
	return v
}

func (d displayControl) String() string {
	return fmt.Sprintf("control{display:%t cursor:%t blink:%t}", d.display, d.cursor, d.blink)
}

// entryMode is the shadow of the entry mode register. leftToRight is the I/D
// bit (address increments after a write), shift is the S bit (the display
// follows the cursor).
type entryMode struct {
	leftToRight bool
	shift       bool
}

func (e entryMode) encode() byte {
	v := cmdEntryModeSet
	if e.leftToRight {
		v |= 0x02
	}
	if e.shift {
		v |= 0x01
	}
	return v
}

func (e entryMode) String() string {
	return fmt.Sprintf("entry{ltr:%t shift:%t}", e.leftToRight, e.shift)
}
