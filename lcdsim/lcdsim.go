// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates an HD44780 character LCD controller attached to
// fake GPIO pins.
//
// The Controller watches its pins the way the real chip watches its inputs:
// data lines are latched on the falling edge of E, and RS selects the
// instruction or data register. It powers up in 8-bit interface mode and
// follows a function set into 4-bit mode, so a driver must run a correct
// initialization sequence before anything shows up.
//
// Useful to test a driver without hardware, and to preview a layout in the
// terminal or as a PNG while waiting for the panel to arrive.
package lcdsim

import (
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	ddramSize = 0x80
	cgramSize = 0x40

	// Characters per controller line.
	lineLen1 = 80
	lineLen2 = 40

	// Execution times at 270kHz. Clear and Home are the only slow ones.
	execTime  = 37 * time.Microsecond
	clearTime = 1520 * time.Microsecond
)

var rowOffsets = [4]byte{0x00, 0x40, 0x14, 0x54}

// Event is one pin change seen by the controller.
type Event struct {
	Pin   Role
	Level gpio.Level
}

// Violation is a strobe that arrived while the controller was still
// executing a previous instruction.
type Violation struct {
	At    time.Time
	Early time.Duration
}

// Controller is an emulated HD44780.
type Controller struct {
	rows int
	cols int
	pins [numRoles]*Pin

	mu     sync.Mutex
	levels [numRoles]gpio.Level
	now    func() time.Time

	fourBit bool
	pending bool
	high    byte

	ddram  [ddramSize]byte
	cgram  [cgramSize]byte
	ac     byte
	cgAddr byte
	cgMode bool
	offset int

	increment bool
	shift     bool
	displayOn bool
	cursorOn  bool
	blinkOn   bool
	twoLine   bool
	largeFont bool

	busyUntil  time.Time
	trace      []Event
	violations []Violation
}

// New returns a controller in its power on state driving a rows x cols
// panel. rows must be 1 to 4.
func New(rows, cols int) *Controller {
	c := &Controller{rows: rows, cols: cols, now: time.Now, increment: true}
	for r := range numRoles {
		c.pins[r] = newPin(c, r)
	}
	for ix := range c.ddram {
		c.ddram[ix] = ' '
	}
	return c
}

// RS returns the register select input.
func (c *Controller) RS() *Pin { return c.pins[RoleRS] }

// E returns the enable input.
func (c *Controller) E() *Pin { return c.pins[RoleE] }

// Backlight returns the backlight LED input.
func (c *Controller) Backlight() *Pin { return c.pins[RoleBacklight] }

// Data returns D4, D5, D6 and D7.
func (c *Controller) Data() [4]gpio.PinOut {
	return [4]gpio.PinOut{c.pins[RoleD4], c.pins[RoleD5], c.pins[RoleD6], c.pins[RoleD7]}
}

// Pin returns the pin wired to role.
func (c *Controller) Pin(role Role) *Pin {
	return c.pins[role]
}

// Trace returns the pin changes seen since New or the last ResetTrace.
func (c *Controller) Trace() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.trace...)
}

// ResetTrace discards the recorded pin changes.
func (c *Controller) ResetTrace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trace = nil
}

// Violations returns the strobes received while the controller was busy.
// Timing is only checked once the controller is in 4-bit mode.
func (c *Controller) Violations() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Violation(nil), c.violations...)
}

// Address returns the address counter.
func (c *Controller) Address() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ac
}

// CharAt returns the DDRAM byte at row, col ignoring any display shift.
func (c *Controller) CharAt(row, col int) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ddram[c.addr(row, col, 0)]
}

// CGRAM returns a copy of the character generator RAM.
func (c *Controller) CGRAM() [cgramSize]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cgram
}

// Text returns the visible rows joined by '\n'.
func (c *Controller) Text() string {
	return strings.Join(c.Snapshot().Lines, "\n")
}

func (c *Controller) pinOut(role Role, l gpio.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.levels[role]
	c.levels[role] = l
	c.trace = append(c.trace, Event{Pin: role, Level: l})
	if role == RoleE && prev == gpio.High && l == gpio.Low {
		c.strobe()
	}
}

// strobe latches D4-D7 on the falling edge of E.
func (c *Controller) strobe() {
	var nibble byte
	for ix := range 4 {
		if c.levels[RoleD4+Role(ix)] {
			nibble |= 1 << ix
		}
	}
	rs := bool(c.levels[RoleRS])
	if !c.fourBit {
		// D0-D3 are not connected and read as 0.
		c.execute(rs, nibble<<4)
		return
	}
	if !c.pending {
		c.high = nibble
		c.pending = true
		return
	}
	c.pending = false
	if now := c.now(); now.Before(c.busyUntil) {
		c.violations = append(c.violations, Violation{At: now, Early: c.busyUntil.Sub(now)})
	}
	c.execute(rs, c.high<<4|nibble)
}

func (c *Controller) execute(rs bool, v byte) {
	d := execTime
	switch {
	case rs:
		c.writeData(v)
	case v&0x80 != 0:
		c.ac = v & 0x7f
		c.cgMode = false
	case v&0x40 != 0:
		c.cgAddr = v & 0x3f
		c.cgMode = true
	case v&0x20 != 0:
		c.fourBit = v&0x10 == 0
		c.twoLine = v&0x08 != 0
		c.largeFont = v&0x04 != 0
		c.pending = false
	case v&0x10 != 0:
		right := v&0x04 != 0
		if v&0x08 != 0 {
			if right {
				c.offset--
			} else {
				c.offset++
			}
		} else {
			c.ac = c.step(c.ac, right)
		}
	case v&0x08 != 0:
		c.displayOn = v&0x04 != 0
		c.cursorOn = v&0x02 != 0
		c.blinkOn = v&0x01 != 0
	case v&0x04 != 0:
		c.increment = v&0x02 != 0
		c.shift = v&0x01 != 0
	case v&0x02 != 0:
		c.ac = 0
		c.offset = 0
		c.cgMode = false
		d = clearTime
	case v&0x01 != 0:
		for ix := range c.ddram {
			c.ddram[ix] = ' '
		}
		c.ac = 0
		c.offset = 0
		c.cgMode = false
		c.increment = true
		d = clearTime
	}
	if c.fourBit {
		c.busyUntil = c.now().Add(d)
	}
}

func (c *Controller) writeData(v byte) {
	if c.cgMode {
		c.cgram[c.cgAddr] = v
		if c.increment {
			c.cgAddr = (c.cgAddr + 1) % cgramSize
		} else {
			c.cgAddr = (c.cgAddr + cgramSize - 1) % cgramSize
		}
		return
	}
	c.ddram[c.ac] = v
	c.ac = c.step(c.ac, c.increment)
	if c.shift {
		if c.increment {
			c.offset++
		} else {
			c.offset--
		}
	}
}

// step moves a DDRAM address one position. In 2-line mode the end of the
// first line continues at the start of the second and the other way around.
func (c *Controller) step(a byte, forward bool) byte {
	if !c.twoLine {
		p := int(a) % lineLen1
		if forward {
			return byte((p + 1) % lineLen1)
		}
		return byte((p + lineLen1 - 1) % lineLen1)
	}
	line := a & 0x40
	p := int(a&0x3f) % lineLen2
	if forward {
		p++
		if p == lineLen2 {
			p = 0
			line ^= 0x40
		}
	} else {
		p--
		if p < 0 {
			p = lineLen2 - 1
			line ^= 0x40
		}
	}
	return line | byte(p)
}

// addr returns the DDRAM address shown at row, col for a display shifted by
// offset.
func (c *Controller) addr(row, col, offset int) byte {
	base := rowOffsets[row]
	if !c.twoLine {
		return byte(mod(int(base)+col+offset, lineLen1))
	}
	line := base & 0x40
	return line | byte(mod(int(base&^0x40)+col+offset, lineLen2))
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
