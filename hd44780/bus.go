// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type writeMode bool

const (
	modeCommand writeMode = false
	modeData    writeMode = true
)

const (
	// settleDelay precedes every byte. Without the busy flag (R/W is not
	// wired) this covers the slowest regular instruction.
	settleDelay = time.Millisecond
	// pulseDelay separates the edges of the enable strobe. The controller
	// needs at least 450ns of E high.
	pulseDelay = time.Microsecond
	// clearDelay follows Clear and Home, which take 1.52ms on the controller.
	clearDelay = 3 * time.Millisecond
)

// write sends value as two nibbles, high first. mode selects the register.
func (lcd *Dev) write(value byte, mode writeMode) error {
	time.Sleep(settleDelay)
	if err := lcd.rs.Out(gpio.Level(mode)); err != nil {
		return err
	}
	if err := lcd.writeNibble(value >> 4); err != nil {
		return err
	}
	return lcd.writeNibble(value & 0x0f)
}

// writeNibble presents the low 4 bits of value on D4-D7 and latches them.
func (lcd *Dev) writeNibble(value byte) error {
	for ix, p := range lcd.data {
		if err := p.Out(gpio.Level(value&(1<<ix) != 0)); err != nil {
			return err
		}
	}
	return lcd.pulseEnable()
}

// pulseEnable drives E low, high, then low again. The controller latches the
// data lines on the falling edge.
func (lcd *Dev) pulseEnable() error {
	for _, l := range []gpio.Level{gpio.Low, gpio.High, gpio.Low} {
		if err := lcd.enable.Out(l); err != nil {
			return err
		}
		time.Sleep(pulseDelay)
	}
	return nil
}

func (lcd *Dev) command(value byte) error {
	lcd.log.WithField("cmd", fmt.Sprintf("%#02x", value)).Debug("hd44780: command")
	return wrap(lcd.write(value, modeCommand))
}
