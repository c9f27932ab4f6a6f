// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"github.com/GermanBionicSystems/charlcd/expander"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// PCF8574 port numbers on the common LCD1602/LCD2004 I²C backpack.
const (
	pcfRS        = 0
	pcfRW        = 1
	pcfEnable    = 2
	pcfBacklight = 3
	pcfD4        = 4
)

// 74HC595 outputs on the SPI side of the Adafruit I²C/SPI backpack. The data
// lines run in reverse order, D4 is output 6 and D7 is output 3.
const (
	hc595RS        = 1
	hc595Enable    = 2
	hc595D4        = 6
	hc595Backlight = 7
)

// NewPCF8574Backpack returns a display behind a PCF8574 I²C backpack.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// Most of these backpacks answer at 0x27, or 0x3f for the PCF8574A.
func NewPCF8574Backpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	port, err := expander.NewPCF8574(bus, address)
	if err != nil {
		return nil, err
	}
	// R/W is wired on this backpack. Hold it in write.
	if err := port.Pins[pcfRW].Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPinConfig, port.Pins[pcfRW], err)
	}
	opts := DefaultOpts
	opts.Rows = rows
	opts.Cols = cols
	opts.RS = port.Pins[pcfRS]
	opts.E = port.Pins[pcfEnable]
	opts.Backlight = port.Pins[pcfBacklight]
	for ix := range opts.Data {
		opts.Data[ix] = port.Pins[pcfD4+ix]
	}
	return New(&opts)
}

// NewAdafruitSPIBackpack returns a display behind the SPI side of the
// Adafruit I²C/SPI backpack, which uses a 74HC595 shift register.
//
// # Product Information
//
// https://www.adafruit.com/product/292
func NewAdafruitSPIBackpack(conn spi.Conn, rows, cols int) (*Dev, error) {
	port, err := expander.New74HC595(conn)
	if err != nil {
		return nil, err
	}
	opts := DefaultOpts
	opts.Rows = rows
	opts.Cols = cols
	opts.RS = port.Pins[hc595RS]
	opts.E = port.Pins[hc595Enable]
	opts.Backlight = port.Pins[hc595Backlight]
	for ix := range opts.Data {
		opts.Data[ix] = port.Pins[hc595D4-ix]
	}
	return New(&opts)
}
