// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expander provides output pins on the 8-bit port expanders found on
// character LCD backpacks.
//
// Two chips are supported:
//
//   - PCF8574, an I²C quasi-bidirectional port. Writing a byte sets the 8
//     pins. Used on the common "LCD1602/LCD2004 I²C" backpacks.
//   - 74HC595, a serial to parallel shift register. Used on the SPI side of
//     the Adafruit I²C/SPI backpack.
//
// Only output is implemented. Every pin change is one bus transaction, so an
// LCD driven through an expander is much slower than one on native GPIO.
//
// # Datasheets
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// https://www.nexperia.com/product/74HC595D
package expander

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

const (
	packageName = "expander"
	numPins     = 8

	// PCF8574DefaultAddress is the address with A0-A2 pulled low. Most LCD
	// backpacks ship at 0x27 (all high) instead.
	PCF8574DefaultAddress uint16 = 0x20
)

var ErrNotImplemented = errors.New("expander: not implemented")

// Dev is an 8 pin output port.
type Dev struct {
	// Pins are the port outputs, indexed by pin number. They are registered
	// in gpioreg as <name>_GPO<n> until Halt.
	Pins []gpio.PinIO

	name string

	mu     sync.Mutex
	c      conn.Conn
	value  byte
	synced bool
}

// NewPCF8574 returns the port of a PCF8574 at address on bus.
func NewPCF8574(bus i2c.Bus, address uint16) (*Dev, error) {
	if bus == nil {
		return nil, fmt.Errorf("%s: nil i2c bus", packageName)
	}
	return newDev(fmt.Sprintf("PCF8574_%x", address), &i2c.Dev{Bus: bus, Addr: address}), nil
}

// New74HC595 returns the port of a 74HC595 behind c. The latch (RCLK) must be
// wired to the chip select line.
func New74HC595(c spi.Conn) (*Dev, error) {
	if c == nil {
		return nil, fmt.Errorf("%s: nil spi connection", packageName)
	}
	return newDev("74HC595", c), nil
}

func newDev(name string, c conn.Conn) *Dev {
	dev := &Dev{name: name, c: c, Pins: make([]gpio.PinIO, numPins)}
	for ix := range numPins {
		dev.Pins[ix] = &Pin{dev: dev, number: ix, name: fmt.Sprintf("%s_GPO%d", name, ix)}
		_ = gpioreg.Register(dev.Pins[ix])
	}
	return dev
}

// write updates the pins selected by mask. Nothing is sent when the port
// already holds the result, except for the very first write.
func (dev *Dev) write(value, mask byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.c == nil {
		return fmt.Errorf("%s: %s is halted", packageName, dev.name)
	}
	newValue := (dev.value &^ mask) | (value & mask)
	if dev.synced && newValue == dev.value {
		return nil
	}
	if err := dev.c.Tx([]byte{newValue}, nil); err != nil {
		return wrap(err)
	}
	dev.value = newValue
	dev.synced = true
	return nil
}

// Value returns the last byte written to the port.
func (dev *Dev) Value() byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Halt releases the bus and unregisters the pins. The pins can't be used
// afterward.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.c == nil {
		return nil
	}
	dev.c = nil
	for _, p := range dev.Pins {
		if gpioreg.ByName(p.Name()) == p {
			_ = gpioreg.Unregister(p.Name())
		}
	}
	return nil
}

func (dev *Dev) String() string {
	return dev.name
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

var _ conn.Resource = &Dev{}
