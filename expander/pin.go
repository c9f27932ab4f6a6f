// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package expander

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one output of an expander port. It satisfies gpio.PinIO so it can be
// registered in gpioreg, but input is not supported.
type Pin struct {
	dev    *Dev
	number int
	name   string
}

func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.PullNoChange
}

func (p *Pin) Function() string {
	return "Out"
}

// Halt is a no-op. Halt the Dev to release the bus.
func (p *Pin) Halt() error {
	return nil
}

// In returns ErrNotImplemented.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	return ErrNotImplemented
}

func (p *Pin) Name() string {
	return p.name
}

func (p *Pin) Number() int {
	return p.number
}

// Out sets the pin level, leaving the other pins of the port untouched.
func (p *Pin) Out(l gpio.Level) error {
	mask := byte(1) << p.number
	value := byte(0)
	if l {
		value = mask
	}
	return p.dev.write(value, mask)
}

func (p *Pin) Pull() gpio.Pull {
	return gpio.PullNoChange
}

// Read returns the level last written to the pin. The port is never read
// back from the chip.
func (p *Pin) Read() gpio.Level {
	return gpio.Level(p.dev.Value()&(1<<p.number) != 0)
}

// PWM is not available on these chips.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *Pin) String() string {
	return p.name
}

func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &Pin{}
