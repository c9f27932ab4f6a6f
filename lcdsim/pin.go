// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// Role identifies which controller input a Pin is wired to.
type Role int

const (
	RoleRS Role = iota
	RoleE
	RoleD4
	RoleD5
	RoleD6
	RoleD7
	RoleBacklight

	numRoles
)

var roleNames = [numRoles]string{"RS", "E", "D4", "D5", "D6", "D7", "BL"}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Pin is a fake GPIO wired to one input of a Controller. Every successful Out
// is seen by the controller.
type Pin struct {
	gpiotest.Pin

	// Err, when set, is returned by Out and PWM without changing the level.
	Err error

	ctrl *Controller
	role Role
}

func newPin(c *Controller, role Role) *Pin {
	p := &Pin{ctrl: c, role: role}
	p.N = "LCD_" + role.String()
	p.Num = int(role)
	p.Fn = "Out"
	return p
}

// Role returns the controller input this pin drives.
func (p *Pin) Role() Role {
	return p.role
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if p.Err != nil {
		return p.Err
	}
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.ctrl.pinOut(p.role, l)
	return nil
}

// PWM implements gpio.PinOut. Any non zero duty reads as High.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	if p.Err != nil {
		return p.Err
	}
	if err := p.Pin.PWM(duty, f); err != nil {
		return err
	}
	p.ctrl.pinOut(p.role, gpio.Level(duty > 0))
	return nil
}

var _ gpio.PinIO = &Pin{}
