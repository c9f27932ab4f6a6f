// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// GPIOMonoBacklight turns a backlight on or off with a single GPIO pin.
type GPIOMonoBacklight struct {
	blPin gpio.PinOut
	pwm   bool
}

// NewBacklight returns a backlight driven by blPin. With pwm set, the pin is
// driven through PWM at full or zero duty rather than with a level.
func NewBacklight(blPin gpio.PinOut, pwm bool) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{blPin: blPin, pwm: pwm}
}

// Set turns the backlight on or off.
func (bl *GPIOMonoBacklight) Set(on bool) error {
	if bl.pwm {
		duty := gpio.Duty(0)
		if on {
			duty = gpio.DutyMax
		}
		return bl.blPin.PWM(duty, BacklightFrequency)
	}
	return bl.blPin.Out(gpio.Level(on))
}

// Backlight implements display.DisplayBacklight. Any non zero intensity is on.
func (bl *GPIOMonoBacklight) Backlight(intensity display.Intensity) error {
	return bl.Set(intensity > 0)
}

func (bl *GPIOMonoBacklight) String() string {
	return bl.blPin.String()
}

var _ display.DisplayBacklight = &GPIOMonoBacklight{}
