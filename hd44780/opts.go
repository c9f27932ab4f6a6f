// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// BacklightFrequency is the PWM frequency used when Opts.BacklightPWM is set.
const BacklightFrequency = physic.KiloHertz

// Opts holds the construction time configuration of a display.
type Opts struct {
	// RS is the register select line. Low selects the instruction register,
	// High the data register.
	RS gpio.PinOut
	// E is the enable (strobe) line.
	E gpio.PinOut
	// Data holds the D4, D5, D6 and D7 lines, in that order.
	Data [4]gpio.PinOut

	// Cols and Rows describe the visible panel. Rows is 1 to 4.
	Cols int
	Rows int

	// Backlight is optional. If nil, SetBacklight returns ErrNoBacklight.
	Backlight gpio.PinOut
	// BacklightPWM drives the backlight through the pin's PWM output at full
	// or zero duty instead of a plain level. The backlight is still either on
	// or off.
	BacklightPWM bool
	// BacklightOn is the level the backlight is set to by New.
	BacklightOn bool

	// LargeFont selects 5x10 dot characters. The controller only supports it
	// on single line panels, so it is ignored when Rows > 1.
	LargeFont bool

	// Logger receives debug traces. Defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// DefaultOpts is a 16x2 display with the backlight on. Pins must still be
// filled in.
var DefaultOpts = Opts{
	Cols:        16,
	Rows:        2,
	BacklightOn: true,
}

func (o *Opts) validate() error {
	if o.RS == nil || o.E == nil {
		return fmt.Errorf("%w: RS and E pins are required", ErrInvalidOpts)
	}
	for ix, p := range o.Data {
		if p == nil {
			return fmt.Errorf("%w: data pin D%d is required", ErrInvalidOpts, ix+4)
		}
	}
	if o.Rows < 1 || o.Rows > len(rowOffsets) {
		return fmt.Errorf("%w: rows=%d, must be 1-%d", ErrInvalidOpts, o.Rows, len(rowOffsets))
	}
	if o.Cols < 1 || o.Cols > 40 {
		return fmt.Errorf("%w: cols=%d, must be 1-40", ErrInvalidOpts, o.Cols)
	}
	// The third and fourth rows start 20 bytes into the first two.
	if o.Rows > 2 && o.Cols > 20 {
		return fmt.Errorf("%w: cols=%d, a %d row panel has at most 20", ErrInvalidOpts, o.Cols, o.Rows)
	}
	return nil
}
