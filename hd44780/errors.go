// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"fmt"
	"strings"
)

const packageName = "hd44780"

var (
	// ErrInvalidOpts is returned by New when a required pin is missing or the
	// geometry is not one the controller can address.
	ErrInvalidOpts = errors.New("hd44780: invalid options")
	// ErrPinConfig is returned by New when a pin can't be configured as an
	// output. The driver is not usable.
	ErrPinConfig = errors.New("hd44780: pin configuration failed")
	// ErrOutOfRange is returned for a cursor position outside the display.
	ErrOutOfRange = errors.New("hd44780: position out of range")
	// ErrNoBacklight is returned by backlight operations when the driver was
	// built without a backlight pin.
	ErrNoBacklight = errors.New("hd44780: no backlight pin configured")
)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}
