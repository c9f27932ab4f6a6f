// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for the HD44780 character LCD driver and
// its supporting packages.
//
//   - hd44780 drives the controller over a 4-bit bus of GPIO pins.
//   - expander provides those pins from a PCF8574 or 74HC595 backpack.
//   - lcdsim emulates the controller for tests and previews.
//
// cmd/charlcd writes a message to a display from the command line.
package charlcd
