// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/display/displaytest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// This example drives a 16x2 display wired to Raspberry Pi GPIOs, with the
// same pinout as the Adafruit character LCD tutorial.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	pin := func(name string) gpio.PinOut {
		p := gpioreg.ByName(name)
		if p == nil {
			log.Fatalf("no pin %s", name)
		}
		return p
	}
	opts := hd44780.DefaultOpts
	opts.RS = pin("GPIO27")
	opts.E = pin("GPIO22")
	opts.Data = [4]gpio.PinOut{pin("GPIO25"), pin("GPIO24"), pin("GPIO23"), pin("GPIO18")}
	opts.Backlight = pin("GPIO4")
	lcd, err := hd44780.New(&opts)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lcd.Halt() }()

	if err := lcd.Message("Hello\nWorld"); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)

	_ = lcd.Clear()
	_ = lcd.ShowCursor(true)
	_ = lcd.Blink(true)
	_ = lcd.Message("cursor")
	time.Sleep(5 * time.Second)

	_ = lcd.Clear()
	_ = lcd.SetRightToLeft()
	_ = lcd.SetCursor(15, 0)
	_ = lcd.Message("right to left")
	time.Sleep(5 * time.Second)

	errs := displaytest.TestTextDisplay(lcd, true)
	for _, e := range errs {
		if !errors.Is(e, display.ErrNotImplemented) {
			log.Println(e)
		}
	}
}

// Create a display behind the usual PCF8574 I²C backpack.
func ExampleNewPCF8574Backpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()
	dev, err := hd44780.NewPCF8574Backpack(bus, 0x27, 4, 20)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(dev.String())
	for range 5 {
		_ = dev.Backlight(0)
		time.Sleep(500 * time.Millisecond)
		_ = dev.Backlight(255)
		time.Sleep(500 * time.Millisecond)
	}
	_ = dev.Clear()
	_, _ = dev.WriteString("Hello")
}

func ExampleNewAdafruitSPIBackpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	pc, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer pc.Close()
	conn, err := pc.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := hd44780.NewAdafruitSPIBackpack(conn, 2, 16)
	if err != nil {
		log.Fatal(err)
	}
	_ = dev.Clear()
	_, _ = dev.WriteString("Hello")
}
