// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// charlcd writes a message to an HD44780 character LCD.
//
// The display is wired to GPIOs by default:
//
//	charlcd -rs GPIO27 -e GPIO22 -d4 GPIO25 -d5 GPIO24 -d6 GPIO23 -d7 GPIO18 -msg 'Hello\nWorld'
//
// or sits behind a backpack:
//
//	charlcd -i2c 1 -addr 0x27 -rows 4 -cols 20 -msg 'Hello'
//	charlcd -spi SPI0.0 -msg 'Hello'
//
// With -sim no hardware is used. The message is sent to an emulated controller
// which is printed to the terminal, and optionally saved as a PNG image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/lcdsim"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	rsPin   = flag.String("rs", "GPIO27", "register select pin")
	ePin    = flag.String("e", "GPIO22", "enable pin")
	d4Pin   = flag.String("d4", "GPIO25", "D4 pin")
	d5Pin   = flag.String("d5", "GPIO24", "D5 pin")
	d6Pin   = flag.String("d6", "GPIO23", "D6 pin")
	d7Pin   = flag.String("d7", "GPIO18", "D7 pin")
	blPin   = flag.String("bl", "", "backlight pin, none if empty")
	cols    = flag.Int("cols", 16, "number of columns")
	rows    = flag.Int("rows", 2, "number of rows")
	light   = flag.Bool("backlight", true, "turn the backlight on")
	pwm     = flag.Bool("pwm", false, "drive the backlight pin through PWM")
	msg     = flag.String("msg", `Hello\nWorld`, "message to show, \\n starts a new row")
	cursor  = flag.Bool("cursor", false, "show the underline cursor")
	blink   = flag.Bool("blink", false, "show the blinking block cursor")
	rtl     = flag.Bool("rtl", false, "write right to left from the last column")
	scroll  = flag.Bool("autoscroll", false, "shift the display with each character")
	i2cName = flag.String("i2c", "", "I²C bus of a PCF8574 backpack")
	i2cAddr = flag.Uint("addr", 0x27, "I²C address of the PCF8574 backpack")
	spiName = flag.String("spi", "", "SPI port of a 74HC595 backpack")
	sim     = flag.Bool("sim", false, "use an emulated display printed to the terminal")
	pngPath = flag.String("png", "", "with -sim, also save the display as a PNG image")
	verbose = flag.Bool("v", false, "log every command sent to the controller")
)

func main() {
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := mainImpl(); err != nil {
		logrus.Fatal(err)
	}
}

func mainImpl() error {
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if *pngPath != "" && !*sim {
		return errors.New("-png requires -sim")
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var ctrl *lcdsim.Controller
	var lcd *hd44780.Dev
	var err error
	switch {
	case *sim:
		ctrl = lcdsim.New(*rows, *cols)
		opts := options()
		opts.RS, opts.E, opts.Data, opts.Backlight = ctrl.RS(), ctrl.E(), ctrl.Data(), ctrl.Backlight()
		lcd, err = hd44780.New(&opts)
	case set["i2c"]:
		if _, err = host.Init(); err != nil {
			return err
		}
		var bus i2c.BusCloser
		if bus, err = i2creg.Open(*i2cName); err != nil {
			return err
		}
		defer bus.Close()
		if lcd, err = hd44780.NewPCF8574Backpack(bus, uint16(*i2cAddr), *rows, *cols); err == nil {
			err = lcd.SetBacklight(*light)
		}
	case set["spi"]:
		if _, err = host.Init(); err != nil {
			return err
		}
		var port spi.PortCloser
		if port, err = spireg.Open(*spiName); err != nil {
			return err
		}
		defer port.Close()
		var c spi.Conn
		if c, err = port.Connect(physic.MegaHertz, spi.Mode0, 8); err != nil {
			return err
		}
		if lcd, err = hd44780.NewAdafruitSPIBackpack(c, *rows, *cols); err == nil {
			err = lcd.SetBacklight(*light)
		}
	default:
		if _, err = host.Init(); err != nil {
			return err
		}
		opts := options()
		if err = gpioPins(&opts); err != nil {
			return err
		}
		lcd, err = hd44780.New(&opts)
	}
	if err != nil {
		return err
	}
	logrus.WithField("lcd", lcd).Debug("charlcd: display ready")

	if err := show(lcd); err != nil {
		return err
	}
	if ctrl == nil {
		return nil
	}
	if err := lcdsim.NewTerminal(os.Stdout).Render(ctrl.Snapshot()); err != nil {
		return err
	}
	if *pngPath != "" {
		return savePNG(*pngPath, ctrl.Snapshot())
	}
	return nil
}

func options() hd44780.Opts {
	opts := hd44780.DefaultOpts
	opts.Rows = *rows
	opts.Cols = *cols
	opts.BacklightOn = *light
	opts.BacklightPWM = *pwm
	opts.Logger = logrus.StandardLogger()
	return opts
}

func gpioPins(opts *hd44780.Opts) error {
	byName := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no pin named %q", name)
		}
		return p, nil
	}
	var err error
	if opts.RS, err = byName(*rsPin); err != nil {
		return err
	}
	if opts.E, err = byName(*ePin); err != nil {
		return err
	}
	for ix, name := range []string{*d4Pin, *d5Pin, *d6Pin, *d7Pin} {
		if opts.Data[ix], err = byName(name); err != nil {
			return err
		}
	}
	if *blPin != "" {
		if opts.Backlight, err = byName(*blPin); err != nil {
			return err
		}
	}
	return nil
}

func show(lcd *hd44780.Dev) error {
	if *rtl {
		if err := lcd.SetRightToLeft(); err != nil {
			return err
		}
		if err := lcd.SetCursor(lcd.Cols()-1, 0); err != nil {
			return err
		}
	}
	if *scroll {
		if err := lcd.Autoscroll(true); err != nil {
			return err
		}
	}
	if err := lcd.ShowCursor(*cursor); err != nil {
		return err
	}
	if err := lcd.Blink(*blink); err != nil {
		return err
	}
	return lcd.Message(strings.ReplaceAll(*msg, `\n`, "\n"))
}

func savePNG(path string, s lcdsim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lcdsim.RenderPNG(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
