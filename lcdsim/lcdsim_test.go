// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func nibble(t *testing.T, c *Controller, rs bool, n byte) {
	t.Helper()
	if err := c.RS().Out(gpio.Level(rs)); err != nil {
		t.Fatal(err)
	}
	for ix, p := range c.Data() {
		if err := p.Out(gpio.Level(n&(1<<ix) != 0)); err != nil {
			t.Fatal(err)
		}
	}
	_ = c.E().Out(gpio.High)
	_ = c.E().Out(gpio.Low)
}

func send(t *testing.T, c *Controller, rs bool, b byte) {
	t.Helper()
	nibble(t, c, rs, b>>4)
	nibble(t, c, rs, b&0x0f)
}

func text(t *testing.T, c *Controller, s string) {
	t.Helper()
	for _, b := range []byte(s) {
		send(t, c, true, b)
	}
}

// initialized returns a controller taken through the usual 4-bit
// initialization, with a fake clock so timing is never violated.
func initialized(t *testing.T, rows, cols int) *Controller {
	t.Helper()
	c := New(rows, cols)
	now := time.Unix(0, 0)
	c.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	for _, n := range []byte{3, 3, 3, 2} {
		nibble(t, c, false, n)
	}
	lines := byte(0x00)
	if rows > 1 {
		lines = 0x08
	}
	for _, b := range []byte{0x20 | lines, 0x0c, 0x06, 0x01} {
		send(t, c, false, b)
	}
	return c
}

func TestPowerOn(t *testing.T) {
	c := New(2, 16)
	s := c.Snapshot()
	if s.FourBit || s.DisplayOn || !s.LeftToRight {
		t.Errorf("power on state: %+v", s)
	}
	// In 8-bit mode a single strobe is a whole instruction.
	nibble(t, c, false, 0x2)
	if !c.Snapshot().FourBit {
		t.Error("function set didn't switch to 4-bit")
	}
}

func TestInit(t *testing.T) {
	c := initialized(t, 2, 16)
	text(t, c, "Hi")
	want := Snapshot{
		Rows:        2,
		Cols:        16,
		Lines:       []string{"Hi" + strings.Repeat(" ", 14), strings.Repeat(" ", 16)},
		DisplayOn:   true,
		LeftToRight: true,
		TwoLine:     true,
		FourBit:     true,
		Address:     2,
		CursorRow:   0,
		CursorCol:   2,
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := c.Text(); got != want.Lines[0]+"\n"+want.Lines[1] {
		t.Errorf("Text() = %q", got)
	}
}

func TestAddressWrap(t *testing.T) {
	c := initialized(t, 2, 16)
	send(t, c, false, 0x80|0x27)
	text(t, c, "ab")
	if c.CharAt(1, 0) != 'b' {
		t.Errorf("line 1 didn't continue on line 2: %q", c.CharAt(1, 0))
	}
	if got := c.Address(); got != 0x41 {
		t.Errorf("address = %#02x", got)
	}

	c = initialized(t, 1, 16)
	send(t, c, false, 0x80|79)
	text(t, c, "yz")
	if c.CharAt(0, 0) != 'z' || c.Address() != 1 {
		t.Errorf("1-line mode didn't wrap at 80: %q %d", c.CharAt(0, 0), c.Address())
	}
}

func TestFourRows(t *testing.T) {
	c := initialized(t, 4, 20)
	for row, a := range []byte{0x00, 0x40, 0x14, 0x54} {
		send(t, c, false, 0x80|a)
		text(t, c, string(rune('0'+row)))
	}
	for row := range 4 {
		if got := c.Snapshot().Lines[row][0]; got != byte('0'+row) {
			t.Errorf("row %d starts with %q", row, got)
		}
	}
}

func TestDisplayShift(t *testing.T) {
	c := initialized(t, 1, 4)
	text(t, c, "abcdef")
	send(t, c, false, 0x18)
	send(t, c, false, 0x18)
	s := c.Snapshot()
	if s.Lines[0] != "cdef" || s.Shift != 2 {
		t.Errorf("after shift left: %q shift=%d", s.Lines[0], s.Shift)
	}
	if s.CursorRow != -1 {
		t.Errorf("cursor at %d,%d, want hidden", s.CursorRow, s.CursorCol)
	}
	send(t, c, false, 0x1c)
	if got := c.Snapshot().Lines[0]; got != "bcde" {
		t.Errorf("after shift right: %q", got)
	}
	send(t, c, false, 0x02)
	if got := c.Snapshot().Lines[0]; got != "abcd" {
		t.Errorf("after home: %q", got)
	}
}

func TestEntryShift(t *testing.T) {
	c := initialized(t, 1, 4)
	send(t, c, false, 0x07)
	text(t, c, "abcdef")
	s := c.Snapshot()
	if s.Shift != 6 || !s.Autoscroll {
		t.Errorf("shift=%d autoscroll=%t", s.Shift, s.Autoscroll)
	}
	if s.Lines[0] != "    " {
		t.Errorf("line = %q", s.Lines[0])
	}
}

func TestClearResetsEntry(t *testing.T) {
	c := initialized(t, 2, 16)
	send(t, c, false, 0x04)
	if c.Snapshot().LeftToRight {
		t.Fatal("entry mode not applied")
	}
	send(t, c, false, 0x01)
	if !c.Snapshot().LeftToRight {
		t.Error("clear didn't reset the increment flag")
	}
}

func TestCGRAM(t *testing.T) {
	c := initialized(t, 2, 16)
	send(t, c, false, 0x40|0x08)
	for _, b := range []byte{0x1f, 0x11} {
		send(t, c, true, b)
	}
	send(t, c, false, 0x80)
	send(t, c, true, 0x01)
	cg := c.CGRAM()
	if cg[8] != 0x1f || cg[9] != 0x11 {
		t.Errorf("CGRAM = % x", cg[8:10])
	}
	if c.CharAt(0, 0) != 0x01 {
		t.Error("DDRAM write went to CGRAM")
	}
	if got := c.Snapshot().Lines[0][0]; got != '?' {
		t.Errorf("custom character shown as %q", got)
	}
}

func TestViolations(t *testing.T) {
	c := initialized(t, 2, 16)
	if v := c.Violations(); len(v) != 0 {
		t.Fatalf("violations during init: %v", v)
	}
	now := time.Unix(100, 0)
	c.now = func() time.Time { return now }
	send(t, c, false, 0x01)
	now = now.Add(time.Millisecond)
	send(t, c, false, 0x02)
	v := c.Violations()
	if len(v) != 1 {
		t.Fatalf("got %d violations", len(v))
	}
	if want := clearTime - time.Millisecond; v[0].Early != want {
		t.Errorf("early by %s, want %s", v[0].Early, want)
	}
}

func TestTrace(t *testing.T) {
	c := New(2, 16)
	_ = c.Backlight().Out(gpio.High)
	_ = c.E().Out(gpio.High)
	want := []Event{{Pin: RoleBacklight, Level: gpio.High}, {Pin: RoleE, Level: gpio.High}}
	if diff := cmp.Diff(want, c.Trace()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	c.ResetTrace()
	if len(c.Trace()) != 0 {
		t.Error("trace not reset")
	}
	if !c.Snapshot().BacklightOn {
		t.Error("backlight off")
	}
}

func TestPinError(t *testing.T) {
	c := New(2, 16)
	pinErr := errors.New("gpio: busy")
	c.E().Err = pinErr
	if err := c.E().Out(gpio.High); !errors.Is(err, pinErr) {
		t.Errorf("Out() = %v", err)
	}
	if len(c.Trace()) != 0 {
		t.Error("failed write reached the controller")
	}
	if c.E().Role() != RoleE || c.E().Name() != "LCD_E" {
		t.Errorf("pin %s role %s", c.E().Name(), c.E().Role())
	}
	if s := Role(42).String(); s != "Role(42)" {
		t.Errorf("String() = %q", s)
	}
}

func TestRenderPlain(t *testing.T) {
	c := initialized(t, 2, 4)
	text(t, c, "ok")
	var buf bytes.Buffer
	if err := NewPlainTerminal(&buf).Render(c.Snapshot()); err != nil {
		t.Fatal(err)
	}
	want := "+----+\n|ok  |\n|    |\n+----+\n"
	if got := buf.String(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	send(t, c, false, 0x08)
	if err := NewPlainTerminal(&buf).Render(c.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "ok") {
		t.Error("display off still shows text")
	}
}

func TestRenderColor(t *testing.T) {
	c := initialized(t, 1, 4)
	_ = c.Backlight().Out(gpio.High)
	send(t, c, false, 0x0f)
	text(t, c, "x")
	var buf bytes.Buffer
	term := NewPlainTerminal(&buf)
	term.color = true
	if err := term.Render(c.Snapshot()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{glassLit, blinkSGR, "x", resetSGR} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	c := initialized(t, 2, 16)
	_ = c.Backlight().Out(gpio.High)
	text(t, c, "Hello")
	var buf bytes.Buffer
	if err := RenderPNG(&buf, c.Snapshot()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 2*bezel+16*(cellW+cellGap)-cellGap || b.Dy() != 2*bezel+2*(cellH+cellGap)-cellGap {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}
}
