// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var bezelColor = color.NRGBA{0x20, 0x30, 0x90, 0xff}

// SGR sequences for the glass, lit and unlit.
const (
	glassLit   = "\033[38;5;232;48;5;112m"
	glassUnlit = "\033[38;5;22;48;5;236m"
	cursorSGR  = "\033[4m"
	blinkSGR   = "\033[7m"
	resetSGR   = "\033[0m"
)

// Terminal prints snapshots of a panel to a console.
type Terminal struct {
	w       io.Writer
	color   bool
	palette ansi256.Palette

	buf bytes.Buffer
}

// NewTerminal returns a Terminal writing to f. Colors are only emitted when f
// is a terminal.
func NewTerminal(f *os.File) *Terminal {
	fd := f.Fd()
	return &Terminal{
		w:       colorable.NewColorable(f),
		color:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		palette: *ansi256.Default,
	}
}

// NewPlainTerminal returns a Terminal writing to w without any escape
// sequence.
func NewPlainTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, palette: *ansi256.Default}
}

// Render draws s framed by a bezel.
func (t *Terminal) Render(s Snapshot) error {
	t.buf.Reset()
	if !t.color {
		t.renderPlain(s)
	} else {
		t.renderColor(s)
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}

func (t *Terminal) renderPlain(s Snapshot) {
	edge := "+" + strings.Repeat("-", s.Cols) + "+\n"
	_, _ = t.buf.WriteString(edge)
	for _, l := range visibleLines(s) {
		_, _ = t.buf.WriteString("|")
		_, _ = t.buf.WriteString(l)
		_, _ = t.buf.WriteString("|\n")
	}
	_, _ = t.buf.WriteString(edge)
}

func (t *Terminal) renderColor(s Snapshot) {
	block := t.palette.Block(bezelColor)
	edge := strings.Repeat(block, s.Cols+2) + resetSGR + "\n"
	glass := glassUnlit
	if s.BacklightOn {
		glass = glassLit
	}
	_, _ = t.buf.WriteString(edge)
	for row, l := range visibleLines(s) {
		_, _ = t.buf.WriteString(block)
		_, _ = t.buf.WriteString(glass)
		for col := range len(l) {
			if s.DisplayOn && row == s.CursorRow && col == s.CursorCol && (s.CursorOn || s.BlinkOn) {
				sgr := cursorSGR
				if s.BlinkOn {
					sgr = blinkSGR
				}
				_, _ = t.buf.WriteString(sgr)
				_ = t.buf.WriteByte(l[col])
				_, _ = t.buf.WriteString(resetSGR + glass)
				continue
			}
			_ = t.buf.WriteByte(l[col])
		}
		_, _ = t.buf.WriteString(resetSGR)
		_, _ = t.buf.WriteString(block)
		_, _ = t.buf.WriteString(resetSGR + "\n")
	}
	_, _ = t.buf.WriteString(edge)
}

// visibleLines returns the rows as the viewer sees them. A panel with its
// display turned off shows blank glass.
func visibleLines(s Snapshot) []string {
	if s.DisplayOn {
		return s.Lines
	}
	out := make([]string, len(s.Lines))
	for ix := range out {
		out[ix] = strings.Repeat(" ", s.Cols)
	}
	return out
}
