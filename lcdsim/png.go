// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Cell geometry of the rendered panel, in pixels.
const (
	cellW   = 20
	cellH   = 32
	cellGap = 2
	bezel   = 24
	glyphPt = 22
)

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func monoFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			faceErr = fmt.Errorf("lcdsim: %w", err)
			return
		}
		face = truetype.NewFace(f, &truetype.Options{Size: glyphPt, DPI: 72})
	})
	return face, faceErr
}

// RenderPNG draws s as a PNG image of the panel and writes it to w.
func RenderPNG(w io.Writer, s Snapshot) error {
	ff, err := monoFace()
	if err != nil {
		return err
	}
	width := 2*bezel + s.Cols*(cellW+cellGap) - cellGap
	height := 2*bezel + s.Rows*(cellH+cellGap) - cellGap
	dc := gg.NewContext(width, height)
	dc.SetHexColor("#1b2a8a")
	dc.Clear()

	glass, ink, dot := "#2b3a1a", "#1e2a12", "#34461f"
	if s.BacklightOn {
		glass, ink, dot = "#9bd13a", "#14200a", "#8cc031"
	}
	dc.SetHexColor(glass)
	dc.DrawRoundedRectangle(bezel/2, bezel/2, float64(width-bezel), float64(height-bezel), 6)
	dc.Fill()

	dc.SetFontFace(ff)
	lines := visibleLines(s)
	for row, l := range lines {
		for col := range len(l) {
			x := float64(bezel + col*(cellW+cellGap))
			y := float64(bezel + row*(cellH+cellGap))
			dc.SetHexColor(dot)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()
			if s.DisplayOn && row == s.CursorRow && col == s.CursorCol {
				if s.BlinkOn {
					dc.SetHexColor(ink)
					dc.DrawRectangle(x, y, cellW, cellH)
					dc.Fill()
				} else if s.CursorOn {
					dc.SetHexColor(ink)
					dc.DrawRectangle(x, y+cellH-3, cellW, 3)
					dc.Fill()
				}
			}
			if l[col] == ' ' {
				continue
			}
			dc.SetHexColor(ink)
			dc.DrawStringAnchored(string(l[col]), x+cellW/2, y+cellH/2, 0.5, 0.35)
		}
	}
	return dc.EncodePNG(w)
}
