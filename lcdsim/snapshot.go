// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

// Snapshot is what the panel shows at one point in time.
type Snapshot struct {
	Rows int
	Cols int
	// Lines holds the visible characters of each row, after display shift.
	// Bytes outside printable ASCII read as '?'.
	Lines []string

	DisplayOn   bool
	CursorOn    bool
	BlinkOn     bool
	BacklightOn bool
	LeftToRight bool
	Autoscroll  bool
	TwoLine     bool
	LargeFont   bool
	FourBit     bool

	// Address is the DDRAM address counter.
	Address byte
	// CursorRow and CursorCol locate the address counter on the panel. Both
	// are -1 when the cursor is outside the visible window.
	CursorRow int
	CursorCol int
	// Shift is the display shift in characters, positive to the left.
	Shift int
}

// Snapshot returns the current panel contents and controller flags.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Rows:        c.rows,
		Cols:        c.cols,
		Lines:       make([]string, c.rows),
		DisplayOn:   c.displayOn,
		CursorOn:    c.cursorOn,
		BlinkOn:     c.blinkOn,
		BacklightOn: bool(c.levels[RoleBacklight]),
		LeftToRight: c.increment,
		Autoscroll:  c.shift,
		TwoLine:     c.twoLine,
		LargeFont:   c.largeFont,
		FourBit:     c.fourBit,
		Address:     c.ac,
		CursorRow:   -1,
		CursorCol:   -1,
		Shift:       c.offset,
	}
	for row := range c.rows {
		line := make([]byte, c.cols)
		for col := range c.cols {
			a := c.addr(row, col, c.offset)
			line[col] = printable(c.ddram[a])
			if a == c.ac && s.CursorRow < 0 {
				s.CursorRow = row
				s.CursorCol = col
			}
		}
		s.Lines[row] = string(line)
	}
	return s
}

func printable(b byte) byte {
	if b < 0x20 || b > 0x7e {
		return '?'
	}
	return b
}
