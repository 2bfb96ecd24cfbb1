// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Bond selects the masonry layout rule used to place bricks.
type Bond uint8

const (
	// BondRunning places bricks on a plain grid (continuous bond).
	BondRunning Bond = iota

	// BondGrid is the stack bond: the running layout with no mortar gap.
	BondGrid

	// BondCross shifts every odd row by half a brick.
	BondCross

	// BondThirds shifts each row by a further third of a brick,
	// repeating every three rows.
	BondThirds
)

var bondNames = [...]string{
	BondRunning: "running",
	BondGrid:    "grid",
	BondCross:   "cross",
	BondThirds:  "thirds",
}

// String returns the bond name.
func (b Bond) String() string {
	if int(b) < len(bondNames) {
		return bondNames[b]
	}
	return "Bond(" + strconv.Itoa(int(b)) + ")"
}

// Valid reports whether b is one of the known bonds.
func (b Bond) Valid() bool {
	return int(b) < len(bondNames)
}

// ParseBond parses a bond name. The legacy numeric selectors "0" to "3"
// are accepted too.
func ParseBond(s string) (Bond, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range bondNames {
		if s == name {
			return Bond(i), nil
		}
	}
	switch s {
	case "continuous", "stretcher":
		return BondRunning, nil
	case "stack":
		return BondGrid, nil
	case "third", "offset":
		return BondThirds, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(bondNames) {
		return Bond(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBond, s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Bond) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bond) UnmarshalText(text []byte) error {
	v, err := ParseBond(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// UnmarshalJSON accepts both bond names and the legacy integer selectors.
func (b *Bond) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return b.UnmarshalText([]byte(s))
	}
	return b.UnmarshalText(data)
}

// staggerRule computes the horizontal shift of a row.
type staggerRule uint8

const (
	staggerNone staggerRule = iota
	staggerHalf
	staggerThirds
)

func (r staggerRule) offset(row int, cellWidth float64) float64 {
	switch r {
	case staggerHalf:
		return float64(row%2) * cellWidth / 2
	case staggerThirds:
		return float64(row%3) * cellWidth / 3
	default:
		return 0
	}
}

// alternation decides which cells get the negated rotation.
type alternation uint8

const (
	alternateCell alternation = iota // (row+col) parity
	alternateRow                     // row parity
)

func (a alternation) negate(row, col int) bool {
	if a == alternateRow {
		return row%2 != 0
	}
	return (row+col)%2 != 0
}

// bondLayout is the data driving the generic layout loop.
type bondLayout struct {
	rows, cols int
	stagger    staggerRule
	alternate  alternation
	padCols    int // extra columns left of the canvas, covering the stagger
	gapless    bool
}

var bondLayouts = [...]bondLayout{
	BondRunning: {rows: 2, cols: 2, stagger: staggerNone, alternate: alternateCell},
	BondGrid:    {rows: 2, cols: 2, stagger: staggerNone, alternate: alternateCell, gapless: true},
	BondCross:   {rows: 2, cols: 2, stagger: staggerHalf, alternate: alternateRow, padCols: 1},
	BondThirds:  {rows: 3, cols: 3, stagger: staggerThirds, alternate: alternateRow, padCols: 1},
}

func (b Bond) layout() (bondLayout, bool) {
	if !b.Valid() {
		return bondLayout{}, false
	}
	return bondLayouts[b], true
}
