// Package grid maps pad coordinates on an isomorphic grid to MIDI pitches
// and back.
package grid

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	DefaultCols = 16
	DefaultRows = 8

	MinPitch = 0
	MaxPitch = 127
)

// Tuning describes an isomorphic layout: moving one column right adds Column
// semitones, moving one row up adds Row semitones.
type Tuning struct {
	Base   int
	Row    int
	Column int
}

// Standard 4ths layout.
var DefaultTuning = Tuning{Base: 36, Row: 5, Column: 1}

// Major-3rds layout used by the drum sequencer.
var DrumTuning = Tuning{Base: 36, Row: 4, Column: 1}

func (t Tuning) Validate() error {
	if t.Column < 1 {
		return errors.Errorf("column interval must be >= 1, got %d", t.Column)
	}
	if t.Row < 0 {
		return errors.Errorf("row interval must be >= 0, got %d", t.Row)
	}
	return nil
}

func (t Tuning) String() string {
	return fmt.Sprintf("base=%d row=%d col=%d", t.Base, t.Row, t.Column)
}

// Cell is a pad position. Col 0 is the leftmost playable column, Row 0 the
// bottom row.
type Cell struct {
	Col int
	Row int
}

// Dims is the size of the playable surface.
type Dims struct {
	Cols int
	Rows int
}

var DefaultDims = Dims{Cols: DefaultCols, Rows: DefaultRows}

func (d Dims) Contains(col, row int) bool {
	return col >= 0 && col < d.Cols && row >= 0 && row < d.Rows
}

func (d Dims) Size() int {
	return d.Cols * d.Rows
}

// PitchAt returns the pitch sounded by the pad at (col, row). ok is false when
// the result falls outside the MIDI range.
func PitchAt(col, row int, t Tuning) (int, bool) {
	p := t.Base + col*t.Column + row*t.Row
	if p < MinPitch || p > MaxPitch {
		return 0, false
	}
	return p, true
}

// CellsForPitch returns every cell sounding pitch, ordered by row then column.
// The first element is the canonical cell.
func CellsForPitch(pitch int, t Tuning, d Dims) []Cell {
	if pitch < MinPitch || pitch > MaxPitch {
		return nil
	}
	var cells []Cell
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			if p, ok := PitchAt(col, row, t); ok && p == pitch {
				cells = append(cells, Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}

// Region is an inclusive-exclusive rectangle of cells.
type Region struct {
	Col, Row   int
	Cols, Rows int
}

func (r Region) Contains(c Cell) bool {
	return c.Col >= r.Col && c.Col < r.Col+r.Cols && c.Row >= r.Row && c.Row < r.Row+r.Rows
}

// Cells lists every cell in the region, row by row.
func (r Region) Cells() []Cell {
	cells := make([]Cell, 0, r.Cols*r.Rows)
	for row := r.Row; row < r.Row+r.Rows; row++ {
		for col := r.Col; col < r.Col+r.Cols; col++ {
			cells = append(cells, Cell{Col: col, Row: row})
		}
	}
	return cells
}
