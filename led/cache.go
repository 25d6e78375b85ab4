// Package led keeps the last colour written to every cell of the surface and
// only sends the writes that change something.
package led

import (
	"go-linngrid/debug"
	"go-linngrid/grid"
	"go-linngrid/midi"
)

// Writer sends one cell colour to the hardware.
type Writer interface {
	WriteCell(col, row int, c midi.Color) error
}

// Update is one entry of a batch write
type Update struct {
	Col, Row int
	Color    midi.Color
}

// Cache is the per-cell LED state. It is not safe for concurrent use; the
// surface driver owns it.
type Cache struct {
	dims   grid.Dims
	cells  []midi.Color
	w      Writer
	writes int
}

// New returns a cache with every cell Off. Nothing is written to the device.
func New(d grid.Dims, w Writer) *Cache {
	c := &Cache{
		dims:  d,
		cells: make([]midi.Color, d.Size()),
		w:     w,
	}
	for i := range c.cells {
		c.cells[i] = midi.ColorOff
	}
	return c
}

func (c *Cache) Dims() grid.Dims { return c.dims }

// Writes returns how many cell writes reached the writer.
func (c *Cache) Writes() int { return c.writes }

func (c *Cache) index(col, row int) (int, bool) {
	if !c.dims.Contains(col, row) {
		return 0, false
	}
	return row*c.dims.Cols + col, true
}

// Set stores color for the cell and writes it when it differs from the cached
// value or force is set. Reports whether a write was issued.
func (c *Cache) Set(col, row int, color midi.Color, force bool) bool {
	i, ok := c.index(col, row)
	if !ok {
		return false
	}
	if !force && c.cells[i] == color {
		return false
	}
	c.cells[i] = color
	c.write(col, row, color)
	return true
}

func (c *Cache) write(col, row int, color midi.Color) {
	c.writes++
	if c.w == nil {
		return
	}
	if err := c.w.WriteCell(col, row, color); err != nil {
		debug.LogEvery(50, "led", "write (%d,%d) failed: %v", col, row, err)
	}
}

// SetBatch applies updates with the same diffing as Set and returns the
// number of writes issued.
func (c *Cache) SetBatch(updates []Update, force bool) int {
	n := 0
	for _, u := range updates {
		if c.Set(u.Col, u.Row, u.Color, force) {
			n++
		}
	}
	if n > 0 {
		debug.LogEvery(100, "led", "batch=%d written=%d", len(updates), n)
	}
	return n
}

// ClearAll turns every cell Off except those in skipRows.
func (c *Cache) ClearAll(skipRows []int, force bool) {
	skip := make(map[int]bool, len(skipRows))
	for _, r := range skipRows {
		skip[r] = true
	}
	for row := 0; row < c.dims.Rows; row++ {
		if skip[row] {
			continue
		}
		c.ClearRow(row, force)
	}
}

func (c *Cache) ClearRow(row int, force bool) {
	for col := 0; col < c.dims.Cols; col++ {
		c.Set(col, row, midi.ColorOff, force)
	}
}

func (c *Cache) FillRegion(r grid.Region, color midi.Color, force bool) {
	for _, cell := range r.Cells() {
		c.Set(cell.Col, cell.Row, color, force)
	}
}

// Refresh rewrites every cell from the cache, used after the device
// reconnects and has lost its state.
func (c *Cache) Refresh() {
	for row := 0; row < c.dims.Rows; row++ {
		for col := 0; col < c.dims.Cols; col++ {
			c.write(col, row, c.cells[row*c.dims.Cols+col])
		}
	}
	debug.Log("led", "refreshed %d cells", len(c.cells))
}

// Color returns the cached colour, Off for out-of-range cells.
func (c *Cache) Color(col, row int) midi.Color {
	i, ok := c.index(col, row)
	if !ok {
		return midi.ColorOff
	}
	return c.cells[i]
}

// Snapshot copies the table, indexed [row][col].
func (c *Cache) Snapshot() [][]midi.Color {
	out := make([][]midi.Color, c.dims.Rows)
	for row := range out {
		out[row] = make([]midi.Color, c.dims.Cols)
		copy(out[row], c.cells[row*c.dims.Cols:(row+1)*c.dims.Cols])
	}
	return out
}
