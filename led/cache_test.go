package led

import (
	"testing"

	"go-linngrid/grid"
	"go-linngrid/midi"
)

type write struct {
	col, row int
	color    midi.Color
}

type fakeWriter struct {
	writes []write
}

func (f *fakeWriter) WriteCell(col, row int, c midi.Color) error {
	f.writes = append(f.writes, write{col, row, c})
	return nil
}

func newCache() (*Cache, *fakeWriter) {
	w := &fakeWriter{}
	return New(grid.DefaultDims, w), w
}

func TestNewCacheIsOffWithoutWrites(t *testing.T) {
	c, w := newCache()
	if len(w.writes) != 0 {
		t.Fatalf("New wrote %d cells", len(w.writes))
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 16; col++ {
			if c.Color(col, row) != midi.ColorOff {
				t.Fatalf("cell (%d,%d) = %v, want off", col, row, c.Color(col, row))
			}
		}
	}
}

func TestSetDiffing(t *testing.T) {
	tests := []struct {
		name  string
		first midi.Color
		again midi.Color
		force bool
		want  int
	}{
		{"unchanged", midi.ColorRed, midi.ColorRed, false, 1},
		{"unchanged forced", midi.ColorRed, midi.ColorRed, true, 2},
		{"changed", midi.ColorRed, midi.ColorBlue, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newCache()
			c.Set(3, 2, tt.first, false)
			c.Set(3, 2, tt.again, tt.force)
			if len(w.writes) != tt.want {
				t.Errorf("got %d writes, want %d", len(w.writes), tt.want)
			}
			if c.Writes() != tt.want {
				t.Errorf("Writes() = %d, want %d", c.Writes(), tt.want)
			}
		})
	}
}

func TestSetOffOnFreshCacheIsNoop(t *testing.T) {
	c, w := newCache()
	if c.Set(0, 0, midi.ColorOff, false) {
		t.Error("Set reported a write for an unchanged cell")
	}
	if len(w.writes) != 0 {
		t.Errorf("got %d writes", len(w.writes))
	}
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	c, w := newCache()
	c.Set(16, 0, midi.ColorRed, true)
	c.Set(0, -1, midi.ColorRed, true)
	if len(w.writes) != 0 {
		t.Errorf("out-of-range Set wrote %d cells", len(w.writes))
	}
	if c.Color(16, 0) != midi.ColorOff {
		t.Error("out-of-range Color should be off")
	}
}

func TestClearAllForced(t *testing.T) {
	c, w := newCache()
	c.Set(1, 1, midi.ColorGreen, false)
	w.writes = nil

	c.ClearAll(nil, true)
	if len(w.writes) != 128 {
		t.Errorf("forced ClearAll wrote %d cells, want 128", len(w.writes))
	}
	for _, wr := range w.writes {
		if wr.color != midi.ColorOff {
			t.Fatalf("ClearAll wrote %v", wr.color)
		}
	}

	// idempotent: unforced clear of an all-off grid writes nothing
	w.writes = nil
	c.ClearAll(nil, false)
	if len(w.writes) != 0 {
		t.Errorf("second ClearAll wrote %d cells", len(w.writes))
	}
}

func TestClearAllSkipRows(t *testing.T) {
	c, _ := newCache()
	c.Set(0, 0, midi.ColorYellow, false)
	c.Set(0, 3, midi.ColorYellow, false)

	c.ClearAll([]int{0}, false)
	if c.Color(0, 0) != midi.ColorYellow {
		t.Error("skipped row was cleared")
	}
	if c.Color(0, 3) != midi.ColorOff {
		t.Error("row 3 not cleared")
	}
}

func TestSetBatch(t *testing.T) {
	c, w := newCache()
	n := c.SetBatch([]Update{
		{Col: 0, Row: 0, Color: midi.ColorRed},
		{Col: 0, Row: 0, Color: midi.ColorRed},
		{Col: 1, Row: 0, Color: midi.ColorOff},
		{Col: 2, Row: 0, Color: midi.ColorBlue},
	}, false)
	if n != 2 || len(w.writes) != 2 {
		t.Errorf("SetBatch wrote %d (writer %d), want 2", n, len(w.writes))
	}
}

func TestRegions(t *testing.T) {
	c, _ := newCache()
	r := grid.Region{Col: 4, Row: 4, Cols: 2, Rows: 2}
	c.FillRegion(r, midi.ColorCyan, false)
	if c.Color(5, 5) != midi.ColorCyan || c.Color(6, 5) != midi.ColorOff {
		t.Fatal("FillRegion painted the wrong cells")
	}
	c.FillRegion(r, midi.ColorOff, false)
	if c.Color(4, 4) != midi.ColorOff {
		t.Error("FillRegion off left a cell lit")
	}
}

func TestRefreshRewritesEverything(t *testing.T) {
	c, w := newCache()
	c.Set(2, 2, midi.ColorPink, false)
	w.writes = nil
	c.Refresh()
	if len(w.writes) != 128 {
		t.Fatalf("Refresh wrote %d cells", len(w.writes))
	}
	if w.writes[2*16+2].color != midi.ColorPink {
		t.Error("Refresh lost the cached colour")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c, _ := newCache()
	c.Set(1, 0, midi.ColorWhite, false)
	snap := c.Snapshot()
	if snap[0][1] != midi.ColorWhite {
		t.Fatalf("snapshot[0][1] = %v", snap[0][1])
	}
	snap[0][1] = midi.ColorRed
	if c.Color(1, 0) != midi.ColorWhite {
		t.Error("snapshot aliases cache storage")
	}
}
