package grid

import "testing"

func TestPitchAt(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
		tuning   Tuning
		want     int
		ok       bool
	}{
		{"origin", 0, 0, DefaultTuning, 36, true},
		{"one column", 1, 0, DefaultTuning, 37, true},
		{"one row", 0, 1, DefaultTuning, 41, true},
		{"top right", 15, 7, DefaultTuning, 36 + 15 + 35, true},
		{"drum pad 5", 1, 1, DrumTuning, 41, true},
		{"below range", 0, 0, Tuning{Base: -1, Row: 5, Column: 1}, 0, false},
		{"above range", 15, 7, Tuning{Base: 120, Row: 5, Column: 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PitchAt(tt.col, tt.row, tt.tuning)
			if ok != tt.ok {
				t.Fatalf("PitchAt ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("PitchAt = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCellsForPitchScenario(t *testing.T) {
	cells := CellsForPitch(48, DefaultTuning, DefaultDims)
	if len(cells) == 0 {
		t.Fatal("expected at least one cell for pitch 48")
	}
	if cells[0] != (Cell{Col: 12, Row: 0}) {
		t.Errorf("canonical cell = %+v, want {12 0}", cells[0])
	}
	// 48 = 36 + 12 = 36 + 7 + 5 = 36 + 2 + 10
	want := []Cell{{12, 0}, {7, 1}, {2, 2}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells %v, want %v", len(cells), cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cells[%d] = %+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestCellsForPitchRoundTrip(t *testing.T) {
	tunings := []Tuning{DefaultTuning, DrumTuning, {Base: 30, Row: 7, Column: 2}, {Base: 0, Row: 0, Column: 1}}
	for _, tun := range tunings {
		for row := 0; row < DefaultDims.Rows; row++ {
			for col := 0; col < DefaultDims.Cols; col++ {
				p, ok := PitchAt(col, row, tun)
				if !ok {
					continue
				}
				cells := CellsForPitch(p, tun, DefaultDims)
				found := false
				for _, c := range cells {
					if c == (Cell{col, row}) {
						found = true
					}
				}
				if !found {
					t.Errorf("%v: cell (%d,%d) missing from CellsForPitch(%d) = %v", tun, col, row, p, cells)
				}
				first := cells[0]
				if first.Row > row || (first.Row == row && first.Col > col) {
					t.Errorf("%v: canonical %v is not minimal for pitch %d", tun, first, p)
				}
			}
		}
	}
}

func TestCellsForPitchOrdering(t *testing.T) {
	cells := CellsForPitch(60, DefaultTuning, DefaultDims)
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a.Row > b.Row || (a.Row == b.Row && a.Col >= b.Col) {
			t.Errorf("cells out of order at %d: %v then %v", i, a, b)
		}
	}
	again := CellsForPitch(60, DefaultTuning, DefaultDims)
	if len(again) != len(cells) {
		t.Fatalf("non-deterministic length %d vs %d", len(again), len(cells))
	}
	for i := range cells {
		if cells[i] != again[i] {
			t.Errorf("non-deterministic result at %d", i)
		}
	}
}

func TestCellsForPitchOutOfRange(t *testing.T) {
	if cells := CellsForPitch(200, DefaultTuning, DefaultDims); cells != nil {
		t.Errorf("expected nil for pitch 200, got %v", cells)
	}
	if cells := CellsForPitch(10, DefaultTuning, DefaultDims); len(cells) != 0 {
		t.Errorf("expected no cells below base, got %v", cells)
	}
}

func TestTuningValidate(t *testing.T) {
	if err := DefaultTuning.Validate(); err != nil {
		t.Errorf("default tuning invalid: %v", err)
	}
	if err := (Tuning{Base: 36, Row: 5, Column: 0}).Validate(); err == nil {
		t.Error("expected error for zero column interval")
	}
}
