package grid

// Mapper holds the active tuning and caches the pitch to cells inverse map.
// It is not safe for concurrent use; the surface driver owns it.
type Mapper struct {
	tuning Tuning
	dims   Dims
	cache  map[int][]Cell
}

func NewMapper(t Tuning, d Dims) *Mapper {
	return &Mapper{tuning: t, dims: d}
}

func (m *Mapper) Tuning() Tuning { return m.tuning }
func (m *Mapper) Dims() Dims     { return m.dims }

// SetTuning replaces the active tuning. Returns true when it changed.
func (m *Mapper) SetTuning(t Tuning) bool {
	if t == m.tuning {
		return false
	}
	m.tuning = t
	m.Invalidate()
	return true
}

func (m *Mapper) SetDims(d Dims) {
	if d == m.dims {
		return
	}
	m.dims = d
	m.Invalidate()
}

// Invalidate drops the inverse cache.
func (m *Mapper) Invalidate() {
	m.cache = nil
}

func (m *Mapper) PitchAt(col, row int) (int, bool) {
	if !m.dims.Contains(col, row) {
		return 0, false
	}
	return PitchAt(col, row, m.tuning)
}

// Cells returns every cell sounding pitch, canonical first. The returned slice
// is shared with the cache and must not be modified.
func (m *Mapper) Cells(pitch int) []Cell {
	if pitch < MinPitch || pitch > MaxPitch {
		return nil
	}
	if m.cache == nil {
		m.build()
	}
	return m.cache[pitch]
}

// Canonical returns the lowest-row, lowest-column cell for pitch.
func (m *Mapper) Canonical(pitch int) (Cell, bool) {
	cells := m.Cells(pitch)
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[0], true
}

// FirstIn returns the first canonical cell for pitch inside r.
func (m *Mapper) FirstIn(pitch int, r Region) (Cell, bool) {
	for _, c := range m.Cells(pitch) {
		if r.Contains(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// CellInRow resolves a pitch when the originating row is known, as with
// channel-per-row controllers.
func (m *Mapper) CellInRow(pitch, row int) (Cell, bool) {
	for _, c := range m.Cells(pitch) {
		if c.Row == row {
			return c, true
		}
	}
	return Cell{}, false
}

func (m *Mapper) build() {
	m.cache = make(map[int][]Cell)
	for row := 0; row < m.dims.Rows; row++ {
		for col := 0; col < m.dims.Cols; col++ {
			if p, ok := PitchAt(col, row, m.tuning); ok {
				m.cache[p] = append(m.cache[p], Cell{Col: col, Row: row})
			}
		}
	}
}
