package surface

import (
	"go-linngrid/grid"
	"go-linngrid/midi"
)

const pressVelocity = 100

// HandleEvent routes one controller event. Notes whose cell lies in a region
// the active mode intercepts go to the mode, everything else is played on the
// host instrument. The mode switch CC cycles modes.
func (m *Machine) HandleEvent(ev midi.Event) error {
	if !m.started {
		return nil
	}
	switch ev.Type {
	case midi.NoteOn:
		return m.routeNote(ev.Channel, ev.Note(), ev.Velocity())
	case midi.NoteOff:
		return m.routeNote(ev.Channel, ev.Note(), 0)
	case midi.CC:
		return m.routeCC(ev.Controller(), ev.Value())
	}
	return nil
}

// Resolve finds the cell a note came from. With channel-per-row input the
// channel names the row; otherwise the first matching cell inside the
// mode's regions wins, then the canonical cell.
func (m *Machine) Resolve(channel, pitch uint8) (grid.Cell, bool) {
	mp := m.ctx.Mapper
	if m.ctx.Settings.ChannelPerRow {
		return mp.CellInRow(int(pitch), int(channel))
	}
	for _, r := range m.inputs.Notes {
		if c, ok := mp.FirstIn(int(pitch), r); ok {
			return c, true
		}
	}
	return mp.Canonical(int(pitch))
}

func (m *Machine) routeNote(channel, pitch, velocity uint8) error {
	if cell, ok := m.Resolve(channel, pitch); ok && m.inputs.interceptsCell(cell) {
		return m.noteAt(cell, velocity)
	}
	return m.safely("note", func() error {
		return m.ctx.Host.PlayNote(pitch, velocity)
	})
}

func (m *Machine) noteAt(cell grid.Cell, velocity uint8) error {
	cur := m.modes[m.current]
	return m.safely("note "+m.current.String(), func() error {
		return cur.handleNote(m.ctx, cell, velocity)
	})
}

func (m *Machine) routeCC(cc, value uint8) error {
	if cc == m.ctx.Settings.ModeSwitchCC {
		if value == 0 {
			return nil
		}
		return m.Cycle()
	}
	if m.inputs.interceptsCC(cc) {
		cur := m.modes[m.current]
		return m.safely("cc "+m.current.String(), func() error {
			return cur.handleCC(m.ctx, cc, value)
		})
	}
	return m.safely("cc", func() error {
		return m.ctx.Host.ForwardCC(cc, value)
	})
}

// Press plays a full press and release of one cell, as if it had been
// touched on the instrument.
func (m *Machine) Press(cell grid.Cell) error {
	if !m.started || !m.ctx.LEDs.Dims().Contains(cell.Col, cell.Row) {
		return nil
	}
	if m.inputs.interceptsCell(cell) {
		if err := m.noteAt(cell, pressVelocity); err != nil {
			return err
		}
		return m.noteAt(cell, 0)
	}
	pitch, ok := m.ctx.Mapper.PitchAt(cell.Col, cell.Row)
	if !ok {
		return nil
	}
	return m.safely("press", func() error {
		if err := m.ctx.Host.PlayNote(uint8(pitch), pressVelocity); err != nil {
			return err
		}
		return m.ctx.Host.PlayNote(uint8(pitch), 0)
	})
}
