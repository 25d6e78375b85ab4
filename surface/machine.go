package surface

import (
	"go-linngrid/debug"
	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
	"go-linngrid/stepseq"

	"github.com/pkg/errors"
)

// Machine runs exactly one mode at a time. It is driven from a single
// goroutine.
type Machine struct {
	ctx     *Context
	modes   [numKinds]mode
	current Kind
	started bool

	// tuning the instrument has been told about
	active grid.Tuning

	subs   []*host.Subscription
	inputs InputMap
}

func NewMachine(ctx *Context) *Machine {
	m := &Machine{
		ctx:    ctx,
		modes:  [numKinds]mode{&pitchMode{}, &clipMode{}, newDrumMode()},
		active: ctx.Settings.factoryTuning(),
	}
	ctx.subscribe = m.subscribe
	ctx.retune = m.applyTuning
	return m
}

func (m *Machine) Current() Kind { return m.current }
func (m *Machine) Started() bool { return m.started }

// Octave is the pitch display's octave shift.
func (m *Machine) Octave() int {
	return m.modes[PitchDisplay].(*pitchMode).octave
}

// Sequencer is the drum mode's pattern and playhead.
func (m *Machine) Sequencer() *stepseq.Sequencer {
	return m.modes[DrumSequencer].(*drumMode).seq
}

// Start enters the initial mode. Subsequent calls are no-ops.
func (m *Machine) Start(initial Kind) error {
	if m.started {
		return nil
	}
	return m.SwitchTo(initial)
}

// Cycle switches to the next mode in order.
func (m *Machine) Cycle() error {
	return m.SwitchTo(m.current.Next())
}

// SwitchTo fully exits the current mode before entering target. The
// transition always completes: a failing step is logged and reported in
// the status line, and the remaining steps still run.
func (m *Machine) SwitchTo(target Kind) error {
	if target < 0 || target >= numKinds {
		return errors.Errorf("unknown mode %d", target)
	}
	if m.started && target == m.current {
		return nil
	}

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if m.started {
		prev := m.modes[m.current]
		keep(m.safely("exit "+m.current.String(), func() error {
			prev.exit(m.ctx)
			return nil
		}))
	}
	m.release()
	m.ctx.LEDs.ClearAll(nil, true)

	next := m.modes[target]
	keep(m.safely("tuning", func() error {
		m.applyTuning(next.tuning(m.ctx))
		return nil
	}))

	m.current = target
	m.started = true
	m.ctx.deferred = false
	keep(m.safely("enter "+target.String(), func() error {
		return next.enter(m.ctx)
	}))
	m.subscribe(host.SelectedTrackChanged, m.trackChanged)
	m.inputs = next.inputs(m.ctx)

	debug.Log("mode", "now %s (tuning %s)", target, m.active)
	if first != nil {
		m.ctx.SetStatus("mode " + target.String() + ": " + first.Error())
	} else {
		m.ctx.SetStatus("mode " + target.String())
	}
	return first
}

// Shutdown exits the current mode, clears the grid and puts the
// instrument's own tuning back.
func (m *Machine) Shutdown() {
	if m.started {
		prev := m.modes[m.current]
		m.safely("exit "+m.current.String(), func() error {
			prev.exit(m.ctx)
			return nil
		})
	}
	m.release()
	m.ctx.LEDs.ClearAll(nil, true)

	if d := m.ctx.Device; d != nil {
		d.WriteNRPN(midi.NRPNRowOffset, m.ctx.Settings.FactoryRowInterval)
		d.WriteNRPN(midi.NRPNOctave, midi.FactoryOctave)
	}
	factory := m.ctx.Settings.factoryTuning()
	m.active = factory
	m.ctx.Mapper.SetTuning(factory)
	m.started = false
	debug.Log("mode", "shutdown")
}

// Resync rewrites everything the instrument should be showing, after it
// has been reconnected.
func (m *Machine) Resync() {
	if d := m.ctx.Device; d != nil {
		d.WriteNRPN(midi.NRPNRowOffset, m.active.Row)
		d.WriteNRPN(midi.NRPNOctave, m.octaveValue(m.active.Base))
	}
	m.ctx.LEDs.Refresh()
}

// Tick flushes a deferred render.
func (m *Machine) Tick() {
	if !m.started || !m.ctx.deferred {
		return
	}
	m.ctx.deferred = false
	cur := m.modes[m.current]
	m.safely("render "+m.current.String(), func() error {
		return cur.render(m.ctx)
	})
}

func (m *Machine) applyTuning(t grid.Tuning) {
	if err := t.Validate(); err != nil {
		debug.Error("mode", err, "tuning %s", t)
		return
	}
	if d := m.ctx.Device; d != nil {
		if t.Row != m.active.Row {
			d.WriteNRPN(midi.NRPNRowOffset, t.Row)
		}
		if t.Base != m.active.Base {
			d.WriteNRPN(midi.NRPNOctave, m.octaveValue(t.Base))
		}
	}
	m.active = t
	m.ctx.Mapper.SetTuning(t)
}

// octaveValue is the instrument's octave parameter for a base pitch,
// clamped to 0..midi.MaxOctave.
func (m *Machine) octaveValue(base int) int {
	v := midi.FactoryOctave + floorDiv(base-m.ctx.Settings.FactoryBase, 12)
	if v < 0 {
		return 0
	}
	if v > midi.MaxOctave {
		return midi.MaxOctave
	}
	return v
}

// subscribe registers a host listener owned by the current mode. Errors
// and panics in fn are contained.
func (m *Machine) subscribe(ev host.Event, fn func() error) {
	sub := m.ctx.Host.Subscribe(ev, func() {
		m.safely(ev.String(), fn)
	})
	m.subs = append(m.subs, sub)
}

func (m *Machine) release() {
	for _, s := range m.subs {
		s.Release()
	}
	m.subs = nil
}

// trackChanged follows the selected track: a sampler brings up the drum
// sequencer, leaving one returns to the pitch display.
func (m *Machine) trackChanged() error {
	_, sampler, err := m.ctx.Host.SelectedSampler()
	if err != nil {
		return err
	}
	switch {
	case sampler && m.current != DrumSequencer:
		return m.SwitchTo(DrumSequencer)
	case !sampler && m.current == DrumSequencer:
		return m.SwitchTo(PitchDisplay)
	}
	m.ctx.Defer()
	return nil
}

// safely runs fn, turning a panic into an error. Errors are logged.
func (m *Machine) safely(what string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
		if err != nil {
			debug.Error("mode", err, "%s", what)
		}
	}()
	return fn()
}
