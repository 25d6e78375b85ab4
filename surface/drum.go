package surface

import (
	"go-linngrid/debug"
	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/led"
	"go-linngrid/midi"
	"go-linngrid/stepseq"
)

// Drum layout: a 4x4 pad matrix in the bottom-left corner and the selected
// pad's 16 steps repeated across the top four rows.
var (
	padRegion  = grid.Region{Col: 0, Row: 0, Cols: 4, Rows: 4}
	stepRegion = grid.Region{Col: 0, Row: 4, Cols: stepseq.NumSteps, Rows: 4}
)

func padIndex(c grid.Cell) int {
	return (c.Row-padRegion.Row)*padRegion.Cols + (c.Col - padRegion.Col)
}

func padCell(pad int) grid.Cell {
	return grid.Cell{Col: padRegion.Col + pad%padRegion.Cols, Row: padRegion.Row + pad/padRegion.Cols}
}

// drumMode owns the step sequencer for the life of the driver, so patterns
// survive mode switches.
type drumMode struct {
	seq *stepseq.Sequencer
}

func newDrumMode() *drumMode {
	return &drumMode{seq: stepseq.New()}
}

func (d *drumMode) kind() Kind { return DrumSequencer }

func (d *drumMode) tuning(ctx *Context) grid.Tuning {
	return ctx.Settings.drumTuning()
}

func (d *drumMode) enter(ctx *Context) error {
	_, playing := ctx.Host.Position()
	d.seq.SetPlaying(playing)
	ctx.Subscribe(host.PositionChanged, func() error { return d.tick(ctx) })
	ctx.Subscribe(host.PlayingChanged, func() error { return d.playingChanged(ctx) })
	return d.render(ctx)
}

func (d *drumMode) exit(ctx *Context) {
	d.seq.SetPlaying(false)
}

func (d *drumMode) inputs(ctx *Context) InputMap {
	return InputMap{Notes: []grid.Region{padRegion, stepRegion}}
}

func (d *drumMode) handleNote(ctx *Context, cell grid.Cell, velocity uint8) error {
	switch {
	case padRegion.Contains(cell):
		pad := padIndex(cell)
		if velocity > 0 && d.seq.Select(pad) {
			debug.Log("drum", "selected pad %d", pad)
			if err := d.render(ctx); err != nil {
				return err
			}
		}
		note, err := d.padNote(ctx, pad)
		if err != nil {
			return err
		}
		return ctx.Host.PlayNote(note, velocity)

	case stepRegion.Contains(cell):
		if velocity == 0 {
			return nil
		}
		return d.toggle(ctx, cell.Col-stepRegion.Col)
	}
	return nil
}

func (d *drumMode) handleCC(ctx *Context, cc, value uint8) error {
	return nil
}

// toggle flips a step of the selected pad, redraws that column and writes the
// note into the host clip.
func (d *drumMode) toggle(ctx *Context, step int) error {
	pad := d.seq.Selected()
	vel, ok := d.seq.Toggle(pad, step)
	if !ok {
		return nil
	}
	debug.Log("drum", "pad %d step %d -> %d", pad, step, vel)
	d.renderStep(ctx, step)

	note, err := d.padNote(ctx, pad)
	if err != nil {
		return err
	}
	start := float64(step) * stepseq.StepLength
	return ctx.Host.WriteStep(note, start, stepseq.StepLength, vel)
}

// tick follows the transport: when the step changes, every active pad at
// the new step fires and only the two affected columns are redrawn.
func (d *drumMode) tick(ctx *Context) error {
	beats, playing := ctx.Host.Position()
	if !playing {
		return nil
	}
	d.seq.SetPlaying(true)
	st, ok := d.seq.Advance(beats)
	if !ok {
		return nil
	}

	var firstErr error
	for _, tr := range st.Triggers {
		note, err := d.padNote(ctx, tr.Pad)
		if err == nil {
			err = ctx.Host.TriggerNote(note, tr.Velocity)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	var batch []led.Update
	if st.Prev != st.Next {
		batch = d.stepUpdates(batch, st.Prev)
	}
	ctx.LEDs.SetBatch(d.stepUpdates(batch, st.Next), false)
	return firstErr
}

func (d *drumMode) playingChanged(ctx *Context) error {
	_, playing := ctx.Host.Position()
	if d.seq.SetPlaying(playing) {
		d.renderSteps(ctx)
	}
	return nil
}

// padNote is the note a pad plays: the selected sampler's kit when there is
// one, the drum rack layout otherwise.
func (d *drumMode) padNote(ctx *Context, pad int) (uint8, error) {
	kit := stepseq.GetKit(stepseq.DefaultKit)
	s, ok, err := ctx.Host.SelectedSampler()
	if err != nil {
		return 0, err
	}
	if ok {
		kit = stepseq.GetKit(s.Kit)
	}
	note, _ := kit.Note(pad)
	return note, nil
}

func (d *drumMode) render(ctx *Context) error {
	err := d.renderPads(ctx)
	d.renderSteps(ctx)
	return err
}

func (d *drumMode) renderPads(ctx *Context) error {
	var loaded [stepseq.NumPads]bool
	s, ok, err := ctx.Host.SelectedSampler()
	if ok {
		loaded = s.Loaded
	}
	for pad := 0; pad < stepseq.NumPads; pad++ {
		c := padCell(pad)
		color := midi.ColorBlue
		switch {
		case pad == d.seq.Selected():
			color = midi.ColorWhite
		case loaded[pad]:
			color = midi.ColorGreen
		}
		ctx.LEDs.Set(c.Col, c.Row, color, false)
	}

	// the rest of the pad rows stay dark
	for row := padRegion.Row; row < padRegion.Row+padRegion.Rows; row++ {
		for col := padRegion.Col + padRegion.Cols; col < ctx.LEDs.Dims().Cols; col++ {
			ctx.LEDs.Set(col, row, midi.ColorOff, false)
		}
	}
	return err
}

func (d *drumMode) renderSteps(ctx *Context) {
	for step := 0; step < stepRegion.Cols; step++ {
		d.renderStep(ctx, step)
	}
}

func (d *drumMode) renderStep(ctx *Context, step int) {
	ctx.LEDs.SetBatch(d.stepUpdates(nil, step), false)
}

// stepUpdates appends the cells of one step column to batch.
func (d *drumMode) stepUpdates(batch []led.Update, step int) []led.Update {
	color := d.stepColor(step)
	for row := stepRegion.Row; row < stepRegion.Row+stepRegion.Rows; row++ {
		batch = append(batch, led.Update{Col: stepRegion.Col + step, Row: row, Color: color})
	}
	return batch
}

func (d *drumMode) stepColor(step int) midi.Color {
	active := d.seq.Active(d.seq.Selected(), step)
	head := d.seq.Playing() && step == d.seq.Current()
	switch {
	case head && active:
		return midi.ColorWhite
	case head:
		return midi.ColorYellow
	case active:
		return midi.ColorGreen
	}
	return midi.ColorOff
}
