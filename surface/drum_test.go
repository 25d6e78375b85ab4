package surface

import (
	"reflect"
	"testing"

	"go-linngrid/grid"
	"go-linngrid/midi"
)

func TestPadLayout(t *testing.T) {
	tests := []struct {
		pad  int
		cell grid.Cell
	}{
		{0, grid.Cell{Col: 0, Row: 0}},
		{3, grid.Cell{Col: 3, Row: 0}},
		{5, grid.Cell{Col: 1, Row: 1}},
		{15, grid.Cell{Col: 3, Row: 3}},
	}
	for _, tt := range tests {
		if got := padCell(tt.pad); got != tt.cell {
			t.Errorf("padCell(%d) = %v, want %v", tt.pad, got, tt.cell)
		}
		if got := padIndex(tt.cell); got != tt.pad {
			t.Errorf("padIndex(%v) = %d, want %d", tt.cell, got, tt.pad)
		}
	}
}

func TestPadPressSelectsAndPlays(t *testing.T) {
	f := start(t, DrumSequencer)

	// pad 5 sits at (1,1): 36 + 1 + 4
	f.m.HandleEvent(midi.NoteOnEvent(0, 41, 90))
	if got := f.m.Sequencer().Selected(); got != 5 {
		t.Fatalf("selected pad = %d, want 5", got)
	}
	if got := f.color(1, 1); got != midi.ColorWhite {
		t.Errorf("selected pad colour = %v", got)
	}
	if got := f.color(0, 0); got != midi.ColorGreen {
		t.Errorf("loaded pad colour = %v", got)
	}

	f.m.HandleEvent(midi.NoteOffEvent(0, 41))
	want := [][2]uint8{{41, 90}, {41, 0}}
	if !reflect.DeepEqual(f.notes.notes, want) {
		t.Errorf("notes = %v, want %v", f.notes.notes, want)
	}
	if f.m.Sequencer().Selected() != 5 {
		t.Error("note-off changed the selection")
	}
}

func TestPadSelectionRedrawsSteps(t *testing.T) {
	f := start(t, DrumSequencer)
	seq := f.m.Sequencer()
	seq.Toggle(3, 7)

	f.m.Press(padCell(3))
	for row := 4; row < 8; row++ {
		if got := f.color(7, row); got != midi.ColorGreen {
			t.Errorf("(7,%d) = %v, want green for pad 3", row, got)
		}
	}
	f.m.Press(padCell(0))
	if got := f.color(7, 4); got != midi.ColorOff {
		t.Errorf("(7,4) = %v after selecting pad 0", got)
	}
}

func TestStepToggle(t *testing.T) {
	f := start(t, DrumSequencer)
	cells := f.dev.cells

	// (3,4) plays 36 + 3 + 16 = 55
	f.m.HandleEvent(midi.NoteOnEvent(0, 55, 100))
	f.m.HandleEvent(midi.NoteOffEvent(0, 55))

	if !f.m.Sequencer().Active(0, 3) {
		t.Fatal("step 3 of pad 0 not set")
	}
	if got := f.dev.cells - cells; got != 4 {
		t.Errorf("toggle wrote %d cells, want one column of 4", got)
	}
	for row := 4; row < 8; row++ {
		if got := f.color(3, row); got != midi.ColorGreen {
			t.Errorf("(3,%d) = %v", row, got)
		}
	}

	tr, _ := f.song.Track(0)
	notes := tr.Slots[0].Notes
	if len(notes) != 1 || notes[0].Pitch != 36 || notes[0].Start != 0.75 {
		t.Fatalf("clip notes = %+v", notes)
	}

	f.m.Press(grid.Cell{Col: 3, Row: 6})
	if f.m.Sequencer().Active(0, 3) {
		t.Error("second toggle did not clear the step")
	}
	if len(tr.Slots[0].Notes) != 0 {
		t.Errorf("clip note not removed: %+v", tr.Slots[0].Notes)
	}
	if len(f.notes.notes) != 0 {
		t.Errorf("step presses reached the instrument: %v", f.notes.notes)
	}
}

func TestPlayheadFiresEachStepOnce(t *testing.T) {
	f := start(t, DrumSequencer)
	seq := f.m.Sequencer()
	seq.Toggle(0, 0)
	seq.Toggle(2, 0)
	seq.Toggle(0, 1)

	f.song.Play()
	want := [][2]uint8{{36, 100}, {38, 100}}
	if !reflect.DeepEqual(f.notes.triggers, want) {
		t.Fatalf("triggers at step 0 = %v, want %v", f.notes.triggers, want)
	}
	if got := f.color(0, 4); got != midi.ColorWhite {
		t.Errorf("playhead on active step = %v", got)
	}
	if got := f.color(1, 4); got != midi.ColorGreen {
		t.Errorf("active step = %v", got)
	}

	f.clock.advance(0.25)
	f.song.Tick()
	want = append(want, [2]uint8{36, 100})
	if !reflect.DeepEqual(f.notes.triggers, want) {
		t.Fatalf("triggers at step 1 = %v, want %v", f.notes.triggers, want)
	}
	if seq.Current() != 1 {
		t.Errorf("current = %d", seq.Current())
	}
	if got := f.color(0, 4); got != midi.ColorGreen {
		t.Errorf("previous column = %v", got)
	}
	if got := f.color(1, 4); got != midi.ColorWhite {
		t.Errorf("new column = %v", got)
	}

	// still inside step 1
	f.clock.advance(0.1)
	f.song.Tick()
	f.song.Tick()
	if len(f.notes.triggers) != len(want) {
		t.Errorf("step 1 fired again: %v", f.notes.triggers)
	}

	f.clock.advance(0.2)
	f.song.Tick()
	if got := f.color(2, 4); got != midi.ColorYellow {
		t.Errorf("playhead on empty step = %v", got)
	}

	f.song.Stop()
	if seq.Current() != 0 || seq.Playing() {
		t.Errorf("after stop current=%d playing=%v", seq.Current(), seq.Playing())
	}
	for col, want := range []midi.Color{midi.ColorGreen, midi.ColorGreen, midi.ColorOff} {
		if got := f.color(col, 5); got != want {
			t.Errorf("after stop (%d,5) = %v, want %v", col, got, want)
		}
	}
}

func TestPlayheadOnlyRedrawsTwoColumns(t *testing.T) {
	f := start(t, DrumSequencer)
	f.song.Play()
	cells := f.dev.cells

	f.clock.advance(0.25)
	f.song.Tick()
	if got := f.dev.cells - cells; got != 8 {
		t.Errorf("step advance wrote %d cells, want 8", got)
	}
}

func TestBackwardSeekFiresNewStepOnce(t *testing.T) {
	f := start(t, DrumSequencer)
	seq := f.m.Sequencer()
	seq.Toggle(1, 1)
	seq.Toggle(3, 3)

	f.song.Play()
	f.clock.advance(0.75)
	f.song.Tick()
	if seq.Current() != 3 {
		t.Fatalf("current = %d, want 3", seq.Current())
	}
	f.notes.triggers = nil
	cells := f.dev.cells

	f.song.Seek(0.25)
	want := [][2]uint8{{37, 100}}
	if !reflect.DeepEqual(f.notes.triggers, want) {
		t.Fatalf("triggers after seek = %v, want %v", f.notes.triggers, want)
	}
	if seq.Current() != 1 {
		t.Errorf("current = %d, want 1", seq.Current())
	}
	if got := f.dev.cells - cells; got != 8 {
		t.Errorf("seek wrote %d cells, want 8", got)
	}
	if got := f.color(3, 4); got != midi.ColorOff {
		t.Errorf("old playhead column = %v", got)
	}
	if got := f.color(1, 4); got != midi.ColorYellow {
		t.Errorf("new playhead column = %v", got)
	}

	// staying inside step 1 does not fire it again
	f.clock.advance(0.1)
	f.song.Tick()
	if !reflect.DeepEqual(f.notes.triggers, want) {
		t.Errorf("step 1 fired again: %v", f.notes.triggers)
	}
}

func TestPatternSurvivesModeSwitch(t *testing.T) {
	f := start(t, DrumSequencer)
	f.m.Press(grid.Cell{Col: 9, Row: 4})
	f.m.SwitchTo(PitchDisplay)
	f.m.SwitchTo(DrumSequencer)
	if !f.m.Sequencer().Active(0, 9) {
		t.Error("pattern lost across a mode switch")
	}
	if got := f.color(9, 7); got != midi.ColorGreen {
		t.Errorf("(9,7) = %v", got)
	}
}

func TestDrumPassesUnmappedNotes(t *testing.T) {
	f := start(t, DrumSequencer)
	// below the grid: no cell plays 20
	f.m.HandleEvent(midi.NoteOnEvent(0, 20, 100))
	if len(f.notes.notes) != 1 || f.notes.notes[0] != [2]uint8{20, 100} {
		t.Errorf("notes = %v", f.notes.notes)
	}
}
