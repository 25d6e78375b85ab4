package surface

import (
	"reflect"
	"testing"

	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		mode    Kind
		perRow  bool
		channel uint8
		pitch   uint8
		want    grid.Cell
		ok      bool
	}{
		{"pitch canonical", PitchDisplay, false, 0, 48, grid.Cell{Col: 12, Row: 0}, true},
		{"drum pad before alias", DrumSequencer, false, 0, 40, grid.Cell{Col: 0, Row: 1}, true},
		{"drum step", DrumSequencer, false, 0, 55, grid.Cell{Col: 3, Row: 4}, true},
		{"channel names the row", PitchDisplay, true, 1, 48, grid.Cell{Col: 7, Row: 1}, true},
		{"channel row without the pitch", PitchDisplay, true, 7, 36, grid.Cell{}, false},
		{"below the grid", PitchDisplay, false, 0, 10, grid.Cell{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.ChannelPerRow = tt.perRow
			f := newFixture(t, s)
			f.m.Start(tt.mode)

			got, ok := f.m.Resolve(tt.channel, tt.pitch)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Resolve(%d, %d) = %v, %v; want %v, %v", tt.channel, tt.pitch, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPitchDisplayPassesEverythingThrough(t *testing.T) {
	f := start(t, PitchDisplay)
	f.m.HandleEvent(midi.NoteOnEvent(0, 60, 100))
	f.m.HandleEvent(midi.NoteOffEvent(0, 60))
	f.m.HandleEvent(midi.CCEvent(0, 74, 64))

	if want := [][2]uint8{{60, 100}, {60, 0}}; !reflect.DeepEqual(f.notes.notes, want) {
		t.Errorf("notes = %v, want %v", f.notes.notes, want)
	}
	if want := [][2]uint8{{74, 64}}; !reflect.DeepEqual(f.notes.ccs, want) {
		t.Errorf("ccs = %v, want %v", f.notes.ccs, want)
	}
}

func TestChannelPerRowReachesClipRows(t *testing.T) {
	s := DefaultSettings()
	s.ChannelPerRow = true
	f := newFixture(t, s)
	f.m.Start(ClipLaunch)

	// 41 is (5,0) and (0,1); the channel says row 1, the drums clip
	f.m.HandleEvent(midi.NoteOnEvent(1, 41, 100))
	info, _ := f.song.ClipAt(0, 0)
	if info.State != host.ClipPlaying {
		t.Errorf("clip state = %v, want playing", info.State)
	}
}

func TestEventsIgnoredBeforeStart(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	f.m.HandleEvent(midi.NoteOnEvent(0, 60, 100))
	f.m.Press(grid.Cell{Col: 0, Row: 0})
	if len(f.notes.notes) != 0 {
		t.Errorf("notes before start: %v", f.notes.notes)
	}
}

func TestPressOutsideRegionsPlaysThePitch(t *testing.T) {
	f := start(t, DrumSequencer)
	// (8,0) is dark in the drum layout and plays 36 + 8
	f.m.Press(grid.Cell{Col: 8, Row: 0})
	if want := [][2]uint8{{44, 100}, {44, 0}}; !reflect.DeepEqual(f.notes.notes, want) {
		t.Errorf("notes = %v, want %v", f.notes.notes, want)
	}
}
