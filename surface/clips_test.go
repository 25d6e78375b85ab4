package surface

import (
	"testing"

	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
)

func TestClipLayout(t *testing.T) {
	f := start(t, ClipLaunch)
	tests := []struct {
		col, row int
		want     midi.Color
	}{
		{0, 0, midi.ColorOff},    // scenes up: already at the top
		{1, 0, midi.ColorCyan},   // scenes down: 8 scenes, 6 shown
		{3, 0, midi.ColorOff},    // tracks right: all 4 fit
		{4, 0, midi.ColorRed},    // stop track 0
		{7, 0, midi.ColorRed},    // stop track 3
		{8, 0, midi.ColorOff},    // no track 4
		{0, 1, midi.ColorOrange}, // drums, scene 0, stopped
		{1, 1, midi.ColorBlue},   // bass, scene 0, stopped
		{3, 1, midi.ColorOff},    // lead has nothing in scene 0
		{4, 1, midi.ColorOff},    // no track
		{7, 7, midi.ColorYellow}, // scene 7 launch
		{8, 7, midi.ColorOff},
	}
	for _, tt := range tests {
		if got := f.color(tt.col, tt.row); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func clipState(t *testing.T, f *fixture, track, scene int) host.ClipState {
	t.Helper()
	info, err := f.song.ClipAt(track, scene)
	if err != nil {
		t.Fatal(err)
	}
	return info.State
}

func TestClipLaunchAndStop(t *testing.T) {
	f := start(t, ClipLaunch)

	f.m.Press(grid.Cell{Col: 0, Row: 1})
	if got := clipState(t, f, 0, 0); got != host.ClipPlaying {
		t.Fatalf("clip state = %v, want playing", got)
	}
	f.m.Tick()
	if got := f.color(0, 1); got != midi.ColorGreen {
		t.Errorf("playing clip = %v", got)
	}

	// while playing, a launch waits for the bar
	f.m.Press(grid.Cell{Col: 0, Row: 2})
	f.m.Tick()
	if got := f.color(0, 2); got != midi.ColorYellow {
		t.Errorf("queued clip = %v", got)
	}

	f.m.Press(grid.Cell{Col: 0, Row: 1})
	if got := clipState(t, f, 0, 0); got != host.ClipStopped {
		t.Errorf("pressing a playing clip: %v, want stopped", got)
	}
	f.m.Tick()
	if got := f.color(0, 1); got != midi.ColorOrange {
		t.Errorf("stopped clip = %v", got)
	}
}

func TestClipStopButtonAndScene(t *testing.T) {
	f := start(t, ClipLaunch)

	f.m.Press(grid.Cell{Col: 1, Row: 7})
	for _, track := range []int{0, 1, 3} {
		if got := clipState(t, f, track, 1); got != host.ClipPlaying {
			t.Errorf("scene 1 track %d = %v", track, got)
		}
	}

	f.m.Press(grid.Cell{Col: 5, Row: 0})
	if got := clipState(t, f, 1, 1); got != host.ClipStopped {
		t.Errorf("after stop button track 1 = %v", got)
	}
	if got := clipState(t, f, 0, 1); got != host.ClipPlaying {
		t.Errorf("stop button hit the wrong track: %v", got)
	}
}

func TestClipNavigation(t *testing.T) {
	f := start(t, ClipLaunch)
	down := grid.Cell{Col: navSceneDown, Row: 0}

	f.m.Press(down)
	if got := f.color(0, 0); got != midi.ColorCyan {
		t.Errorf("scenes up after scrolling = %v", got)
	}
	// row 1 now shows scene 1: lead has a clip there
	if got := f.color(3, 1); got == midi.ColorOff {
		t.Error("scene 1 not shown after scrolling")
	}

	f.m.Press(down)
	writes := f.ctx.LEDs.Writes()
	f.m.Press(down)
	if f.ctx.LEDs.Writes() != writes {
		t.Error("scrolling past the end redrew the grid")
	}
	if got := f.color(1, 0); got != midi.ColorOff {
		t.Errorf("scenes down at the end = %v", got)
	}
	if got := f.color(6, 7); got != midi.ColorOff {
		t.Errorf("scene launch past the last scene = %v", got)
	}
}

func TestClampOffset(t *testing.T) {
	tests := []struct{ off, n, visible, want int }{
		{0, 8, 6, 0},
		{5, 8, 6, 2},
		{-1, 8, 6, 0},
		{3, 4, 16, 0},
	}
	for _, tt := range tests {
		if got := clampOffset(tt.off, tt.n, tt.visible); got != tt.want {
			t.Errorf("clampOffset(%d,%d,%d) = %d, want %d", tt.off, tt.n, tt.visible, got, tt.want)
		}
	}
}

func TestClipColor(t *testing.T) {
	tests := []struct {
		info host.ClipInfo
		want midi.Color
	}{
		{host.ClipInfo{State: host.ClipEmpty}, midi.ColorOff},
		{host.ClipInfo{State: host.ClipPlaying}, midi.ColorGreen},
		{host.ClipInfo{State: host.ClipTriggered}, midi.ColorYellow},
		{host.ClipInfo{State: host.ClipRecording}, midi.ColorRed},
		{host.ClipInfo{State: host.ClipStopped, Color: [3]uint8{0, 100, 255}}, midi.ColorBlue},
		{host.ClipInfo{State: host.ClipStopped}, midi.ColorWhite},
	}
	for _, tt := range tests {
		if got := clipColor(tt.info); got != tt.want {
			t.Errorf("clipColor(%+v) = %v, want %v", tt.info, got, tt.want)
		}
	}
}
