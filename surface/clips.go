package surface

import (
	"go-linngrid/debug"
	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
)

// Navigation buttons on the bottom row. The columns after them are stop
// buttons for the visible tracks, starting with the leftmost.
const (
	navSceneUp = iota
	navSceneDown
	navTrackLeft
	navTrackRight

	navButtons
)

// clipMode is a session grid: the bottom row navigates and stops tracks,
// the middle rows are clip slots (tracks across, scenes up) and the top row
// launches scenes.
type clipMode struct {
	offX, offY int
}

func (m *clipMode) kind() Kind { return ClipLaunch }

func (m *clipMode) tuning(ctx *Context) grid.Tuning {
	return ctx.Settings.Tuning
}

func (m *clipMode) enter(ctx *Context) error {
	m.clamp(ctx)
	ctx.Subscribe(host.SessionChanged, func() error {
		ctx.Defer()
		return nil
	})
	return m.render(ctx)
}

func (m *clipMode) exit(ctx *Context) {}

func (m *clipMode) inputs(ctx *Context) InputMap {
	d := ctx.LEDs.Dims()
	return InputMap{Notes: []grid.Region{{Cols: d.Cols, Rows: d.Rows}}}
}

func (m *clipMode) sceneRow(ctx *Context) int      { return ctx.LEDs.Dims().Rows - 1 }
func (m *clipMode) visibleScenes(ctx *Context) int { return ctx.LEDs.Dims().Rows - 2 }

// slot maps a clip cell to its track and scene.
func (m *clipMode) slot(cell grid.Cell) (track, scene int) {
	return m.offX + cell.Col, m.offY + cell.Row - 1
}

func (m *clipMode) clamp(ctx *Context) {
	m.offX = clampOffset(m.offX, ctx.Host.NumTracks(), ctx.LEDs.Dims().Cols)
	m.offY = clampOffset(m.offY, ctx.Host.NumScenes(), m.visibleScenes(ctx))
}

func clampOffset(off, n, visible int) int {
	hi := n - visible
	if off > hi {
		off = hi
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (m *clipMode) handleNote(ctx *Context, cell grid.Cell, velocity uint8) error {
	if velocity == 0 {
		return nil
	}
	switch {
	case cell.Row == 0:
		return m.pressNav(ctx, cell.Col)
	case cell.Row == m.sceneRow(ctx):
		scene := m.offY + cell.Col
		if scene >= ctx.Host.NumScenes() {
			return nil
		}
		debug.Log("clips", "launch scene %d", scene)
		return ctx.Host.FireScene(scene)
	}

	track, scene := m.slot(cell)
	if track >= ctx.Host.NumTracks() || scene >= ctx.Host.NumScenes() {
		return nil
	}
	info, err := ctx.Host.ClipAt(track, scene)
	if err != nil {
		return err
	}
	if info.State == host.ClipPlaying || info.State == host.ClipRecording {
		return ctx.Host.StopTrack(track)
	}
	return ctx.Host.FireClip(track, scene)
}

func (m *clipMode) pressNav(ctx *Context, col int) error {
	x, y := m.offX, m.offY
	switch col {
	case navSceneUp:
		m.offY--
	case navSceneDown:
		m.offY++
	case navTrackLeft:
		m.offX--
	case navTrackRight:
		m.offX++
	default:
		track := m.offX + col - navButtons
		if track >= ctx.Host.NumTracks() {
			return nil
		}
		return ctx.Host.StopTrack(track)
	}
	m.clamp(ctx)
	if m.offX == x && m.offY == y {
		return nil
	}
	debug.Log("clips", "offset %d,%d", m.offX, m.offY)
	return m.render(ctx)
}

func (m *clipMode) handleCC(ctx *Context, cc, value uint8) error {
	return nil
}

func (m *clipMode) render(ctx *Context) error {
	d := ctx.LEDs.Dims()
	tracks, scenes := ctx.Host.NumTracks(), ctx.Host.NumScenes()

	for col := 0; col < d.Cols; col++ {
		ctx.LEDs.Set(col, 0, m.navColor(ctx, col), false)
	}

	var firstErr error
	for row := 1; row < m.sceneRow(ctx); row++ {
		for col := 0; col < d.Cols; col++ {
			color := midi.ColorOff
			track, scene := m.slot(grid.Cell{Col: col, Row: row})
			if track < tracks && scene < scenes {
				info, err := ctx.Host.ClipAt(track, scene)
				if err != nil && firstErr == nil {
					firstErr = err
				}
				color = clipColor(info)
			}
			ctx.LEDs.Set(col, row, color, false)
		}
	}

	for col := 0; col < d.Cols; col++ {
		color := midi.ColorOff
		if m.offY+col < scenes {
			color = midi.ColorYellow
		}
		ctx.LEDs.Set(col, m.sceneRow(ctx), color, false)
	}
	return firstErr
}

func (m *clipMode) navColor(ctx *Context, col int) midi.Color {
	can := false
	switch col {
	case navSceneUp:
		can = m.offY > 0
	case navSceneDown:
		can = m.offY < ctx.Host.NumScenes()-m.visibleScenes(ctx)
	case navTrackLeft:
		can = m.offX > 0
	case navTrackRight:
		can = m.offX < ctx.Host.NumTracks()-ctx.LEDs.Dims().Cols
	default:
		if m.offX+col-navButtons < ctx.Host.NumTracks() {
			return midi.ColorRed
		}
		return midi.ColorOff
	}
	if can {
		return midi.ColorCyan
	}
	return midi.ColorOff
}

func clipColor(info host.ClipInfo) midi.Color {
	switch info.State {
	case host.ClipPlaying:
		return midi.ColorGreen
	case host.ClipTriggered:
		return midi.ColorYellow
	case host.ClipRecording:
		return midi.ColorRed
	case host.ClipStopped:
		if c := midi.NearestColor(info.Color); c != midi.ColorOff {
			return c
		}
		return midi.ColorWhite
	}
	return midi.ColorOff
}
