package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-linngrid/grid"
	"go-linngrid/midi"
	"go-linngrid/scale"
	"go-linngrid/surface"
	"go-linngrid/theme"
	"go-linngrid/widgets"
)

// Surface is the part of the driver the terminal UI talks to. Every call
// except Snapshot and Updates is posted to the control goroutine.
type Surface interface {
	Snapshot() surface.Snapshot
	Updates() <-chan struct{}

	Cycle()
	Press(cell grid.Cell)
	TogglePlay()
	Rewind()
	NudgeTempo(delta float64)
	StepTrack(delta int)
	StepRoot(delta int)
	StepScale(delta int)
}

// layoutBounds holds cached layout info
type layoutBounds struct {
	gridTop    int
	gridHeight int
}

type Model struct {
	Surface  Surface
	Theme    *theme.Theme
	quitting bool
	cursor   *grid.Cell
	bounds   *layoutBounds
}

type UpdateMsg struct{}

func NewModel(s Surface, th *theme.Theme) Model {
	return Model{
		Surface: s,
		Theme:   th,
		bounds:  &layoutBounds{},
	}
}

func ListenForUpdates(s Surface) tea.Cmd {
	return func() tea.Msg {
		<-s.Updates()
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Surface)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "m", "tab":
			m.Surface.Cycle()
		case "p", " ", "space":
			m.Surface.TogglePlay()
		case "0", "home":
			m.Surface.Rewind()
		case "+", "=":
			m.Surface.NudgeTempo(5)
		case "-", "_":
			m.Surface.NudgeTempo(-5)
		case "]":
			m.Surface.StepTrack(1)
		case "[":
			m.Surface.StepTrack(-1)
		case "r":
			m.Surface.StepRoot(1)
		case "R":
			m.Surface.StepRoot(-1)
		case "s":
			m.Surface.StepScale(1)
		case "S":
			m.Surface.StepScale(-1)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if cell, ok := m.hitTest(msg.X, msg.Y); ok {
			m.cursor = &cell
			m.Surface.Press(cell)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Surface)
	}

	return m, nil
}

func (m Model) hitTest(x, y int) (grid.Cell, bool) {
	if m.bounds.gridHeight == 0 || y < m.bounds.gridTop || y >= m.bounds.gridTop+m.bounds.gridHeight {
		return grid.Cell{}, false
	}
	snap := m.Surface.Snapshot()
	if len(snap.LEDs) == 0 {
		return grid.Cell{}, false
	}
	d := grid.Dims{Cols: len(snap.LEDs[0]), Rows: len(snap.LEDs)}
	return widgets.HitTest(x, y-m.bounds.gridTop, d)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.Surface.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render(Header(snap))
	info := fgStyle.Render(Info(snap))
	gridView := widgets.RenderGrid(m.Theme, snap.LEDs, m.cursor)
	legend := m.legend(snap.Mode)
	help := dimStyle.Render("m:mode  p:play  0:rewind  +/-:tempo  [/]:track  r/R:root  s/S:scale  click:press  q:quit")

	m.bounds.gridTop = 1 + lipgloss.Height(header) + lipgloss.Height(info) + 1
	m.bounds.gridHeight = len(snap.LEDs)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(info)
	out.WriteString("\n\n")
	out.WriteString(gridView)
	out.WriteString("\n\n")
	out.WriteString(legend)
	out.WriteString("\n\n")
	if snap.Status != "" {
		out.WriteString(statusStyle.Render(snap.Status))
		out.WriteString("\n")
	}
	out.WriteString(help)
	return out.String()
}

// Header is the transport line.
func Header(snap surface.Snapshot) string {
	play := "STOP"
	if snap.Playing {
		play = "PLAY"
	}
	device := "no device"
	if snap.Connected {
		device = "LS:X"
	}
	bar := int(snap.Beats/4) + 1
	beat := int(snap.Beats)%4 + 1
	return fmt.Sprintf("go-linngrid  %s  %3.0fbpm  %3d.%d  %s", play, snap.Tempo, bar, beat, device)
}

// Info describes the mode and selection.
func Info(snap surface.Snapshot) string {
	var detail string
	switch snap.Mode {
	case surface.PitchDisplay:
		detail = fmt.Sprintf("octave %+d", snap.Octave)
	case surface.DrumSequencer:
		detail = fmt.Sprintf("pad %d  step %d", snap.Pad+1, snap.Step+1)
	}
	line := fmt.Sprintf("mode: %-6s track: %s (%d/%d)  scale: %s %s",
		snap.Mode, snap.TrackName, snap.Track+1, snap.Tracks, scale.PitchClassName(snap.Root), snap.Scale)
	if detail != "" {
		line += "  " + detail
	}
	return line
}

func (m Model) legend(k surface.Kind) string {
	var items []string
	add := func(c midi.Color, name, desc string) {
		items = append(items, widgets.RenderLegendItem(m.Theme, c, name, desc))
	}
	switch k {
	case surface.PitchDisplay:
		add(midi.ColorRed, "root", "scale root")
		add(midi.ColorBlue, "scale", "in scale")
	case surface.ClipLaunch:
		add(midi.ColorCyan, "nav", "scenes up/down, tracks left/right")
		add(midi.ColorRed, "stop", "stop track")
		add(midi.ColorGreen, "playing", "press to stop")
		add(midi.ColorYellow, "queued / scene", "launches on the next bar")
	case surface.DrumSequencer:
		add(midi.ColorWhite, "pad", "selected pad")
		add(midi.ColorGreen, "pad / step", "loaded pad, active step")
		add(midi.ColorYellow, "playhead", "current step")
	}
	return strings.Join(items, "\n")
}
