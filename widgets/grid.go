package widgets

import (
	"fmt"
	"strings"

	"go-linngrid/grid"
	"go-linngrid/midi"
	"go-linngrid/theme"

	"github.com/charmbracelet/lipgloss"
)

// CellWidth is the number of terminal columns one pad takes, glyph plus gap.
const CellWidth = 2

// RenderPad renders a single colored pad
func RenderPad(th *theme.Theme, c midi.Color) string {
	return lipgloss.NewStyle().Foreground(th.LED(c)).Render(string(th.Symbol(c)))
}

// RenderGrid renders an LED table indexed [row][col], row 0 at the bottom.
// cursor, when non-nil, marks a cell.
func RenderGrid(th *theme.Theme, leds [][]midi.Color, cursor *grid.Cell) string {
	lines := make([]string, 0, len(leds))
	for row := len(leds) - 1; row >= 0; row-- {
		var line strings.Builder
		for col, c := range leds[row] {
			if col > 0 {
				line.WriteString(strings.Repeat(" ", CellWidth-1))
			}
			if cursor != nil && cursor.Row == row && cursor.Col == col {
				line.WriteString(lipgloss.NewStyle().Foreground(th.LED(c)).Render(string(th.Symbols.Cursor)))
				continue
			}
			line.WriteString(RenderPad(th, c))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// HitTest maps a position relative to the top-left of a rendered grid back
// to a cell. Gaps between pads count as the pad to their left.
func HitTest(x, y int, d grid.Dims) (grid.Cell, bool) {
	if x < 0 || y < 0 {
		return grid.Cell{}, false
	}
	cell := grid.Cell{Col: x / CellWidth, Row: d.Rows - 1 - y}
	if !d.Contains(cell.Col, cell.Row) {
		return grid.Cell{}, false
	}
	return cell, true
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(th *theme.Theme, c midi.Color, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(th, c), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
