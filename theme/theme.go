package theme

import (
	"go-linngrid/midi"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Lit  rune // ■ cell with a colour
	Dark rune // · cell off

	Cursor rune // ▣ last cell clicked in the mirror
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Lit:    '■',
			Dark:   '·',
			Cursor: '▣',
		},
	}
}

// Load returns the theme for a palette file, or the default theme for "".
func Load(path string) (*Theme, error) {
	if path == "" {
		return New(nil), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.6
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) FG() lipgloss.Color      { return hex(t.Palette.Lookup(RoleFG)) }
func (t *Theme) Accent() lipgloss.Color  { return hex(t.Palette.Lookup(RoleAccent)) }
func (t *Theme) Muted() lipgloss.Color   { return hex(t.Palette.Lookup(RoleMuted)) }
func (t *Theme) Warning() lipgloss.Color { return hex(t.Palette.Lookup(RoleWarning)) }
func (t *Theme) Success() lipgloss.Color { return hex(t.Palette.Lookup(RoleSuccess)) }

// LED returns the terminal colour for a device palette entry. Unlit cells
// use the muted role so the grid stays visible.
func (t *Theme) LED(c midi.Color) lipgloss.Color {
	if c == midi.ColorOff {
		return t.Muted()
	}
	rgb := c.RGB()
	return hex(colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255})
}

// Symbol returns the glyph drawn for a cell.
func (t *Theme) Symbol(c midi.Color) rune {
	if c == midi.ColorOff {
		return t.Symbols.Dark
	}
	return t.Symbols.Lit
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
