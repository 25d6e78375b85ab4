package surface

import (
	"fmt"

	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
	"go-linngrid/scale"
)

// pitchMode lights the song scale across the grid and lets every note
// through to the instrument. The octave buttons shift the base pitch.
type pitchMode struct {
	octave int
}

func (p *pitchMode) kind() Kind { return PitchDisplay }

func (p *pitchMode) tuning(ctx *Context) grid.Tuning {
	t := ctx.Settings.Tuning
	t.Base += 12 * p.octave
	return t
}

// octaveRange bounds the shift so the instrument's octave parameter stays
// within 0..midi.MaxOctave for the configured base.
func (p *pitchMode) octaveRange(ctx *Context) (lo, hi int) {
	at := midi.FactoryOctave + floorDiv(ctx.Settings.Tuning.Base-ctx.Settings.FactoryBase, 12)
	return -at, midi.MaxOctave - at
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (p *pitchMode) enter(ctx *Context) error {
	ctx.Subscribe(host.ScaleChanged, func() error { return p.render(ctx) })
	return p.render(ctx)
}

func (p *pitchMode) exit(ctx *Context) {}

func (p *pitchMode) render(ctx *Context) error {
	root, name, err := ctx.Host.Scale()
	if err != nil {
		return err
	}
	set, err := scale.PitchClasses(root, name)
	if err != nil {
		return err
	}
	rootColor, scaleColor := midi.ColorRed, midi.ColorBlue
	if ctx.Settings.TrackColors {
		if t, err := ctx.Host.SelectedTrack(); err == nil {
			rootColor, scaleColor = trackScheme(t.Color)
		}
	}

	d := ctx.LEDs.Dims()
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			color := midi.ColorOff
			if pitch, ok := ctx.Mapper.PitchAt(col, row); ok {
				switch {
				case pitch%12 == root:
					color = rootColor
				case set.Contains(pitch):
					color = scaleColor
				}
			}
			ctx.LEDs.Set(col, row, color, false)
		}
	}
	return nil
}

func (p *pitchMode) inputs(ctx *Context) InputMap {
	return InputMap{CCs: []uint8{ctx.Settings.OctaveDownCC, ctx.Settings.OctaveUpCC}}
}

// Notes are never intercepted.
func (p *pitchMode) handleNote(ctx *Context, cell grid.Cell, velocity uint8) error {
	return nil
}

func (p *pitchMode) handleCC(ctx *Context, cc, value uint8) error {
	if value == 0 {
		return nil
	}
	next := p.octave
	switch cc {
	case ctx.Settings.OctaveDownCC:
		next--
	case ctx.Settings.OctaveUpCC:
		next++
	}
	lo, hi := p.octaveRange(ctx)
	if next < lo || next > hi || next == p.octave {
		return nil
	}
	p.octave = next
	ctx.SetStatus(fmt.Sprintf("octave %+d", p.octave))
	if ctx.retune != nil {
		ctx.retune(p.tuning(ctx))
	}
	return p.render(ctx)
}

// trackScheme picks root and scale colours matching a track colour.
func trackScheme(rgb [3]uint8) (root, other midi.Color) {
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	switch {
	case r > g && r > b:
		if r > 200 && g < 100 {
			return midi.ColorRed, midi.ColorPink
		}
		return midi.ColorOrange, midi.ColorYellow
	case g > r && g > b:
		if g > 200 {
			return midi.ColorGreen, midi.ColorLime
		}
		return midi.ColorLime, midi.ColorGreen
	case b > r && b > g:
		if b > 200 {
			return midi.ColorBlue, midi.ColorCyan
		}
		return midi.ColorCyan, midi.ColorBlue
	case r > 150 && g > 150 && b < 100:
		return midi.ColorYellow, midi.ColorLime
	case r > 150 && b > 150:
		return midi.ColorMagenta, midi.ColorPink
	case g > 150 && b > 150:
		return midi.ColorCyan, midi.ColorBlue
	}
	return midi.ColorWhite, midi.ColorBlue
}
