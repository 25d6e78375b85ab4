// Package surface drives the grid: it owns the LED cache and the pitch
// mapper, runs exactly one mode at a time and routes controller input to it.
package surface

import (
	"time"

	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/led"
	"go-linngrid/midi"
)

// Host is what the modes need from the sequencing application.
type Host interface {
	Subscribe(ev host.Event, fn func()) *host.Subscription

	Scale() (root int, name string, err error)
	SelectedIndex() int
	SelectedTrack() (*host.Track, error)
	SelectedSampler() (*host.Sampler, bool, error)
	Position() (beats float64, playing bool)

	NumTracks() int
	NumScenes() int
	ClipAt(track, scene int) (host.ClipInfo, error)
	FireClip(track, scene int) error
	FireScene(scene int) error
	StopTrack(track int) error

	PlayNote(note, velocity uint8) error
	TriggerNote(note, velocity uint8) error
	ForwardCC(cc, value uint8) error
	WriteStep(pitch uint8, start, length float64, velocity uint8) error
}

// Device is the controller output.
type Device interface {
	led.Writer
	WriteNRPN(param, value int) error
}

// Settings are the static surface parameters.
type Settings struct {
	Dims grid.Dims

	// Tuning of the pitch display and clip launcher; the drum sequencer uses
	// the same base with DrumRowInterval.
	Tuning          grid.Tuning
	DrumRowInterval int

	// What the instrument is reset to on shutdown.
	FactoryRowInterval int
	FactoryBase        int

	ModeSwitchCC uint8
	OctaveDownCC uint8
	OctaveUpCC   uint8

	// Input arrives with the row encoded as the MIDI channel.
	ChannelPerRow bool

	// Pitch display colours follow the selected track colour.
	TrackColors bool
}

func DefaultSettings() Settings {
	return Settings{
		Dims:               grid.DefaultDims,
		Tuning:             grid.DefaultTuning,
		DrumRowInterval:    grid.DrumTuning.Row,
		FactoryRowInterval: midi.FactoryRowOffset,
		FactoryBase:        grid.DefaultTuning.Base,
		ModeSwitchCC:       65,
		OctaveDownCC:       66,
		OctaveUpCC:         67,
	}
}

func (s Settings) drumTuning() grid.Tuning {
	return grid.Tuning{Base: s.Tuning.Base, Row: s.DrumRowInterval, Column: s.Tuning.Column}
}

func (s Settings) factoryTuning() grid.Tuning {
	return grid.Tuning{Base: s.FactoryBase, Row: s.FactoryRowInterval, Column: 1}
}

// Context is the state shared by every mode. It is owned by the driver
// goroutine and passed to modes by pointer.
type Context struct {
	Settings Settings
	LEDs     *led.Cache
	Mapper   *grid.Mapper
	Host     Host
	Device   Device

	deferred bool
	status   string
	statusAt time.Time

	// set by the machine for the active mode
	subscribe func(ev host.Event, fn func() error)
	retune    func(t grid.Tuning)
}

func NewContext(s Settings, h Host, d Device) *Context {
	return &Context{
		Settings: s,
		LEDs:     led.New(s.Dims, d),
		Mapper:   grid.NewMapper(s.Tuning, s.Dims),
		Host:     h,
		Device:   d,
	}
}

// Subscribe registers a host listener for the active mode; it is released
// when the mode exits.
func (c *Context) Subscribe(ev host.Event, fn func() error) {
	if c.subscribe != nil {
		c.subscribe(ev, fn)
	}
}

// Defer asks for a full render of the active mode on the next tick.
func (c *Context) Defer() {
	c.deferred = true
}

// SetStatus shows a transient message in the UI.
func (c *Context) SetStatus(text string) {
	c.status = text
	c.statusAt = time.Now()
}

// Status returns the status text while it is fresh.
func (c *Context) Status(ttl time.Duration) string {
	if c.status == "" || time.Since(c.statusAt) > ttl {
		return ""
	}
	return c.status
}
