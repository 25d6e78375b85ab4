package config

import (
	"os"
	"path/filepath"

	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
	"go-linngrid/scale"
	"go-linngrid/stepseq"
	"go-linngrid/surface"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ControllerConfig selects the grid controller and how it talks
type ControllerConfig struct {
	Port          string `yaml:"port"`    // case-insensitive substring of the port name
	Channel       int    `yaml:"channel"` // 0-15, used for LED and NRPN writes
	ChannelPerRow bool   `yaml:"channelPerRow,omitempty"`
}

// GridConfig is the surface geometry and tuning
type GridConfig struct {
	Cols               int `yaml:"cols"`
	Rows               int `yaml:"rows"`
	Base               int `yaml:"base"`
	RowInterval        int `yaml:"rowInterval"`
	ColumnInterval     int `yaml:"columnInterval"`
	DrumRowInterval    int `yaml:"drumRowInterval"`
	FactoryRowInterval int `yaml:"factoryRowInterval"`
}

// ControlsConfig assigns the function switches
type ControlsConfig struct {
	ModeSwitchCC int `yaml:"modeSwitchCC"`
	OctaveDownCC int `yaml:"octaveDownCC"`
	OctaveUpCC   int `yaml:"octaveUpCC"`
}

// SynthOutputConfig defines the synth MIDI output
type SynthOutputConfig struct {
	Port    string `yaml:"port,omitempty"`
	Channel int    `yaml:"channel"`
}

// TrackConfig describes one track of the in-process session
type TrackConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"` // "#rrggbb"
	Drums bool   `yaml:"drums,omitempty"`
	Kit   string `yaml:"kit,omitempty"`
	Clips []int  `yaml:"clips,omitempty"`
}

// SessionConfig seeds the in-process host
type SessionConfig struct {
	Tempo  float64       `yaml:"tempo"`
	Root   string        `yaml:"root"`
	Scale  string        `yaml:"scale"`
	Scenes int           `yaml:"scenes"`
	Tracks []TrackConfig `yaml:"tracks,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Mode        string `yaml:"mode"`            // mode entered at startup
	Theme       string `yaml:"theme,omitempty"` // GIMP .gpl palette for the terminal UI
	TrackColors bool   `yaml:"trackColors,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Controller  ControllerConfig  `yaml:"controller"`
	Grid        GridConfig        `yaml:"grid"`
	Controls    ControlsConfig    `yaml:"controls"`
	SynthOutput SynthOutputConfig `yaml:"synthOutput"`
	Session     SessionConfig     `yaml:"session"`
	UI          UIConfig          `yaml:"ui"`
	Debug       bool              `yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	s := surface.DefaultSettings()
	return &Config{
		Controller: ControllerConfig{Port: "linnstrument"},
		Grid: GridConfig{
			Cols:               s.Dims.Cols,
			Rows:               s.Dims.Rows,
			Base:               s.Tuning.Base,
			RowInterval:        s.Tuning.Row,
			ColumnInterval:     s.Tuning.Column,
			DrumRowInterval:    s.DrumRowInterval,
			FactoryRowInterval: s.FactoryRowInterval,
		},
		Controls: ControlsConfig{
			ModeSwitchCC: int(s.ModeSwitchCC),
			OctaveDownCC: int(s.OctaveDownCC),
			OctaveUpCC:   int(s.OctaveUpCC),
		},
		Session: SessionConfig{
			Tempo:  host.DefaultTempo,
			Root:   "C",
			Scale:  "major",
			Scenes: host.DefaultScenes,
		},
		UI: UIConfig{Mode: surface.PitchDisplay.String()},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "home directory")
	}
	return filepath.Join(home, ".config", "go-linngrid"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path (the default location when empty), or
// returns defaults if there is no file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path (the default location when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

func checkCC(name string, v int) error {
	if v < 0 || v > 127 {
		return errors.Errorf("%s %d out of range 0-127", name, v)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Controller.Channel < 0 || c.Controller.Channel > 15 {
		return errors.Errorf("controller channel %d out of range 0-15", c.Controller.Channel)
	}
	if c.SynthOutput.Channel < 0 || c.SynthOutput.Channel > 15 {
		return errors.Errorf("synth channel %d out of range 0-15", c.SynthOutput.Channel)
	}
	if c.Grid.Cols < 1 || c.Grid.Rows < 1 || c.Grid.Cols > 32 || c.Grid.Rows > 32 {
		return errors.Errorf("grid %dx%d not supported", c.Grid.Cols, c.Grid.Rows)
	}
	if c.Grid.Base < grid.MinPitch || c.Grid.Base > grid.MaxPitch {
		return errors.Errorf("base pitch %d out of range", c.Grid.Base)
	}
	if err := c.tuning().Validate(); err != nil {
		return errors.Wrap(err, "grid")
	}
	// The instrument only moves its base in octaves of its factory layout,
	// and its column interval is fixed at one semitone.
	factory := surface.DefaultSettings().FactoryBase
	if (c.Grid.Base-factory)%12 != 0 {
		return errors.Errorf("base pitch %d must be %d plus whole octaves", c.Grid.Base, factory)
	}
	if oct := midi.FactoryOctave + (c.Grid.Base-factory)/12; oct < 0 || oct > midi.MaxOctave {
		return errors.Errorf("base pitch %d is outside the instrument's octave range", c.Grid.Base)
	}
	if c.Grid.ColumnInterval != 1 {
		return errors.Errorf("column interval %d not supported, the instrument uses 1", c.Grid.ColumnInterval)
	}
	if c.Grid.DrumRowInterval < 0 || c.Grid.FactoryRowInterval < 0 {
		return errors.New("row intervals must not be negative")
	}
	for _, cc := range []struct {
		name string
		v    int
	}{
		{"modeSwitchCC", c.Controls.ModeSwitchCC},
		{"octaveDownCC", c.Controls.OctaveDownCC},
		{"octaveUpCC", c.Controls.OctaveUpCC},
	} {
		if err := checkCC(cc.name, cc.v); err != nil {
			return err
		}
	}
	if c.Controls.ModeSwitchCC == c.Controls.OctaveDownCC ||
		c.Controls.ModeSwitchCC == c.Controls.OctaveUpCC ||
		c.Controls.OctaveDownCC == c.Controls.OctaveUpCC {
		return errors.Errorf("control CCs must be distinct, got mode %d octave down %d octave up %d",
			c.Controls.ModeSwitchCC, c.Controls.OctaveDownCC, c.Controls.OctaveUpCC)
	}
	if c.Session.Tempo < host.MinTempo || c.Session.Tempo > host.MaxTempo {
		return errors.Errorf("tempo %.1f out of range %.0f-%.0f", c.Session.Tempo, host.MinTempo, host.MaxTempo)
	}
	if _, err := scale.ParseRoot(c.Session.Root); err != nil {
		return err
	}
	if _, err := scale.Lookup(c.Session.Scale); err != nil {
		return err
	}
	if c.Session.Scenes < 1 {
		return errors.Errorf("scenes %d must be at least 1", c.Session.Scenes)
	}
	if _, err := surface.ParseKind(c.UI.Mode); err != nil {
		return err
	}
	_, err := c.TrackSpecs()
	return err
}

func (c *Config) tuning() grid.Tuning {
	return grid.Tuning{Base: c.Grid.Base, Row: c.Grid.RowInterval, Column: c.Grid.ColumnInterval}
}

// Settings converts the config to surface settings.
func (c *Config) Settings() surface.Settings {
	s := surface.DefaultSettings()
	s.Dims = grid.Dims{Cols: c.Grid.Cols, Rows: c.Grid.Rows}
	s.Tuning = c.tuning()
	s.DrumRowInterval = c.Grid.DrumRowInterval
	s.FactoryRowInterval = c.Grid.FactoryRowInterval
	s.ModeSwitchCC = uint8(c.Controls.ModeSwitchCC)
	s.OctaveDownCC = uint8(c.Controls.OctaveDownCC)
	s.OctaveUpCC = uint8(c.Controls.OctaveUpCC)
	s.ChannelPerRow = c.Controller.ChannelPerRow
	s.TrackColors = c.UI.TrackColors
	return s
}

// InitialMode is the mode entered at startup.
func (c *Config) InitialMode() surface.Kind {
	k, _ := surface.ParseKind(c.UI.Mode)
	return k
}

// RootPitchClass is the session root as 0-11.
func (c *Config) RootPitchClass() int {
	r, _ := scale.ParseRoot(c.Session.Root)
	return r
}

// ControlChannel is the controller channel as a MIDI channel number.
func (c *Config) ControlChannel() uint8 { return uint8(c.Controller.Channel) }

// SynthChannel is the synth output channel as a MIDI channel number.
func (c *Config) SynthChannel() uint8 { return uint8(c.SynthOutput.Channel) }

// TrackSpecs converts the configured tracks, falling back to the demo
// session when none are configured.
func (c *Config) TrackSpecs() ([]host.TrackSpec, error) {
	if len(c.Session.Tracks) == 0 {
		return host.DefaultTracks, nil
	}
	specs := make([]host.TrackSpec, 0, len(c.Session.Tracks))
	for i, t := range c.Session.Tracks {
		sp := host.TrackSpec{Name: t.Name, Drums: t.Drums, Kit: t.Kit, Clips: t.Clips}
		if sp.Name == "" {
			return nil, errors.Errorf("track %d has no name", i)
		}
		if t.Kit != "" {
			if _, ok := stepseq.Kits[t.Kit]; !ok {
				return nil, errors.Errorf("track %q: unknown kit %q", t.Name, t.Kit)
			}
		}
		if t.Color != "" {
			col, err := colorful.Hex(t.Color)
			if err != nil {
				return nil, errors.Wrapf(err, "track %q colour", t.Name)
			}
			r, g, b := col.RGB255()
			sp.Color = [3]uint8{r, g, b}
		} else {
			sp.Color = midi.ColorWhite.RGB()
		}
		specs = append(specs, sp)
	}
	return specs, nil
}
