package surface

import (
	"strings"

	"go-linngrid/grid"

	"github.com/pkg/errors"
)

// Kind identifies one of the surface modes.
type Kind int

const (
	PitchDisplay Kind = iota
	ClipLaunch
	DrumSequencer

	numKinds
)

var kindNames = [numKinds]string{"pitch", "clips", "drums"}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Next is the mode the switch button cycles to.
func (k Kind) Next() Kind {
	return (k + 1) % numKinds
}

// ParseKind accepts the names printed by String.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return PitchDisplay, errors.Errorf("unknown mode %q", name)
}

// InputMap lists what the active mode intercepts. Notes landing outside
// every region and unlisted CCs pass through to the host.
type InputMap struct {
	Notes []grid.Region
	CCs   []uint8
}

func (m InputMap) interceptsCell(c grid.Cell) bool {
	for _, r := range m.Notes {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

func (m InputMap) interceptsCC(cc uint8) bool {
	for _, n := range m.CCs {
		if n == cc {
			return true
		}
	}
	return false
}

// mode is one surface behaviour. Every method runs on the driver goroutine
// and may panic; the machine recovers.
type mode interface {
	kind() Kind
	tuning(ctx *Context) grid.Tuning

	// enter subscribes to host events and renders the whole grid.
	enter(ctx *Context) error
	// exit drops mode-local transient state. Subscriptions are released by
	// the machine.
	exit(ctx *Context)
	render(ctx *Context) error

	inputs(ctx *Context) InputMap
	handleNote(ctx *Context, cell grid.Cell, velocity uint8) error
	handleCC(ctx *Context, cc, value uint8) error
}
