// Package stepseq is a 16 pad x 16 step drum pattern with a playhead derived
// from the absolute transport position.
package stepseq

import "math"

const (
	NumPads  = 16
	NumSteps = 16

	// StepLength is one sixteenth note, in beats.
	StepLength = 0.25

	DefaultVelocity uint8 = 100
)

// Pattern holds one velocity per pad and step; 0 is off.
type Pattern [NumPads][NumSteps]uint8

// Trigger is a pad to fire at the step the playhead just entered.
type Trigger struct {
	Pad      int
	Velocity uint8
}

// Step describes one playhead move.
type Step struct {
	Prev     int
	Next     int
	Triggers []Trigger
}

// Sequencer owns the pattern and the playhead. Not safe for concurrent use.
type Sequencer struct {
	pattern  Pattern
	current  int
	playing  bool
	armed    bool // next Advance fires even if the step is unchanged
	selected int
	velocity uint8
}

func New() *Sequencer {
	return &Sequencer{velocity: DefaultVelocity}
}

// StepAt maps an absolute beat position onto a step index.
func StepAt(beats, stepLength float64, steps int) int {
	if steps <= 0 || stepLength <= 0 {
		return 0
	}
	loop := float64(steps) * stepLength
	pos := math.Mod(beats, loop)
	if pos < 0 {
		pos += loop
	}
	step := int(pos / stepLength)
	if step >= steps {
		step = steps - 1
	}
	return step
}

func valid(pad, step int) bool {
	return pad >= 0 && pad < NumPads && step >= 0 && step < NumSteps
}

// Toggle flips a step between off and the default velocity and returns the
// new velocity.
func (s *Sequencer) Toggle(pad, step int) (uint8, bool) {
	if !valid(pad, step) {
		return 0, false
	}
	if s.pattern[pad][step] > 0 {
		s.pattern[pad][step] = 0
	} else {
		s.pattern[pad][step] = s.velocity
	}
	return s.pattern[pad][step], true
}

func (s *Sequencer) Velocity(pad, step int) uint8 {
	if !valid(pad, step) {
		return 0
	}
	return s.pattern[pad][step]
}

func (s *Sequencer) Active(pad, step int) bool {
	return s.Velocity(pad, step) > 0
}

func (s *Sequencer) Selected() int { return s.selected }

// Select makes pad the one shown in the step rows. Reports whether the
// selection changed.
func (s *Sequencer) Select(pad int) bool {
	if pad < 0 || pad >= NumPads || pad == s.selected {
		return false
	}
	s.selected = pad
	return true
}

func (s *Sequencer) Current() int  { return s.current }
func (s *Sequencer) Playing() bool { return s.playing }

// SetPlaying updates the transport state. Stopping resets the playhead to 0;
// starting arms it so the first position fires its step.
func (s *Sequencer) SetPlaying(playing bool) bool {
	if playing == s.playing {
		return false
	}
	s.playing = playing
	s.current = 0
	s.armed = playing
	return true
}

// Advance moves the playhead to the step at beats. ok is false when the step
// did not change; otherwise triggers lists every active pad at the new step in
// increasing pad order.
func (s *Sequencer) Advance(beats float64) (Step, bool) {
	next := StepAt(beats, StepLength, NumSteps)
	if next == s.current && !s.armed {
		return Step{}, false
	}
	st := Step{Prev: s.current, Next: next, Triggers: s.Triggers(next)}
	s.current = next
	s.armed = false
	return st, true
}

// Triggers lists the active pads at step.
func (s *Sequencer) Triggers(step int) []Trigger {
	if step < 0 || step >= NumSteps {
		return nil
	}
	var out []Trigger
	for pad := 0; pad < NumPads; pad++ {
		if v := s.pattern[pad][step]; v > 0 {
			out = append(out, Trigger{Pad: pad, Velocity: v})
		}
	}
	return out
}
