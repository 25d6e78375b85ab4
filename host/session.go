package host

import (
	"go-linngrid/debug"
	"go-linngrid/stepseq"

	"github.com/pkg/errors"
)

// ClipState is the launch state of a clip slot.
type ClipState int

const (
	ClipEmpty ClipState = iota
	ClipStopped
	ClipTriggered
	ClipPlaying
	ClipRecording
)

func (c ClipState) String() string {
	switch c {
	case ClipStopped:
		return "stopped"
	case ClipTriggered:
		return "triggered"
	case ClipPlaying:
		return "playing"
	case ClipRecording:
		return "recording"
	}
	return "empty"
}

// Note is one note of a clip, in beats from the clip start.
type Note struct {
	Pitch    uint8
	Start    float64
	Length   float64
	Velocity uint8
}

// Clip is the content of a clip slot.
type Clip struct {
	Name   string
	Color  [3]uint8
	Length float64
	Notes  []Note

	state    ClipState
	launchAt float64
}

func (c *Clip) State() ClipState {
	if c == nil {
		return ClipEmpty
	}
	return c.state
}

// SetNote adds, replaces or (velocity 0) removes the note at pitch/start.
func (c *Clip) SetNote(pitch uint8, start, length float64, velocity uint8) {
	for i, n := range c.Notes {
		if n.Pitch == pitch && n.Start == start {
			if velocity == 0 {
				c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			} else {
				c.Notes[i] = Note{Pitch: pitch, Start: start, Length: length, Velocity: velocity}
			}
			return
		}
	}
	if velocity > 0 {
		c.Notes = append(c.Notes, Note{Pitch: pitch, Start: start, Length: length, Velocity: velocity})
	}
}

// Sampler is a drum instrument with one slot per pad.
type Sampler struct {
	Kit    string
	Loaded [stepseq.NumPads]bool
}

// Note returns the MIDI note for pad from the sampler's kit.
func (s *Sampler) Note(pad int) (uint8, bool) {
	return stepseq.GetKit(s.Kit).Note(pad)
}

// Track is one channel of the session.
type Track struct {
	Name    string
	Color   [3]uint8
	Sampler *Sampler
	Slots   []*Clip // nil entry = empty slot
}

func (t *Track) ensureSlots(n int) {
	for len(t.Slots) < n {
		t.Slots = append(t.Slots, nil)
	}
	for _, c := range t.Slots {
		if c != nil && c.state == ClipEmpty {
			c.state = ClipStopped
		}
	}
}

func (t *Track) slot(scene int) *Clip {
	if scene < 0 || scene >= len(t.Slots) {
		return nil
	}
	return t.Slots[scene]
}

// PlayingClip returns the clip currently playing on the track.
func (t *Track) PlayingClip() (int, *Clip) {
	for i, c := range t.Slots {
		if c.State() == ClipPlaying || c.State() == ClipRecording {
			return i, c
		}
	}
	return -1, nil
}

// ClipInfo is what a clip-launch surface needs for one slot.
type ClipInfo struct {
	State ClipState
	Color [3]uint8
}

// ClipAt describes the slot at track/scene. Out-of-range slots are empty.
func (s *Song) ClipAt(track, scene int) (ClipInfo, error) {
	if err := s.check(); err != nil {
		return ClipInfo{}, err
	}
	if track < 0 || track >= len(s.tracks) {
		return ClipInfo{}, nil
	}
	c := s.tracks[track].slot(scene)
	if c == nil {
		return ClipInfo{}, nil
	}
	return ClipInfo{State: c.State(), Color: c.Color}, nil
}

// FireClip launches a clip. While playing, the launch is quantised to the
// next bar; when stopped, the clip plays at once and the transport starts.
func (s *Song) FireClip(track, scene int) error {
	if err := s.check(); err != nil {
		return err
	}
	if track < 0 || track >= len(s.tracks) || scene < 0 || scene >= s.scenes {
		return errors.Errorf("slot %d/%d out of range", track, scene)
	}
	if s.tracks[track].slot(scene) == nil {
		// an empty slot acts as the track's stop button
		return s.StopTrack(track)
	}
	s.trigger(track, scene)
	s.notify(SessionChanged)
	s.Play()
	return nil
}

// FireScene launches every clip in a scene row.
func (s *Song) FireScene(scene int) error {
	if err := s.check(); err != nil {
		return err
	}
	if scene < 0 || scene >= s.scenes {
		return errors.Errorf("scene %d out of range", scene)
	}
	for i, t := range s.tracks {
		if t.slot(scene) != nil {
			s.trigger(i, scene)
		}
	}
	s.notify(SessionChanged)
	s.Play()
	return nil
}

func (s *Song) trigger(track, scene int) {
	t := s.tracks[track]
	c := t.slot(scene)
	for _, other := range t.Slots {
		if other != nil && other != c && other.state == ClipTriggered {
			other.state = ClipStopped
		}
	}
	c.state = ClipTriggered
	c.launchAt = 0
	if beats, playing := s.Position(); playing {
		c.launchAt = NextBar(beats)
	}
	debug.Log("host", "fire %s/%d at %.2f", t.Name, scene, c.launchAt)
}

// StopTrack stops whatever the track is playing or has queued.
func (s *Song) StopTrack(track int) error {
	if err := s.check(); err != nil {
		return err
	}
	if track < 0 || track >= len(s.tracks) {
		return errors.Errorf("track %d out of range", track)
	}
	changed := false
	for _, c := range s.tracks[track].Slots {
		if c != nil && c.state != ClipStopped {
			c.state = ClipStopped
			changed = true
		}
	}
	if changed {
		s.notify(SessionChanged)
	}
	return nil
}

// launchDue moves triggered clips whose boundary has passed to playing.
func (s *Song) launchDue(beats float64) bool {
	changed := false
	for _, t := range s.tracks {
		for _, c := range t.Slots {
			if c == nil || c.state != ClipTriggered || beats < c.launchAt {
				continue
			}
			for _, other := range t.Slots {
				if other != nil && other != c && (other.state == ClipPlaying || other.state == ClipRecording) {
					other.state = ClipStopped
				}
			}
			c.state = ClipPlaying
			changed = true
		}
	}
	return changed
}

func (s *Song) launchTriggered() {
	if s.launchDue(s.transport.Beats()) {
		s.notify(SessionChanged)
	}
}

func (s *Song) stopAllClips() {
	changed := false
	for _, t := range s.tracks {
		for _, c := range t.Slots {
			if c != nil && c.state != ClipStopped {
				c.state = ClipStopped
				changed = true
			}
		}
	}
	if changed {
		s.notify(SessionChanged)
	}
}

// WriteStep records a drum step into the clip playing on the selected track,
// or its first clip when nothing plays. A clip is created in the first slot
// when the track has none. Velocity 0 removes the note.
func (s *Song) WriteStep(pitch uint8, start, length float64, velocity uint8) error {
	t, err := s.SelectedTrack()
	if err != nil {
		return err
	}
	_, c := t.PlayingClip()
	if c == nil {
		for _, slot := range t.Slots {
			if slot != nil {
				c = slot
				break
			}
		}
	}
	if c == nil {
		if velocity == 0 || len(t.Slots) == 0 {
			return nil
		}
		c = &Clip{Name: t.Name, Color: t.Color, Length: BeatsPerBar, state: ClipStopped}
		t.Slots[0] = c
		s.notify(SessionChanged)
	}
	c.SetNote(pitch, start, length, velocity)
	return nil
}
