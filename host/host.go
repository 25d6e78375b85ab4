// Package host is an in-process stand-in for the sequencing application the
// surface controls: tracks with clip slots, scenes, per-track drum samplers,
// a song scale, and a transport. It is owned by the surface driver goroutine
// and is not safe for concurrent use.
package host

import (
	"time"

	"go-linngrid/debug"
	"go-linngrid/scale"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned by queries while the host cannot answer.
var ErrUnavailable = errors.New("host unavailable")

// Event is a kind of change notification.
type Event int

const (
	SelectedTrackChanged Event = iota
	ScaleChanged
	PositionChanged
	PlayingChanged
	SessionChanged
	TempoChanged

	numEvents
)

var eventNames = [numEvents]string{
	"selected-track", "scale", "position", "playing", "session", "tempo",
}

func (e Event) String() string {
	if e >= 0 && e < numEvents {
		return eventNames[e]
	}
	return "unknown"
}

// NoteOutput plays notes on the instrument behind the selected track.
type NoteOutput interface {
	Note(note, velocity uint8) error
	Trigger(note, velocity uint8) error
	ControlChange(cc, value uint8) error
}

// Subscription is a registered listener. Release is idempotent.
type Subscription struct {
	song   *Song
	event  Event
	fn     func()
	active bool
}

func (s *Subscription) Release() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.song.remove(s)
}

func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Song is the host model.
type Song struct {
	tracks   []*Track
	scenes   int
	selected int

	root      int
	scaleName string

	transport *Transport
	out       NoteOutput
	now       func() time.Time

	available bool
	listeners [numEvents][]*Subscription
}

// Option configures a Song.
type Option func(*Song)

func WithClock(now func() time.Time) Option {
	return func(s *Song) { s.now = now }
}

func WithOutput(out NoteOutput) Option {
	return func(s *Song) { s.out = out }
}

func WithTempo(bpm float64) Option {
	return func(s *Song) { s.transport.setTempo(bpm) }
}

// New creates a song with the given tracks and scene count.
func New(tracks []*Track, scenes int, opts ...Option) *Song {
	s := &Song{
		tracks:    tracks,
		scenes:    scenes,
		scaleName: "major",
		transport: NewTransport(DefaultTempo),
		now:       time.Now,
		available: true,
	}
	for _, t := range s.tracks {
		t.ensureSlots(scenes)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for ev. Listeners run synchronously on the caller's
// goroutine; a listener may subscribe or release during dispatch.
func (s *Song) Subscribe(ev Event, fn func()) *Subscription {
	sub := &Subscription{song: s, event: ev, fn: fn, active: true}
	s.listeners[ev] = append(s.listeners[ev], sub)
	return sub
}

func (s *Song) remove(sub *Subscription) {
	list := s.listeners[sub.event]
	for i, l := range list {
		if l == sub {
			s.listeners[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Listeners returns how many listeners are registered for ev.
func (s *Song) Listeners(ev Event) int {
	return len(s.listeners[ev])
}

func (s *Song) notify(ev Event) {
	list := append([]*Subscription(nil), s.listeners[ev]...)
	for _, sub := range list {
		if sub.active {
			sub.fn()
		}
	}
}

// SetAvailable simulates the host going away; queries fail with
// ErrUnavailable until it is back.
func (s *Song) SetAvailable(ok bool) {
	s.available = ok
}

func (s *Song) check() error {
	if !s.available {
		return ErrUnavailable
	}
	return nil
}

// Scale

func (s *Song) Scale() (root int, name string, err error) {
	if err := s.check(); err != nil {
		return 0, "", err
	}
	return s.root, s.scaleName, nil
}

func (s *Song) SetScale(root int, name string) error {
	if _, err := scale.Lookup(name); err != nil {
		return errors.Wrap(err, "set scale")
	}
	root = ((root % 12) + 12) % 12
	if root == s.root && name == s.scaleName {
		return nil
	}
	s.root, s.scaleName = root, name
	debug.Log("host", "scale %s %s", scale.PitchClassName(root), name)
	s.notify(ScaleChanged)
	return nil
}

// Tracks

func (s *Song) NumTracks() int { return len(s.tracks) }
func (s *Song) NumScenes() int { return s.scenes }

func (s *Song) Track(i int) (*Track, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(s.tracks) {
		return nil, errors.Errorf("track %d out of range", i)
	}
	return s.tracks[i], nil
}

func (s *Song) SelectedIndex() int { return s.selected }

func (s *Song) SelectedTrack() (*Track, error) {
	return s.Track(s.selected)
}

func (s *Song) SelectTrack(i int) error {
	if i < 0 || i >= len(s.tracks) {
		return errors.Errorf("track %d out of range", i)
	}
	if i == s.selected {
		return nil
	}
	s.selected = i
	debug.Log("host", "selected track %d %q", i, s.tracks[i].Name)
	s.notify(SelectedTrackChanged)
	return nil
}

// SelectedSampler returns the drum sampler on the selected track, if any.
func (s *Song) SelectedSampler() (*Sampler, bool, error) {
	t, err := s.SelectedTrack()
	if err != nil {
		return nil, false, err
	}
	return t.Sampler, t.Sampler != nil, nil
}

// Notes

// PlayNote forwards a live note to the selected track's instrument.
func (s *Song) PlayNote(note, velocity uint8) error {
	if s.out == nil {
		return nil
	}
	return errors.Wrap(s.out.Note(note, velocity), "play note")
}

// TriggerNote plays a one-shot hit on the selected track's instrument.
func (s *Song) TriggerNote(note, velocity uint8) error {
	if s.out == nil {
		return nil
	}
	return errors.Wrap(s.out.Trigger(note, velocity), "trigger note")
}

// ForwardCC passes a controller message through to the instrument.
func (s *Song) ForwardCC(cc, value uint8) error {
	if s.out == nil {
		return nil
	}
	return errors.Wrap(s.out.ControlChange(cc, value), "forward cc")
}

// Transport

func (s *Song) Position() (beats float64, playing bool) {
	return s.transport.Beats(), s.transport.Playing()
}

func (s *Song) Tempo() float64 { return s.transport.Tempo() }

func (s *Song) SetTempo(bpm float64) {
	before := s.transport.Tempo()
	s.transport.SetTempo(bpm, s.now())
	if s.transport.Tempo() != before {
		s.notify(TempoChanged)
	}
}

func (s *Song) Play() {
	if s.transport.Start(s.now()) {
		debug.Log("host", "play at %.2f", s.transport.Beats())
		s.launchTriggered()
		s.notify(PlayingChanged)
		s.notify(PositionChanged)
	}
}

func (s *Song) Stop() {
	if s.transport.Stop() {
		debug.Log("host", "stop")
		s.stopAllClips()
		s.notify(PlayingChanged)
		s.notify(PositionChanged)
	}
}

// Seek moves the playhead to beats, playing or not. Negative positions
// clamp to the song start.
func (s *Song) Seek(beats float64) {
	before := s.transport.Beats()
	s.transport.Seek(beats, s.now())
	if s.transport.Beats() == before {
		return
	}
	debug.Log("host", "seek %.2f -> %.2f", before, s.transport.Beats())
	s.notify(PositionChanged)
}

func (s *Song) TogglePlay() {
	if s.transport.Playing() {
		s.Stop()
	} else {
		s.Play()
	}
}

// Tick advances the transport to the current wall-clock time, launches clips
// whose quantisation boundary has passed and notifies listeners.
func (s *Song) Tick() {
	if !s.transport.Playing() {
		return
	}
	before := s.transport.Beats()
	beats := s.transport.Advance(s.now())
	if beats == before {
		return
	}
	if s.launchDue(beats) {
		s.notify(SessionChanged)
	}
	s.notify(PositionChanged)
}
