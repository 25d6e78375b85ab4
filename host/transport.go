package host

import "time"

const (
	DefaultTempo = 120.0
	MinTempo     = 20.0
	MaxTempo     = 300.0

	BeatsPerBar = 4.0
)

// Transport is a wall-clock driven song position in beats. Position is
// recomputed from the start time on every Advance, so a late tick never
// accumulates drift.
type Transport struct {
	tempo   float64
	playing bool
	t0      time.Time // wall clock at beat origin
	origin  float64   // beats at t0
	beats   float64
}

func NewTransport(tempo float64) *Transport {
	t := &Transport{}
	t.setTempo(tempo)
	return t
}

func clampTempo(bpm float64) float64 {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

func (t *Transport) setTempo(bpm float64) {
	t.tempo = clampTempo(bpm)
}

func (t *Transport) Tempo() float64 { return t.tempo }
func (t *Transport) Playing() bool  { return t.playing }
func (t *Transport) Beats() float64 { return t.beats }

// SetTempo changes the tempo without moving the current position.
func (t *Transport) SetTempo(bpm float64, now time.Time) {
	if t.playing {
		t.Advance(now)
		t.origin = t.beats
		t.t0 = now
	}
	t.setTempo(bpm)
}

// Start begins playback from the current position. Reports whether the state
// changed.
func (t *Transport) Start(now time.Time) bool {
	if t.playing {
		return false
	}
	t.playing = true
	t.t0 = now
	t.origin = t.beats
	return true
}

// Stop halts playback and rewinds to the song start.
func (t *Transport) Stop() bool {
	if !t.playing {
		return false
	}
	t.playing = false
	t.beats = 0
	t.origin = 0
	return true
}

// Seek jumps to beats.
func (t *Transport) Seek(beats float64, now time.Time) {
	if beats < 0 {
		beats = 0
	}
	t.beats = beats
	t.origin = beats
	t.t0 = now
}

// Advance recomputes the position for now and returns it.
func (t *Transport) Advance(now time.Time) float64 {
	if !t.playing {
		return t.beats
	}
	elapsed := now.Sub(t.t0).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	t.beats = t.origin + elapsed*t.tempo/60.0
	return t.beats
}

// NextBar returns the first bar boundary strictly after beats.
func NextBar(beats float64) float64 {
	bar := float64(int(beats/BeatsPerBar)+1) * BeatsPerBar
	return bar
}
