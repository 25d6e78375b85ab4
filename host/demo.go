package host

import "go-linngrid/stepseq"

// TrackSpec describes a track to create.
type TrackSpec struct {
	Name  string
	Color [3]uint8
	Drums bool
	Kit   string
	Clips []int // scenes holding a clip
}

// Build creates a song from track specs. Drum tracks get a sampler with
// every pad loaded.
func Build(specs []TrackSpec, scenes int, opts ...Option) *Song {
	tracks := make([]*Track, 0, len(specs))
	for _, sp := range specs {
		t := &Track{Name: sp.Name, Color: sp.Color}
		t.ensureSlots(scenes)
		if sp.Drums {
			kit := sp.Kit
			if kit == "" {
				kit = stepseq.DefaultKit
			}
			t.Sampler = &Sampler{Kit: kit}
			for i := range t.Sampler.Loaded {
				t.Sampler.Loaded[i] = true
			}
		}
		for _, scene := range sp.Clips {
			if scene >= 0 && scene < scenes {
				t.Slots[scene] = &Clip{Name: sp.Name, Color: sp.Color, Length: BeatsPerBar}
			}
		}
		tracks = append(tracks, t)
	}
	return New(tracks, scenes, opts...)
}

// DefaultTracks is the session used when nothing is configured.
var DefaultTracks = []TrackSpec{
	{Name: "Drums", Color: [3]uint8{255, 80, 0}, Drums: true, Clips: []int{0, 1, 2}},
	{Name: "Bass", Color: [3]uint8{0, 100, 255}, Clips: []int{0, 1}},
	{Name: "Keys", Color: [3]uint8{0, 220, 40}, Clips: []int{0, 2, 3}},
	{Name: "Lead", Color: [3]uint8{220, 0, 200}, Clips: []int{1, 3}},
}

const DefaultScenes = 8
