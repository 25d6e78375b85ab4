// Package scale holds scale interval tables and note naming.
package scale

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Intervals are semitones above the root.
var Intervals = map[string][]int{
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"ionian":     {0, 2, 4, 5, 7, 9, 11},
	"dorian":     {0, 2, 3, 5, 7, 9, 10},
	"phrygian":   {0, 1, 3, 5, 7, 8, 10},
	"lydian":     {0, 2, 4, 6, 7, 9, 11},
	"mixolydian": {0, 2, 4, 5, 7, 9, 10},
	"aeolian":    {0, 2, 3, 5, 7, 8, 10},
	"locrian":    {0, 1, 3, 5, 6, 8, 10},

	"minor":          {0, 2, 3, 5, 7, 8, 10},
	"harmonic_minor": {0, 2, 3, 5, 7, 8, 11},
	"melodic_minor":  {0, 2, 3, 5, 7, 9, 11},

	"major_pentatonic": {0, 2, 4, 7, 9},
	"minor_pentatonic": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},

	"whole_tone": {0, 2, 4, 6, 8, 10},
	"chromatic":  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"diminished": {0, 2, 3, 5, 6, 8, 9, 11},
	"augmented":  {0, 3, 4, 7, 8, 11},

	"bebop_major": {0, 2, 4, 5, 7, 8, 9, 11},
	"bebop_minor": {0, 2, 3, 5, 7, 8, 9, 10},
	"altered":     {0, 1, 3, 4, 6, 8, 10},

	"harmonic_major":  {0, 2, 4, 5, 7, 8, 11},
	"double_harmonic": {0, 1, 4, 5, 7, 8, 11},
	"hungarian_minor": {0, 2, 3, 6, 7, 8, 11},
	"japanese":        {0, 1, 5, 7, 8},
	"spanish":         {0, 1, 4, 5, 7, 8, 10},
}

// hostNames maps the display names a DAW uses to table keys.
var hostNames = map[string]string{
	"Major":            "major",
	"Minor":            "minor",
	"Dorian":           "dorian",
	"Mixolydian":       "mixolydian",
	"Lydian":           "lydian",
	"Phrygian":         "phrygian",
	"Locrian":          "locrian",
	"Diminished":       "diminished",
	"Whole Half":       "diminished",
	"Whole Tone":       "whole_tone",
	"Minor Blues":      "blues",
	"Minor Pentatonic": "minor_pentatonic",
	"Major Pentatonic": "major_pentatonic",
	"Harmonic Minor":   "harmonic_minor",
	"Melodic Minor":    "melodic_minor",
	"Super Locrian":    "altered",
	"Bhairav":          "double_harmonic",
	"Hungarian Minor":  "hungarian_minor",
	"Minor Gypsy":      "hungarian_minor",
	"Hirojoshi":        "japanese",
	"In-Sen":           "japanese",
	"Iwato":            "japanese",
	"Kumoi":            "japanese",
	"Pelog":            "japanese",
	"Spanish":          "spanish",
}

var (
	noteNames     = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	noteNamesFlat = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// Normalize turns a table key or a host display name ("Minor Pentatonic")
// into a table key.
func Normalize(name string) string {
	if key, ok := hostNames[name]; ok {
		return key
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Lookup returns the intervals for name, accepting host display names.
func Lookup(name string) ([]int, error) {
	key := Normalize(name)
	iv, ok := Intervals[key]
	if !ok {
		return nil, errors.Errorf("unknown scale %q", name)
	}
	return iv, nil
}

// Set is a membership table over pitch classes.
type Set [12]bool

func (s Set) Contains(pitch int) bool {
	return s[((pitch%12)+12)%12]
}

// PitchClasses returns the pitch classes of root + scale.
func PitchClasses(root int, name string) (Set, error) {
	iv, err := Lookup(name)
	if err != nil {
		return Set{}, err
	}
	var s Set
	for _, i := range iv {
		s[((root+i)%12+12)%12] = true
	}
	return s, nil
}

// Notes lists every MIDI note in the scale, ascending.
func Notes(root int, name string) ([]int, error) {
	set, err := PitchClasses(root, name)
	if err != nil {
		return nil, err
	}
	var out []int
	for n := 0; n <= 127; n++ {
		if set.Contains(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Names returns the table keys, sorted.
func Names() []string {
	names := make([]string, 0, len(Intervals))
	for k := range Intervals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NoteName formats a MIDI note with its octave; 60 is C4.
func NoteName(note int) string {
	return fmt.Sprintf("%s%d", noteNames[((note%12)+12)%12], note/12-1)
}

// PitchClassName names a pitch class 0-11.
func PitchClassName(pc int) string {
	return noteNames[((pc%12)+12)%12]
}

// ParseRoot accepts "C", "c#", "Eb" and returns 0-11.
func ParseRoot(name string) (int, error) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for i := range noteNames {
		if strings.ToUpper(noteNames[i]) == up || strings.ToUpper(noteNamesFlat[i]) == up {
			return i, nil
		}
	}
	return 0, errors.Errorf("unknown note name %q", name)
}
