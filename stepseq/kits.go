package stepseq

import "sort"

// Kit maps the 16 drum pads to MIDI notes
type Kit struct {
	Name  string
	Notes [NumPads]uint8
}

// Note returns the note for pad, ok=false for out-of-range pads.
func (k Kit) Note(pad int) (uint8, bool) {
	if pad < 0 || pad >= NumPads {
		return 0, false
	}
	return k.Notes[pad], true
}

// Pad returns the first pad playing note.
func (k Kit) Pad(note uint8) (int, bool) {
	for i, n := range k.Notes {
		if n == note {
			return i, true
		}
	}
	return 0, false
}

func rackNotes() [NumPads]uint8 {
	var n [NumPads]uint8
	for i := range n {
		n[i] = uint8(RackBaseNote + i)
	}
	return n
}

// RackBaseNote is the note of pad 0 in a chromatic drum rack.
const RackBaseNote = 36

// Kits contains all available drum kit mappings. Pad order is the grid
// order: pad = row*4 + column, bottom-left first.
var Kits = map[string]Kit{
	"rack": {
		Name:  "Drum Rack",
		Notes: rackNotes(),
	},
	"gm": {
		Name: "General MIDI",
		Notes: [NumPads]uint8{
			36, // Kick
			38, // Snare
			42, // Closed HH
			46, // Open HH
			41, // Low Tom
			43, // Mid Tom
			45, // High Tom
			49, // Crash
			51, // Ride
			39, // Clap
			37, // Rimshot
			56, // Cowbell
			75, // Clave
			70, // Maracas
			64, // Low Conga
			63, // High Conga
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: [NumPads]uint8{
			36, // BD
			40, // SD, the RD-8 uses 40 rather than 38
			42, // CH
			46, // OH
			45, // LT
			48, // MT
			50, // HT
			49, // CY
			51, // RC
			39, // CP
			37, // RS
			56, // CB
			75, // CL
			70, // MA
			64, // LC
			63, // HC
		},
	},
	"tr8s": {
		Name: "Roland TR-8S",
		Notes: [NumPads]uint8{
			36, 38, 42, 46, 41, 43, 45, 49,
			51, 39, 37, 56, 75, 70, 62, 63,
		},
	},
}

// DefaultKit is the default kit name
const DefaultKit = "rack"

// KitNames returns the available kit names, sorted
func KitNames() []string {
	names := make([]string, 0, len(Kits))
	for name := range Kits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKit returns a kit by name, defaulting to the drum rack if not found
func GetKit(name string) Kit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}
