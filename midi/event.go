package midi

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is a decoded input message from the controller
type Event struct {
	Type    uint8 // NoteOn, NoteOff, CC
	Channel uint8
	Data1   uint8 // note or controller number
	Data2   uint8 // velocity or value
}

func (e Event) Note() uint8       { return e.Data1 }
func (e Event) Velocity() uint8   { return e.Data2 }
func (e Event) Controller() uint8 { return e.Data1 }
func (e Event) Value() uint8      { return e.Data2 }

// NoteOnEvent builds a note-on event; velocity 0 is normalised to note-off.
func NoteOnEvent(ch, note, velocity uint8) Event {
	if velocity == 0 {
		return Event{Type: NoteOff, Channel: ch, Data1: note}
	}
	return Event{Type: NoteOn, Channel: ch, Data1: note, Data2: velocity}
}

func NoteOffEvent(ch, note uint8) Event {
	return Event{Type: NoteOff, Channel: ch, Data1: note}
}

func CCEvent(ch, cc, value uint8) Event {
	return Event{Type: CC, Channel: ch, Data1: cc, Data2: value}
}
