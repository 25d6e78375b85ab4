package midi

import (
	"go-linngrid/debug"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// LinnStrumentController handles a LinnStrument connected over USB MIDI
type LinnStrumentController struct {
	id       string
	outPort  drivers.Out
	inPort   drivers.In
	send     func(msg gomidi.Message) error
	stopFunc func()

	events chan Event
}

// NewLinnStrumentController opens the ports of a LinnStrument
func NewLinnStrumentController(id string, inPort drivers.In, outPort drivers.Out) (*LinnStrumentController, error) {
	ls := &LinnStrumentController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		events:  make(chan Event, 64),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, errors.Wrap(err, "open output")
		}
		ls.send = send
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			if ev, ok := decode(msg); ok {
				select {
				case ls.events <- ev:
				default:
					debug.LogEvery(20, "linn-in", "event dropped, queue full")
				}
			}
		})
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		ls.stopFunc = stop
	}

	return ls, nil
}

// decode converts the channel voice messages the surface cares about.
func decode(msg gomidi.Message) (Event, bool) {
	var channel, data1, data2 uint8
	switch {
	case msg.GetNoteOn(&channel, &data1, &data2):
		return NoteOnEvent(channel, data1, data2), true
	case msg.GetNoteOff(&channel, &data1, &data2):
		return NoteOffEvent(channel, data1), true
	case msg.GetControlChange(&channel, &data1, &data2):
		return CCEvent(channel, data1, data2), true
	}
	return Event{}, false
}

func (ls *LinnStrumentController) ID() string {
	return ls.id
}

func (ls *LinnStrumentController) Events() <-chan Event {
	return ls.events
}

func (ls *LinnStrumentController) Send(msg gomidi.Message) error {
	if ls.send == nil {
		return nil
	}
	return ls.send(msg)
}

func (ls *LinnStrumentController) Close() error {
	if ls.stopFunc != nil {
		ls.stopFunc()
	}
	close(ls.events)
	return nil
}
