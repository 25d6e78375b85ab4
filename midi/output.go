package midi

import (
	"sync"
	"sync/atomic"

	"go-linngrid/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// SendFunc writes one message to a port, as returned by gomidi.SendTo.
type SendFunc func(msg gomidi.Message) error

// Output serialises message groups to the controller. A group passed to Send
// is never interleaved with another group. With no port attached every write
// is dropped, so callers need not care whether the device is connected.
type Output struct {
	mu      sync.Mutex
	send    SendFunc
	channel uint8
	sent    uint64
}

func NewOutput(channel uint8) *Output {
	return &Output{channel: channel}
}

// Attach routes writes to send; nil detaches.
func (o *Output) Attach(send SendFunc) {
	o.mu.Lock()
	o.send = send
	o.mu.Unlock()
}

func (o *Output) Connected() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.send != nil
}

func (o *Output) Channel() uint8 {
	return o.channel
}

// Send writes msgs as one atomic group. Errors are logged and the rest of the
// group is still attempted; nothing is retried.
func (o *Output) Send(msgs ...gomidi.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.send == nil {
		return nil
	}

	var first error
	for _, m := range msgs {
		if err := o.send(m); err != nil {
			debug.LogEvery(50, "out", "send failed: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	atomic.AddUint64(&o.sent, uint64(len(msgs)))
	return first
}

// WriteCell sets one cell's colour.
func (o *Output) WriteCell(col, row int, c Color) error {
	return o.Send(CellColor(o.channel, col, row, c)...)
}

// WriteNRPN sets a device parameter.
func (o *Output) WriteNRPN(param, value int) error {
	debug.Log("out", "nrpn %d = %d", param, value)
	return o.Send(NRPN(o.channel, param, value)...)
}

// Sent returns the number of messages written since creation.
func (o *Output) Sent() uint64 {
	return atomic.LoadUint64(&o.sent)
}

// Trigger sends a note-on immediately followed by its note-off, the way a
// one-shot drum hit is played on the synth output.
func (o *Output) Trigger(note, velocity uint8) error {
	return o.Send(gomidi.NoteOn(o.channel, note, velocity), gomidi.NoteOff(o.channel, note))
}

// Note sends a note-on, or a note-off when velocity is 0.
func (o *Output) Note(note, velocity uint8) error {
	if velocity == 0 {
		return o.Send(gomidi.NoteOff(o.channel, note))
	}
	return o.Send(gomidi.NoteOn(o.channel, note, velocity))
}

// ControlChange sends a single CC on the output channel.
func (o *Output) ControlChange(cc, value uint8) error {
	return o.Send(gomidi.ControlChange(o.channel, cc, value))
}
