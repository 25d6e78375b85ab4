package surface

import (
	"context"
	"sync"
	"time"

	"go-linngrid/debug"
	"go-linngrid/grid"
	"go-linngrid/host"
	"go-linngrid/midi"
	"go-linngrid/scale"
)

// Render rate of the control loop, which also advances the transport.
const renderFPS = 30

const statusTTL = 3 * time.Second

// Snapshot is a copy of what the surface shows, for the terminal mirror.
type Snapshot struct {
	Mode      Kind
	LEDs      [][]midi.Color // [row][col]
	Status    string
	Connected bool

	Tempo   float64
	Beats   float64
	Playing bool

	Track     int
	TrackName string
	Tracks    int
	Root      int
	Scale     string

	Octave int
	Pad    int
	Step   int
}

// Driver is the control goroutine: every touch of the machine, the host
// and the LED cache happens inside Run.
type Driver struct {
	song    *host.Song
	out     *midi.Output
	ctx     *Context
	machine *Machine
	initial Kind

	cmds chan func()

	mu        sync.Mutex
	snap      Snapshot
	connected bool

	// UpdateChan receives a value whenever a new snapshot is published.
	UpdateChan chan struct{}
}

func NewDriver(s Settings, song *host.Song, out *midi.Output, initial Kind) *Driver {
	ctx := NewContext(s, song, out)
	d := &Driver{
		song:       song,
		out:        out,
		ctx:        ctx,
		machine:    NewMachine(ctx),
		initial:    initial,
		cmds:       make(chan func(), 32),
		UpdateChan: make(chan struct{}, 1),
	}
	d.snap.Mode = initial
	return d
}

// Run processes controller input, device hot-plug events and posted
// commands in arrival order until ctx is done, then restores the
// instrument.
func (d *Driver) Run(ctx context.Context, devices <-chan midi.DeviceEvent) error {
	d.machine.Start(d.initial)
	defer d.machine.Shutdown()
	d.publish()

	ticker := time.NewTicker(time.Second / renderFPS)
	defer ticker.Stop()

	var ctrl midi.Controller
	var input <-chan midi.Event
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-devices:
			if !ok {
				devices = nil
				continue
			}
			switch ev.Type {
			case midi.DeviceConnected:
				ctrl = ev.Controller
				input = ctrl.Events()
				d.out.Attach(ctrl.Send)
				d.setConnected(true)
				d.machine.Resync()
				debug.Log("driver", "controller %s attached", ev.ID)
			case midi.DeviceDisconnected:
				if ctrl != nil && ctrl.ID() == ev.ID {
					ctrl, input = nil, nil
					d.out.Attach(nil)
					d.setConnected(false)
					debug.Log("driver", "controller %s detached", ev.ID)
				}
			}

		case e, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			d.machine.HandleEvent(e)

		case fn := <-d.cmds:
			fn()
			d.publish()

		case <-ticker.C:
			d.song.Tick()
			d.machine.Tick()
			d.publish()
		}
	}
}

// Post queues fn to run on the control goroutine. It never blocks; when
// the queue is full the command is dropped.
func (d *Driver) Post(fn func()) {
	select {
	case d.cmds <- fn:
	default:
		debug.Log("driver", "command dropped, queue full")
	}
}

func (d *Driver) Cycle() { d.Post(func() { d.machine.Cycle() }) }

func (d *Driver) SwitchTo(k Kind) { d.Post(func() { d.machine.SwitchTo(k) }) }

func (d *Driver) Press(cell grid.Cell) { d.Post(func() { d.machine.Press(cell) }) }

func (d *Driver) TogglePlay() { d.Post(d.song.TogglePlay) }

// Rewind moves the playhead back to the song start without stopping.
func (d *Driver) Rewind() { d.Post(func() { d.song.Seek(0) }) }

func (d *Driver) NudgeTempo(delta float64) {
	d.Post(func() { d.song.SetTempo(d.song.Tempo() + delta) })
}

// StepTrack moves the track selection, wrapping around.
func (d *Driver) StepTrack(delta int) {
	d.Post(func() {
		n := d.song.NumTracks()
		if n == 0 {
			return
		}
		i := ((d.song.SelectedIndex()+delta)%n + n) % n
		if err := d.song.SelectTrack(i); err != nil {
			d.ctx.SetStatus(err.Error())
		}
	})
}

// StepRoot transposes the song scale root by semitones.
func (d *Driver) StepRoot(delta int) {
	d.Post(func() {
		root, name, err := d.song.Scale()
		if err != nil {
			return
		}
		d.setScale(root+delta, name)
	})
}

// StepScale moves through the known scale names.
func (d *Driver) StepScale(delta int) {
	d.Post(func() {
		root, name, err := d.song.Scale()
		if err != nil {
			return
		}
		names := scale.Names()
		i := 0
		for j, n := range names {
			if n == scale.Normalize(name) {
				i = j
			}
		}
		i = ((i+delta)%len(names) + len(names)) % len(names)
		d.setScale(root, names[i])
	})
}

func (d *Driver) setScale(root int, name string) {
	if err := d.song.SetScale(root, name); err != nil {
		d.ctx.SetStatus(err.Error())
		return
	}
	root, _, _ = d.song.Scale()
	d.ctx.SetStatus(scale.PitchClassName(root) + " " + name)
}

func (d *Driver) setConnected(ok bool) {
	d.mu.Lock()
	d.connected = ok
	d.mu.Unlock()
}

// Updates signals each published snapshot.
func (d *Driver) Updates() <-chan struct{} { return d.UpdateChan }

// Snapshot returns the last published state.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

func (d *Driver) publish() {
	s := Snapshot{
		Mode:   d.machine.Current(),
		LEDs:   d.ctx.LEDs.Snapshot(),
		Status: d.ctx.Status(statusTTL),
		Tempo:  d.song.Tempo(),
		Tracks: d.song.NumTracks(),
		Track:  d.song.SelectedIndex(),
		Octave: d.machine.Octave(),
		Pad:    d.machine.Sequencer().Selected(),
		Step:   d.machine.Sequencer().Current(),
	}
	s.Beats, s.Playing = d.song.Position()
	if t, err := d.song.SelectedTrack(); err == nil {
		s.TrackName = t.Name
	}
	s.Root, s.Scale, _ = d.song.Scale()

	d.mu.Lock()
	s.Connected = d.connected
	d.snap = s
	d.mu.Unlock()

	select {
	case d.UpdateChan <- struct{}{}:
	default:
	}
}
