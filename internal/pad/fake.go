package pad

import "sync"

// LightOp records one SetPad call on a Fake device.
type LightOp struct {
	Pad Index
	On  bool
}

// Fake is an in-memory Device for tests. Presses are injected with
// Press/PressNote and every SetPad call is recorded.
type Fake struct {
	mu      sync.Mutex
	presses chan Press
	ops     []LightOp
	closed  bool
}

// NewFake returns a Fake with a buffered press channel.
func NewFake() *Fake {
	return &Fake{presses: make(chan Press, 32)}
}

// Press injects a press of the given pad.
func (f *Fake) Press(i Index, velocity uint8) {
	f.PressNote(i.Note(), velocity)
}

// PressNote injects a raw press, mapped or not.
func (f *Fake) PressNote(note, velocity uint8) {
	f.presses <- Press{Note: note, Velocity: velocity}
}

func (f *Fake) Presses() <-chan Press {
	return f.presses
}

func (f *Fake) SetPad(i Index, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, LightOp{Pad: i, On: on})
	return nil
}

// Ops returns a copy of all recorded SetPad calls.
func (f *Fake) Ops() []LightOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]LightOp, len(f.ops))
	copy(out, f.ops)
	return out
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.presses)
	}
	return nil
}

// Closed reports whether Close has been called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var _ Device = (*Fake)(nil)
