// Package pad models the 4x4 pad grid of the StarryPad controller and
// provides its MIDI binding. The engine only ever sees pad indices;
// translation to device-native MIDI notes happens here.
package pad

// The 16 pads send 16 consecutive MIDI notes starting at NoteMin.
const (
	NoteMin uint8 = 31
	NoteMax uint8 = 46

	// Count is the number of pads on the controller.
	Count = 16
)

// Index identifies one of the 16 pads, in [0, Count).
type Index int

// Valid reports whether i refers to a real pad.
func (i Index) Valid() bool {
	return i >= 0 && i < Count
}

// Note returns the MIDI note the pad sends and listens on.
// Only meaningful for valid indices.
func (i Index) Note() uint8 {
	return NoteMin + uint8(i)
}

// FromNote maps a MIDI note to a pad index. Notes outside the pad range
// are not pads; callers must ignore them.
func FromNote(note uint8) (Index, bool) {
	if note < NoteMin || note > NoteMax {
		return -1, false
	}
	return Index(note - NoteMin), true
}

// Press is a raw press report from the controller. A velocity of zero is
// a release signal, not a press.
type Press struct {
	Note     uint8
	Velocity uint8
}

// Device is the engine's view of a pad controller.
type Device interface {
	// Presses returns the channel raw presses arrive on. The channel is
	// buffered; consumers drain it non-blockingly with a default case.
	Presses() <-chan Press

	// SetPad turns a pad light on or off. Implementations without an
	// output port return nil and do nothing.
	SetPad(i Index, on bool) error

	Close() error
}
