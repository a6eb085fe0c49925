package pad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// DefaultPortFilter selects the StarryPad among enumerated MIDI ports.
const DefaultPortFilter = "starry"

// ErrNoDevice is returned when no MIDI input port matches the filter.
// The condition is recoverable: the caller may retry after the device
// is plugged in.
var ErrNoDevice = errors.New("pad: no matching MIDI input found")

// MIDIDevice drives a StarryPad over MIDI. An input port is required; an
// output port is optional, the game just runs without physical lights.
type MIDIDevice struct {
	in      drivers.In
	send    func(gomidi.Message) error
	stop    func()
	presses chan Press
	logger  *log.Logger
}

// Open finds the first MIDI input/output port pair whose name contains
// filter (case-insensitive) and opens it.
func Open(filter string, logger *log.Logger) (*MIDIDevice, error) {
	if filter == "" {
		filter = DefaultPortFilter
	}
	key := strings.ToLower(filter)

	var in drivers.In
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), key) {
			in = p
			break
		}
	}
	if in == nil {
		return nil, fmt.Errorf("%w (filter %q)", ErrNoDevice, filter)
	}

	var out drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), key) {
			out = p
			break
		}
	}

	d := &MIDIDevice{
		in:      in,
		presses: make(chan Press, 32),
		logger:  logger,
	}

	if out != nil {
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("pad: open output %s: %w", out, err)
		}
		d.send = send
	} else {
		logger.Warn("no MIDI output port found, pads will not light", "filter", filter)
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, note, vel uint8
		if !msg.GetNoteOn(&ch, &note, &vel) {
			return
		}
		// Zero-velocity note-ons pass through as release signals; the
		// consumer discards them.
		select {
		case d.presses <- Press{Note: note, Velocity: vel}:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("pad: open input %s: %w", in, err)
	}
	d.stop = stop

	logger.Info("StarryPad connected", "in", in.String())
	return d, nil
}

// Presses returns the raw press channel.
func (d *MIDIDevice) Presses() <-chan Press {
	return d.presses
}

// SetPad lights or unlights a pad. Unlighting sends both a note-off and
// a zero-velocity note-on; some firmware revisions only honor the latter.
func (d *MIDIDevice) SetPad(i Index, on bool) error {
	if d.send == nil || !i.Valid() {
		return nil
	}
	note := i.Note()
	if on {
		return d.send(gomidi.NoteOn(0, note, 127))
	}
	if err := d.send(gomidi.NoteOff(0, note)); err != nil {
		return err
	}
	return d.send(gomidi.NoteOn(0, note, 0))
}

// Close unlights every pad and stops listening.
func (d *MIDIDevice) Close() error {
	for i := Index(0); i < Count; i++ {
		if err := d.SetPad(i, false); err != nil {
			d.logger.Debug("clear pad failed", "pad", int(i), "err", err)
		}
	}
	if d.stop != nil {
		d.stop()
	}
	close(d.presses)
	return nil
}

// AvailablePorts lists the names of all MIDI ports currently visible.
// Used for diagnostics when no device matches the filter.
func AvailablePorts() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}
