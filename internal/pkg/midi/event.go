package midi

import (
	"fmt"

	"github.com/gethiox/midinames/internal/pkg/midi/channel"
	"github.com/gethiox/midinames/internal/pkg/midi/control"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const (
	// message types
	NoteOff               uint8 = 0b1000 << 4
	NoteOn                uint8 = 0b1001 << 4
	PolyphonicKeyPressure uint8 = 0b1010 << 4 // After-touch
	ControlChange         uint8 = 0b1011 << 4
	ProgramChange         uint8 = 0b1100 << 4
	ChannelPressure       uint8 = 0b1101 << 4 // After-touch
	PitchWheelChange      uint8 = 0b1110 << 4
)

// dataLength is the number of data bytes following a channel voice status byte
var dataLength = map[uint8]int{
	NoteOff:               2,
	NoteOn:                2,
	PolyphonicKeyPressure: 2,
	ControlChange:         2,
	ProgramChange:         1,
	ChannelPressure:       1,
	PitchWheelChange:      2,
}

func noteToString(note byte) string {
	return fmt.Sprintf("%-2s%2d", NoteToPitch(note), NoteToOctave(note))
}

type Event []byte

// Channel returns the channel of the status byte, Channel1 for an empty event.
func (e Event) Channel() channel.Channel {
	if len(e) == 0 {
		return channel.Channel1
	}
	return channel.Channel(e[0] & 0b1111)
}

// Type returns the message type of the status byte, 0 for an empty event.
func (e Event) Type() uint8 {
	if len(e) == 0 {
		return 0
	}
	return e[0] & 0b11110000
}

// Valid reports whether e is a complete channel voice message.
func (e Event) Valid() bool {
	if len(e) == 0 {
		return false
	}
	n, ok := dataLength[e.Type()]
	if !ok || len(e) != n+1 {
		return false
	}
	for _, b := range e[1:] {
		if b > 0x7f {
			return false
		}
	}
	return true
}

// ControlChange decodes e as a Control Change message.
func (e Event) ControlChange() (channel.Channel, control.Control, uint8, bool) {
	var ch, cc, val uint8
	if !gomidi.Message(e).GetControlChange(&ch, &cc, &val) {
		return 0, 0, 0, false
	}
	return channel.Channel(ch), control.Control(cc), val, true
}

func (e Event) String() string {
	if len(e) == 0 {
		return "Warning: empty Midi event, it should be not emitted"
	}
	if !e.Valid() {
		msg := "Oof, unexpected event format: "
		for _, v := range e {
			msg += fmt.Sprintf("0x%02x ", v)
		}
		return msg
	}

	ch := e.Channel()
	switch e.Type() {
	case NoteOff:
		return fmt.Sprintf("Note Off: %s (%s, velocity: %3d)", noteToString(e[1]), ch, e[2])
	case NoteOn:
		return fmt.Sprintf("Note On : %s (%s, velocity: %3d)", noteToString(e[1]), ch, e[2])
	case PolyphonicKeyPressure:
		return fmt.Sprintf("Polyphonic Key Pressure: %s (%s, pressure: %3d)", noteToString(e[1]), ch, e[2])
	case ControlChange:
		_, cc, val, _ := e.ControlChange()
		return fmt.Sprintf("Control Change: %3d %s, value: %3d (%s)", uint8(cc), cc.Name(), val, ch)
	case ProgramChange:
		return fmt.Sprintf("Program Change: %3d (%s)", e[1], ch)
	case ChannelPressure:
		return fmt.Sprintf("Channel Pressure: %3d (%s)", e[1], ch)
	default: // PitchWheelChange
		val := float64((int(e[2])<<7)+int(e[1])-8192) / 8192 // max value: 16383, middle value (no pitch change): 8192
		return fmt.Sprintf("Pitch Bend: %4.0f%% (%s)", val*100, ch)
	}
}

func NoteEvent(messageType uint8, ch channel.Channel, note, velocity uint8) Event {
	return Event{messageType | uint8(ch), note, velocity}
}

func ControlChangeEvent(ch channel.Channel, function control.Control, value uint8) Event {
	return Event{ControlChange | uint8(ch), uint8(function), value}
}

// PitchBendEvent accepts a value in range -1.0 to 1.0
func PitchBendEvent(ch channel.Channel, val float64) Event {
	target := int(float64((1<<14)-1) * ((val + 1.0) / 2.0)) // valid 14-bit pitch-bend range
	msb := uint8((target >> 7) & 0b01111111)
	lsb := uint8(target & 0b01111111)
	return Event{PitchWheelChange | uint8(ch), lsb, msb}
}
