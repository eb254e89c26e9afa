package control

import (
	"errors"
	"fmt"
	"sort"
)

// Count is the number of Control Change numbers, 0-127.
const Count = 128

// Fallback is the name given to controls without an entry in the descriptive table.
const Fallback = "Other Control (see MIDI spec for details)."

var ErrOutOfRange = errors.New("midi control out of range")

// Control is a Control Change number as transmitted on the wire.
type Control uint8

// descriptive names, sparse; independent of the surface aliases
var names = map[Control]string{
	0:   "Bank select",
	1:   "Modulation wheel",
	4:   "Foot controller",
	5:   "Portamento time",
	6:   "Data entry",
	7:   "Channel volume",
	8:   "Balance",
	10:  "Pan",
	11:  "Expression controller",
	64:  "Sustain pedal",
	65:  "Portamento",
	66:  "Sostenuto pedal",
	67:  "Soft pedal",
	120: "All sound off",
	121: "Reset all controllers",
	122: "Local control",
	123: "All notes off",
	126: "Mono mode on",
}

func IsValid(v int) bool {
	return v >= 0 && v < Count
}

func Validate(v int) error {
	if !IsValid(v) {
		return fmt.Errorf("%w: %d (expected 0-%d)", ErrOutOfRange, v, Count-1)
	}
	return nil
}

// Name returns the descriptive name of a control, or Fallback when the
// control has none.
func Name(v int) (string, error) {
	err := Validate(v)
	if err != nil {
		return "", err
	}
	name, ok := names[Control(v)]
	if !ok {
		return Fallback, nil
	}
	return name, nil
}

func New(v int) (Control, error) {
	err := Validate(v)
	if err != nil {
		return 0, err
	}
	return Control(v), nil
}

func (c Control) Name() string {
	name, ok := names[c]
	if !ok {
		return Fallback
	}
	return name
}

// Named reports whether c has an entry in the descriptive table.
func (c Control) Named() bool {
	_, ok := names[c]
	return ok
}

func (c Control) String() string {
	return fmt.Sprintf("%d (%s)", uint8(c), c.Name())
}

// Named returns controls with a descriptive name, ascending.
func Named() []Control {
	var controls = make([]Control, 0, len(names))
	for c := range names {
		controls = append(controls, c)
	}
	sort.Slice(controls, func(i, j int) bool { return controls[i] < controls[j] })
	return controls
}
