package channel

import (
	"errors"
	"fmt"
)

// Count is the number of MIDI channels addressable by a channel voice message.
const Count = 16

const (
	Channel1 Channel = iota
	Channel2
	Channel3
	Channel4
	Channel5
	Channel6
	Channel7
	Channel8
	Channel9
	Channel10
	Channel11
	Channel12
	Channel13
	Channel14
	Channel15
	Channel16

	Percussion = Channel10 // General MIDI drum channel
)

var (
	ErrInvalid = errors.New("invalid midi channel")
	ErrUnnamed = errors.New("midi channel has no assigned name")
)

// Channel is a wire-encoded channel number, 0-15.
type Channel uint8

var names = [...]string{
	"Channel 1", "Channel 2", "Channel 3", "Channel 4", "Channel 5",
	"Channel 6", "Channel 7", "Channel 8", "Channel 9", "Channel 10",
}

func IsValid(v int) bool {
	return v >= 0 && v < Count
}

func Validate(v int) error {
	if !IsValid(v) {
		return fmt.Errorf("%w: %d (expected 0-%d)", ErrInvalid, v, Count-1)
	}
	return nil
}

// Name returns the fixed name of a channel. Only channels 1-10 have one,
// 11-16 are valid but yield ErrUnnamed.
func Name(v int) (string, error) {
	err := Validate(v)
	if err != nil {
		return "", err
	}
	if v >= len(names) {
		return "", fmt.Errorf("%w: %d", ErrUnnamed, v)
	}
	return names[v], nil
}

func New(v int) (Channel, error) {
	err := Validate(v)
	if err != nil {
		return 0, err
	}
	return Channel(v), nil
}

// FromDisplay converts 1-based user input (1-16) into a Channel.
func FromDisplay(n int) (Channel, error) {
	if !IsValid(n - 1) {
		return 0, fmt.Errorf("%w: display number %d (expected 1-%d)", ErrInvalid, n, Count)
	}
	return Channel(n - 1), nil
}

func (c Channel) Name() (string, error) {
	return Name(int(c))
}

func (c Channel) Display() int {
	return int(c) + 1
}

// String always renders "Channel N", also for channels without a table name.
func (c Channel) String() string {
	return fmt.Sprintf("Channel %d", c.Display())
}

func All() []Channel {
	var all = make([]Channel, 0, Count)
	for c := Channel1; c <= Channel16; c++ {
		all = append(all, c)
	}
	return all
}
