package smf

import (
	"fmt"
	"os"

	"github.com/gethiox/midinames/internal/pkg/midi"
	"github.com/gethiox/midinames/internal/pkg/midi/channel"
	"github.com/gethiox/midinames/internal/pkg/midi/control"
	mmidi "github.com/moutend/go-midi"
	mmidiev "github.com/moutend/go-midi/event"
)

// Record is a single Control Change found in a track.
type Record struct {
	Track   int
	Tick    uint32 // absolute, in track ticks
	Channel channel.Channel
	Control control.Control
	Value   uint8
}

func (r Record) String() string {
	return fmt.Sprintf("track %d, tick %d: %s",
		r.Track, r.Tick, midi.ControlChangeEvent(r.Channel, r.Control, r.Value))
}

func ScanFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file failed: %w", err)
	}
	return Scan(data)
}

// Scan parses a Standard MIDI File and returns its Control Change events in track order.
func Scan(data []byte) (records []Record, err error) {
	// the parser indexes the stream without bounds checks and panics on malformed data
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("parsing midi file failed: malformed data: %v", r)
		}
	}()

	parser := mmidi.NewParser(data)
	file, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing midi file failed: %w", err)
	}

	for i, track := range file.Tracks {
		var tick uint32
		for _, event := range track.Events {
			tick += event.DeltaTime().Quantity().Uint32()

			v, ok := event.(*mmidiev.ControllerEvent)
			if !ok {
				continue
			}
			records = append(records, Record{
				Track:   i,
				Tick:    tick,
				Channel: channel.Channel(v.Channel()),
				Control: control.Control(v.Control()),
				Value:   v.Value(),
			})
		}
	}
	return records, nil
}
