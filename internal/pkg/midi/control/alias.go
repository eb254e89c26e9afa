package control

import "sort"

// Control surface aliases (nanoKONTROL2 factory layout). These share the
// numbering space with the descriptive table but carry no meaning of their own,
// e.g. Rec1 and "Sustain pedal" are both 64.
const (
	Fader1 Control = iota
	Fader2
	Fader3
	Fader4
	Fader5
	Fader6
	Fader7
	Fader8
)

const (
	Pan1 Control = iota + 16
	Pan2
	Pan3
	Pan4
	Pan5
	Pan6
	Pan7
	Pan8
)

const (
	Solo1 Control = iota + 32
	Solo2
	Solo3
	Solo4
	Solo5
	Solo6
	Solo7
	Solo8
)

const (
	Play Control = 41
	Stop Control = 42
	Rev  Control = 43
	For  Control = 44
	Rec  Control = 45
)

const (
	Mute1 Control = iota + 48
	Mute2
	Mute3
	Mute4
	Mute5
	Mute6
	Mute7
	Mute8
)

const (
	Rec1 Control = iota + 64
	Rec2
	Rec3
	Rec4
	Rec5
	Rec6
	Rec7
	Rec8
)

var Aliases = map[string]Control{
	"fader1": Fader1, "fader2": Fader2, "fader3": Fader3, "fader4": Fader4,
	"fader5": Fader5, "fader6": Fader6, "fader7": Fader7, "fader8": Fader8,

	"pan1": Pan1, "pan2": Pan2, "pan3": Pan3, "pan4": Pan4,
	"pan5": Pan5, "pan6": Pan6, "pan7": Pan7, "pan8": Pan8,

	"solo1": Solo1, "solo2": Solo2, "solo3": Solo3, "solo4": Solo4,
	"solo5": Solo5, "solo6": Solo6, "solo7": Solo7, "solo8": Solo8,

	"mute1": Mute1, "mute2": Mute2, "mute3": Mute3, "mute4": Mute4,
	"mute5": Mute5, "mute6": Mute6, "mute7": Mute7, "mute8": Mute8,

	"rec1": Rec1, "rec2": Rec2, "rec3": Rec3, "rec4": Rec4,
	"rec5": Rec5, "rec6": Rec6, "rec7": Rec7, "rec8": Rec8,

	"play": Play,
	"stop": Stop,
	"rev":  Rev,
	"for":  For,
	"rec":  Rec,
}

// AliasesOf returns every alias in aliases pointing at c, sorted.
func AliasesOf(aliases map[string]Control, c Control) []string {
	var found []string
	for name, v := range aliases {
		if v == c {
			found = append(found, name)
		}
	}
	sort.Strings(found)
	return found
}
