package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gethiox/midinames/internal/pkg/midi/control"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"

	DefaultName = "default"
)

var SupportedFormats = map[Format]bool{
	FormatYAML: true,
	FormatTOML: true,
}

type Format string

// Profile is a named alias table of a control surface.
type Profile struct {
	Name    string
	File    string // empty for the built-in profile
	Aliases map[string]control.Control
}

type document struct {
	Name    string         `yaml:"name" toml:"name"`
	Aliases map[string]int `yaml:"aliases" toml:"aliases"`
}

func Default() Profile {
	var aliases = make(map[string]control.Control, len(control.Aliases))
	for name, c := range control.Aliases {
		aliases[name] = c
	}
	return Profile{Name: DefaultName, Aliases: aliases}
}

// FormatFromFilename picks the document format by file extension.
func FormatFromFilename(name string) (Format, bool) {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML, true
	case strings.HasSuffix(name, ".toml"):
		return FormatTOML, true
	}
	return "", false
}

func Parse(data []byte, format Format) (Profile, error) {
	var doc document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return Profile{}, fmt.Errorf("unsupported profile format: %s", format)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("parsing %s failed: %w", format, err)
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return Profile{}, fmt.Errorf("profile name missing")
	}
	if strings.EqualFold(name, DefaultName) {
		return Profile{}, fmt.Errorf("profile name \"%s\" is reserved", DefaultName)
	}
	if len(doc.Aliases) == 0 {
		return Profile{}, fmt.Errorf("[%s] no aliases defined", name)
	}

	var aliases = make(map[string]control.Control, len(doc.Aliases))
	for _, raw := range sortedKeys(doc.Aliases) {
		value := doc.Aliases[raw]
		alias := strings.ToLower(strings.TrimSpace(raw))
		if alias == "" {
			return Profile{}, fmt.Errorf("[%s] empty alias name", name)
		}
		if _, err := strconv.Atoi(alias); err == nil {
			return Profile{}, fmt.Errorf("[%s] %s: alias cannot be a number", name, raw)
		}
		if _, ok := aliases[alias]; ok {
			return Profile{}, fmt.Errorf("[%s] %s: duplicated alias", name, raw)
		}
		c, err := control.New(value)
		if err != nil {
			return Profile{}, fmt.Errorf("[%s] %s: %w", name, raw, err)
		}
		aliases[alias] = c
	}

	return Profile{Name: name, Aliases: aliases}, nil
}

// Names returns the profile aliases in alphabetical order.
func (p Profile) Names() []string {
	var names = make([]string, 0, len(p.Aliases))
	for name := range p.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]int) []string {
	var keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
