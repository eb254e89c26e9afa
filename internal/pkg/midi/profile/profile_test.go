package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/gethiox/midinames/internal/pkg/midi/control"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	go func() {
		for range logger.Messages {
		}
	}()
	os.Exit(m.Run())
}

const yamlProfile = `
name: Launch
aliases:
  Knob1: 21
  knob2: 22
  sustain: 64
`

const tomlProfile = `
name = "xtouch"

[aliases]
fader1 = 70
rec = 95
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(yamlProfile), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Launch", p.Name)
	assert.Equal(t, map[string]control.Control{"knob1": 21, "knob2": 22, "sustain": 64}, p.Aliases)
	assert.Equal(t, []string{"knob1", "knob2", "sustain"}, p.Names())

	p, err = Parse([]byte(tomlProfile), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "xtouch", p.Name)
	assert.Equal(t, map[string]control.Control{"fader1": 70, "rec": 95}, p.Aliases)
}

func TestParseFail(t *testing.T) {
	for _, tc := range []struct {
		name   string
		data   string
		format Format
	}{
		{name: "out of range", data: "name: x\naliases:\n  a: 128\n", format: FormatYAML},
		{name: "negative", data: "name: x\naliases:\n  a: -1\n", format: FormatYAML},
		{name: "no name", data: "aliases:\n  a: 1\n", format: FormatYAML},
		{name: "reserved name", data: "name: Default\naliases:\n  a: 1\n", format: FormatYAML},
		{name: "no aliases", data: "name: x\n", format: FormatYAML},
		{name: "numeric alias", data: "name: x\naliases:\n  \"12\": 1\n", format: FormatYAML},
		{name: "duplicate after lowercase", data: "name: x\naliases:\n  A: 1\n  a: 2\n", format: FormatYAML},
		{name: "broken yaml", data: "name: [x\n", format: FormatYAML},
		{name: "broken toml", data: "name = \n", format: FormatTOML},
		{name: "toml out of range", data: "name = \"x\"\n[aliases]\na = 300\n", format: FormatTOML},
		{name: "unknown format", data: "name: x\naliases:\n  a: 1\n", format: Format("json")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format)
			assert.Error(t, err)
		})
	}
}

func TestParseOutOfRangeWrapsControlError(t *testing.T) {
	_, err := Parse([]byte("name: x\naliases:\n  a: 128\n"), FormatYAML)
	assert.ErrorIs(t, err, control.ErrOutOfRange)
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, control.Aliases, p.Aliases)

	// the built-in profile is a copy
	p.Aliases["stop"] = 1
	assert.Equal(t, control.Stop, control.Aliases["stop"])
}

func TestFormatFromFilename(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected Format
		ok       bool
	}{
		{"a.yaml", FormatYAML, true},
		{"a.YML", FormatYAML, true},
		{"dir/a.toml", FormatTOML, true},
		{"a.json", "", false},
		{"yaml", "", false},
	} {
		f, ok := FormatFromFilename(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.expected, f, tc.name)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "launch.yaml"), yamlProfile)
	writeFile(t, filepath.Join(root, "nested", "xtouch.toml"), tomlProfile)
	writeFile(t, filepath.Join(root, "broken.yml"), "name: x\naliases:\n  a: 999\n")
	writeFile(t, filepath.Join(root, "readme.txt"), "not a profile")

	s := NewSet()
	fails, success, err := s.LoadDirectory(root)
	require.NoError(t, err)
	assert.Equal(t, 1, fails)
	assert.Equal(t, 2, success)

	p, ok := s.Find("LAUNCH")
	require.True(t, ok)
	assert.Equal(t, "launch.yaml", p.File)

	p, ok = s.Find("default")
	require.True(t, ok)
	assert.Equal(t, "", p.File)

	_, ok = s.Find("x")
	assert.False(t, ok)

	var names []string
	for _, p := range s.Profiles() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Launch", "xtouch", DefaultName}, names)
}

func TestLoadDirectoryMissing(t *testing.T) {
	s := NewSet()
	_, _, err := s.LoadDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "xtouch.toml"), tomlProfile)

	s := NewSet()
	_, _, err := s.LoadDirectory(root)
	require.NoError(t, err)

	// user profile shadows the built-in alias
	c, p, ok := s.Resolve("Fader1")
	require.True(t, ok)
	assert.Equal(t, control.Control(70), c)
	assert.Equal(t, "xtouch", p.Name)

	c, p, ok = s.Resolve("stop")
	require.True(t, ok)
	assert.Equal(t, control.Stop, c)
	assert.Equal(t, DefaultName, p.Name)

	_, _, ok = s.Resolve("nope")
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	s := NewSet()
	s.User["launch"] = Profile{Name: "Launch", Aliases: map[string]control.Control{"sustain": 64, "hold": 64}}

	assert.Equal(t, []string{"Launch/hold", "Launch/sustain", "default/rec1"}, s.Match(64))
	assert.Nil(t, s.Match(127))
}

func TestDetectChanges(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := DetectChanges(ctx, root)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "ignored.txt"), "x")
	path := filepath.Join(root, "launch.yaml")
	writeFile(t, path, yamlProfile)

	select {
	case name := <-changes:
		assert.Equal(t, path, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change detected")
	}

	cancel()
	for range changes {
	}
}

func TestDetectChangesMissingDir(t *testing.T) {
	_, err := DetectChanges(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
