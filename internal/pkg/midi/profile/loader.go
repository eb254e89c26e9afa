package profile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/gethiox/midinames/internal/pkg/midi/control"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Set holds the built-in profile and the ones loaded from disk, keyed by lowercase name.
type Set struct {
	Default Profile
	User    map[string]Profile
}

func NewSet() Set {
	return Set{
		Default: Default(),
		User:    make(map[string]Profile),
	}
}

func readProfile(path string) (Profile, error) {
	format, ok := FormatFromFilename(path)
	if !ok {
		return Profile{}, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading file data failed: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return Profile{}, err
	}
	p.File = filepath.Base(path)
	return p, nil
}

// LoadDirectory walks root and adds every parsable profile to the set.
// Broken files are logged and counted, they do not stop the walk.
func (s *Set) LoadDirectory(root string) (fails, success int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := FormatFromFilename(d.Name()); !ok {
			return nil
		}

		p, err := readProfile(path)
		if err != nil {
			log.Info("profile load failed", logger.Warning, zap.String("file", d.Name()), zap.Error(err))
			fails++
			return nil
		}

		key := strings.ToLower(p.Name)
		if prev, ok := s.User[key]; ok {
			log.Info(fmt.Sprintf("profile defined twice, \"%s\" overrides \"%s\"", p.File, prev.File),
				logger.Warning, zap.String("profile", p.Name))
		}
		s.User[key] = p
		success++
		log.Info(fmt.Sprintf("loaded %d aliases", len(p.Aliases)), logger.Debug,
			zap.String("profile", p.Name), zap.String("file", p.File))
		return nil
	})
	if err != nil {
		return fails, success, fmt.Errorf("walk failed: %w", err)
	}
	return fails, success, nil
}

// Find returns a profile by name, the built-in one included.
func (s *Set) Find(name string) (Profile, bool) {
	key := strings.ToLower(name)
	if key == DefaultName {
		return s.Default, true
	}
	p, ok := s.User[key]
	return p, ok
}

// Profiles lists user profiles alphabetically followed by the built-in one.
func (s *Set) Profiles() []Profile {
	var keys = make([]string, 0, len(s.User))
	for k := range s.User {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var profiles = make([]Profile, 0, len(keys)+1)
	for _, k := range keys {
		profiles = append(profiles, s.User[k])
	}
	return append(profiles, s.Default)
}

// Resolve looks an alias up, user profiles first, the built-in one last.
func (s *Set) Resolve(alias string) (control.Control, Profile, bool) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	for _, p := range s.Profiles() {
		c, ok := p.Aliases[alias]
		if ok {
			return c, p, true
		}
	}
	return 0, Profile{}, false
}

// Match lists "profile/alias" for every alias pointing at c.
func (s *Set) Match(c control.Control) []string {
	var found []string
	for _, p := range s.Profiles() {
		for _, alias := range control.AliasesOf(p.Aliases, c) {
			found = append(found, p.Name+"/"+alias)
		}
	}
	return found
}
