package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/go-ini/ini"
	"go.uber.org/zap"
)

const (
	NamingStrict   ChannelNaming = "strict"   // channels without table entry are an error
	NamingGenerate ChannelNaming = "generate" // "Channel N" for every valid channel
)

var SupportedNamings = map[ChannelNaming]bool{
	NamingStrict:   true,
	NamingGenerate: true,
}

type ChannelNaming string

type Config struct {
	LogLevel       int
	Color          bool
	UnnamedChannel ChannelNaming
	ProfileDir     string
}

func DefaultConfig() Config {
	return Config{
		LogLevel:       logger.InfoLvl,
		Color:          true,
		UnnamedChannel: NamingStrict,
	}
}

// LoadConfig reads the ini config file, missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config failed: %w", err)
	}

	f, err := ini.Load(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config failed: %w", err)
	}

	var c = DefaultConfig()

	// [midinames]
	general := f.Section("midinames")
	if general.HasKey("log_level") {
		c.LogLevel, err = general.Key("log_level").Int()
		if err != nil {
			return Config{}, fmt.Errorf("[midinames] log_level: %w", err)
		}
	}
	if general.HasKey("color") {
		c.Color, err = general.Key("color").Bool()
		if err != nil {
			return Config{}, fmt.Errorf("[midinames] color: %w", err)
		}
	}

	// [channel]
	if key, err := f.Section("channel").GetKey("unnamed"); err == nil {
		naming := ChannelNaming(strings.ToLower(key.String()))
		if !SupportedNamings[naming] {
			return Config{}, fmt.Errorf("[channel] unnamed: unsupported value: %s", key.String())
		}
		c.UnnamedChannel = naming
	}

	// [profiles]
	if key, err := f.Section("profiles").GetKey("directory"); err == nil && key.String() != "" {
		dir := key.String()
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		c.ProfileDir = dir
	}

	return c, nil
}

//go:embed midinames-config/midinames.config
//go:embed midinames-config/profiles/*
var templateConfig embed.FS

const configDir = "midinames-config"

// createConfigDirectoryIfNeeded writes the template config tree into dst
// when dst does not exist yet. Existing configs stay intact.
func createConfigDirectoryIfNeeded(dst string) error {
	_, err := os.Stat(dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot open config directory: %w", err)
	}
	log.Info("config not exist, generating tree...", logger.Info, zap.String("file", dst))

	err = fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, strings.TrimPrefix(path, configDir))

		if d.IsDir() {
			err := os.MkdirAll(target, 0o755)
			if err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", target, err)
			}
			return nil
		}

		data, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
		}

		err = os.WriteFile(target, data, 0o644)
		if err != nil {
			return fmt.Errorf("cannot write data into \"%s\" file: %w", target, err)
		}

		log.Info(fmt.Sprintf("Created \"%s\" file", target), logger.Debug)
		return nil
	})
	if err != nil {
		return fmt.Errorf("config generation failed: %w", err)
	}

	log.Info("config generation done", logger.Info)
	return nil
}
