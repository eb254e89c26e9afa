package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/gethiox/midinames/internal/pkg/midi/channel"
	"github.com/gethiox/midinames/internal/pkg/midi/control"
	"github.com/gethiox/midinames/internal/pkg/midi/profile"
	"github.com/gethiox/midinames/internal/pkg/midi/smf"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage error")

type app struct {
	cfg      Config
	out      io.Writer
	au       aurora.Aurora
	profiles profile.Set
}

func newApp(cfg Config, out io.Writer, au aurora.Aurora) *app {
	return &app{cfg: cfg, out: out, au: au, profiles: profile.NewSet()}
}

func (a *app) loadProfiles() error {
	set := profile.NewSet()
	if a.cfg.ProfileDir != "" {
		fails, success, err := set.LoadDirectory(a.cfg.ProfileDir)
		if err != nil {
			return fmt.Errorf("loading profiles from \"%s\" failed: %w", a.cfg.ProfileDir, err)
		}
		log.Info(fmt.Sprintf("profiles loaded: %d, failed: %d", success, fails), logger.Info)
	}
	a.profiles = set
	return nil
}

func (a *app) run(ctx context.Context, args []string, watch bool) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command missing", errUsage)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "channel":
		if len(args) != 1 {
			return fmt.Errorf("%w: channel <1-%d>", errUsage, channel.Count)
		}
		return a.channelCmd(args[0])
	case "control":
		if len(args) != 1 {
			return fmt.Errorf("%w: control <0-%d|alias>", errUsage, control.Count-1)
		}
		err := a.loadProfiles()
		if err != nil {
			return err
		}
		return a.controlCmd(args[0])
	case "table":
		a.tableCmd()
		return nil
	case "profiles":
		err := a.loadProfiles()
		if err != nil {
			return err
		}
		a.listProfiles()
		if watch {
			return a.watchProfiles(ctx)
		}
		return nil
	case "scan":
		if len(args) == 0 {
			return fmt.Errorf("%w: scan <file.mid>...", errUsage)
		}
		for _, path := range args {
			err := a.scanCmd(path)
			if err != nil {
				return err
			}
		}
		return nil
	case "version":
		fmt.Fprintf(a.out, "midinames %s\n", version)
		return nil
	}
	return fmt.Errorf("%w: unknown command: %s", errUsage, cmd)
}

// channelName resolves the name with respect to the configured naming of
// channels without table entry.
func (a *app) channelName(c channel.Channel) (string, error) {
	name, err := c.Name()
	if errors.Is(err, channel.ErrUnnamed) && a.cfg.UnnamedChannel == NamingGenerate {
		return c.String(), nil
	}
	return name, err
}

func (a *app) channelCmd(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: channel has to be a number: %s", errUsage, raw)
	}
	c, err := channel.FromDisplay(n)
	if err != nil {
		return err
	}
	name, err := a.channelName(c)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s (wire value: %d)", a.au.Bold(name), uint8(c))
	if c == channel.Percussion {
		line += " " + a.au.Yellow("[percussion]").String()
	}
	fmt.Fprintln(a.out, line)
	return nil
}

func (a *app) controlCmd(raw string) error {
	var c control.Control
	var via string

	v, err := strconv.Atoi(raw)
	if err == nil {
		c, err = control.New(v)
		if err != nil {
			return err
		}
	} else {
		var p profile.Profile
		var ok bool
		c, p, ok = a.profiles.Resolve(raw)
		if !ok {
			return fmt.Errorf("unknown control alias: %s", raw)
		}
		via = fmt.Sprintf(" (alias %s/%s)", p.Name, strings.ToLower(raw))
	}

	name, err := control.Name(int(c))
	if err != nil {
		return err
	}
	if c.Named() {
		fmt.Fprintf(a.out, "%3d: %s%s\n", uint8(c), a.au.Bold(name), via)
	} else {
		fmt.Fprintf(a.out, "%3d: %s%s\n", uint8(c), a.au.Gray(12, name), via)
	}

	matches := a.profiles.Match(c)
	if len(matches) > 0 {
		fmt.Fprintf(a.out, "     aliases: %s\n", strings.Join(matches, ", "))
	}
	return nil
}

func (a *app) tableCmd() {
	fmt.Fprintln(a.out, a.au.Underline("Channels"))
	for _, c := range channel.All() {
		name, err := a.channelName(c)
		if err != nil {
			fmt.Fprintf(a.out, "%3d  %s\n", uint8(c), a.au.Gray(12, "(unnamed)"))
			continue
		}
		fmt.Fprintf(a.out, "%3d  %s\n", uint8(c), name)
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.au.Underline("Controls"))
	for _, c := range control.Named() {
		fmt.Fprintf(a.out, "%3d  %s\n", uint8(c), c.Name())
	}
	fmt.Fprintf(a.out, "     %s\n", a.au.Gray(12, fmt.Sprintf("other: %s", control.Fallback)))

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.au.Underline("Aliases"))
	a.printAliases(profile.Default())
}

func (a *app) printAliases(p profile.Profile) {
	for _, alias := range p.Names() {
		c := p.Aliases[alias]
		fmt.Fprintf(a.out, "%-12s %3d  %s\n", alias, uint8(c), a.au.Gray(12, c.Name()))
	}
}

func (a *app) listProfiles() {
	for _, p := range a.profiles.Profiles() {
		source := p.File
		if source == "" {
			source = "built-in"
		}
		fmt.Fprintf(a.out, "%s (%s, %d aliases)\n", a.au.Bold(p.Name), source, len(p.Aliases))
		for _, alias := range p.Names() {
			log.Info(fmt.Sprintf("%s = %s", alias, p.Aliases[alias]), logger.Profile, zap.String("profile", p.Name))
		}
	}
}

func (a *app) watchProfiles(ctx context.Context) error {
	if a.cfg.ProfileDir == "" {
		return fmt.Errorf("profile directory not configured")
	}
	changes, err := profile.DetectChanges(ctx, a.cfg.ProfileDir)
	if err != nil {
		return err
	}

	log.Info("watching profiles, interrupt to exit", logger.Info, zap.String("file", a.cfg.ProfileDir))
	for range changes {
		err := a.loadProfiles()
		if err != nil {
			log.Info("reloading profiles failed", logger.Error, zap.Error(err))
			continue
		}
		a.listProfiles()
	}
	return nil
}

func (a *app) scanCmd(path string) error {
	records, err := smf.ScanFile(path)
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("%d control changes found", len(records)), logger.Info, zap.String("file", path))

	for _, r := range records {
		name, err := a.channelName(r.Channel)
		if err != nil {
			name = r.Channel.String()
		}
		fmt.Fprintf(a.out, "track %2d  tick %8d  %-10s  %3d %-24s %3d\n",
			r.Track, r.Tick, name, uint8(r.Control), r.Control.Name(), r.Value)
		log.Info(r.String(), logger.Result, zap.String("file", path))
	}
	return nil
}
