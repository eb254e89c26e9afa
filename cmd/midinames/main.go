package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath = flag.String("config", filepath.Join(configDir, "midinames.config"),
		"path to config file, default config tree is generated when missing")
	nocolor  = flag.Bool("nocolor", false, "disable color")
	watch    = flag.Bool("watch", false, "profiles: keep watching profile directory for changes")
	logLevel = flag.Int("loglevel", -1,
		"logging level, overrides config (-1: use config value)\n"+
			"\navailable options:\n"+
			"0: errors\n"+
			"1: warnings\n"+
			"2: general info\n"+
			"3: results (every scanned control change)\n"+
			"4: profile details (every alias)",
	)
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(), "commands:\n"+
		"  channel <1-16>         channel name\n"+
		"  control <0-127|alias>  control name and aliases\n"+
		"  table                  all channel, control and alias names\n"+
		"  profiles               loaded control surface profiles\n"+
		"  scan <file.mid>...     control changes of midi files\n"+
		"  version                build version\n\n"+
		"flags:\n")
	flag.PrintDefaults()
}

func loadConfig() (Config, error) {
	if *configPath == filepath.Join(configDir, "midinames.config") {
		err := createConfigDirectoryIfNeeded(configDir)
		if err != nil {
			return Config{}, err
		}
	}
	return LoadConfig(*configPath)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	logCtx, stopLogs := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}
	wg.Add(1)
	go printLogs(logCtx, &wg, os.Stderr, aurora.NewAurora(!*nocolor), logger.InfoLvl)

	exit := func(code int) {
		cancel()
		stopLogs()
		wg.Wait()
		os.Exit(code)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Info("config load failed", logger.Error, zap.Error(err))
		exit(1)
	}
	if *logLevel >= 0 {
		cfg.LogLevel = *logLevel
	}
	if *nocolor {
		cfg.Color = false
	}
	log.Info(fmt.Sprintf("config: %+v", cfg), logger.Debug)

	// restart printer with configured level and colors
	stopLogs()
	wg.Wait()
	logCtx, stopLogs = context.WithCancel(context.Background())
	wg.Add(1)
	au := aurora.NewAurora(cfg.Color)
	go printLogs(logCtx, &wg, os.Stderr, au, cfg.LogLevel)

	a := newApp(cfg, os.Stdout, au)
	err = a.run(ctx, flag.Args(), *watch)
	switch {
	case errors.Is(err, errUsage):
		log.Info(err.Error(), logger.Error)
		stopLogs()
		wg.Wait()
		flag.Usage()
		cancel()
		os.Exit(2)
	case err != nil:
		log.Info("command failed", logger.Error, zap.Error(err))
		exit(1)
	}
	exit(0)
}
