package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var availableTargets = []target{
	{goos: "linux", goarch: "arm", goarm: "6"},
	{goos: "linux", goarch: "arm", goarm: "7"},
	{goos: "linux", goarch: "arm64"},
	{goos: "linux", goarch: "amd64"},
	{goos: "darwin", goarch: "amd64"},
	{goos: "darwin", goarch: "arm64"},
	{goos: "windows", goarch: "amd64"},
}

type target struct {
	goos   string
	goarch string
	goarm  string
}

func (t target) String() string {
	if t.goarm != "" {
		return fmt.Sprintf("%s-%s-v%s", t.goos, t.goarch, t.goarm)
	}
	return fmt.Sprintf("%s-%s", t.goos, t.goarch)
}

func (t target) env() []string {
	env := []string{"GOOS=" + t.goos, "GOARCH=" + t.goarch, "CGO_ENABLED=0"}
	if t.goarm != "" {
		env = append(env, "GOARM="+t.goarm)
	}
	return env
}

// selectTargets resolves a comma-separated list of target names, "all" picks every target.
func selectTargets(selection string) ([]target, error) {
	if selection == "all" {
		return append([]target{}, availableTargets...), nil
	}

	var selected []target
	for _, name := range strings.Split(selection, ",") {
		name = strings.TrimSpace(name)
		var found bool
		for _, t := range availableTargets {
			if t.String() == name {
				selected = append(selected, t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("target not found: %s", name)
		}
	}
	return selected, nil
}

// binaryName is the release file name of the binary built for t.
func binaryName(base, version string, t target) string {
	name := fmt.Sprintf("%s-%s-%s", base, version, t)
	if t.goos == "windows" {
		name += ".exe"
	}
	return name
}

// ldflags stamps the version into the main package of the built binary.
func ldflags(version string, strip bool) string {
	flags := fmt.Sprintf("-X main.version=%s", version)
	if strip {
		flags = "-s -w " + flags
	}
	return flags
}

// gitVersion describes the working tree, "dev" when git is not available.
func gitVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}
	v := strings.TrimSpace(string(out))
	if v == "" {
		return "dev"
	}
	return v
}

type result struct {
	target target
	path   string
	output string
	err    error
}

func build(t target, path string) result {
	cmd := exec.Command("go", "build", "-trimpath", "-ldflags", ldflags(version, strip), "-o", path, project)
	cmd.Env = append(os.Environ(), t.env()...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	return result{target: t, path: path, output: output.String(), err: err}
}

// writeChecksums writes a sha256sum compatible listing of the built binaries.
func writeChecksums(dir string, paths []string) error {
	var lines []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading binary failed: %w", err)
		}
		lines = append(lines, fmt.Sprintf("%x  %s", sha256.Sum256(data), filepath.Base(path)))
	}
	sort.Strings(lines)
	return os.WriteFile(filepath.Join(dir, "SHA256SUMS"), []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

var selection, project, basename, version, outDir string
var strip bool

func main() {
	var targetNames []string
	for _, t := range availableTargets {
		targetNames = append(targetNames, t.String())
	}
	flag.StringVar(&selection, "platforms", "all", fmt.Sprintf(
		"comma-separated target platform list\navailable: %s", strings.Join(targetNames, ",")),
	)
	flag.StringVar(&project, "project", "./cmd/midinames/", "project directory")
	flag.StringVar(&basename, "base", "midinames", "base filename for output binaries")
	flag.StringVar(&version, "version", "", "version stamped into binaries (default: git describe)")
	flag.StringVar(&outDir, "out", "./builds", "output directory")
	flag.BoolVar(&strip, "strip", true, "strip symbol table and debug information")
	flag.Parse()

	log.SetFlags(log.Ltime)

	if version == "" {
		version = gitVersion()
	}

	selected, err := selectTargets(selection)
	if err != nil {
		log.Printf("%s", err)
		os.Exit(1)
	}
	var selectedNames []string
	for _, t := range selected {
		selectedNames = append(selectedNames, t.String())
	}
	log.Printf("building %s %s for: %s", basename, version, strings.Join(selectedNames, ", "))

	err = os.MkdirAll(outDir, 0o755)
	if err != nil {
		log.Printf("creating output directory failed: %s", err)
		os.Exit(1)
	}

	var results = make([]result, len(selected))
	wg := sync.WaitGroup{}
	for i, t := range selected {
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			results[i] = build(t, filepath.Join(outDir, binaryName(basename, version, t)))
			if results[i].err != nil {
				log.Printf("%-20s failed", t)
			} else {
				log.Printf("%-20s done", t)
			}
		}(i, t)
	}
	wg.Wait()

	var built []string
	var failed bool
	for _, r := range results {
		if r.err == nil {
			built = append(built, r.path)
			continue
		}
		failed = true
		fmt.Printf("\n>>> Failed build: %s (%s)\n", r.target, r.err)
		if r.output != "" {
			fmt.Printf("======== OUTPUT ========\n%s========================\n", r.output)
		}
	}

	if len(built) > 0 {
		err = writeChecksums(outDir, built)
		if err != nil {
			log.Printf("writing checksums failed: %s", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
