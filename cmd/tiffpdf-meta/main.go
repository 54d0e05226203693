// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tiffpdf-meta/internal/config"
	"tiffpdf-meta/internal/extract"
	"tiffpdf-meta/internal/help"
	"tiffpdf-meta/internal/observability"
	"tiffpdf-meta/internal/records"
	"tiffpdf-meta/internal/selection"
	"tiffpdf-meta/internal/version"

	"tiffpdf-meta/internal/formatters"
	_ "tiffpdf-meta/internal/formatters/csv"
	_ "tiffpdf-meta/internal/formatters/json"
	_ "tiffpdf-meta/internal/formatters/text"
	_ "tiffpdf-meta/internal/formatters/xlsx"
	_ "tiffpdf-meta/internal/formatters/yaml"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// stringList collects a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// cliFlags holds the parsed command line
type cliFlags struct {
	mode         string
	files        stringList
	recursive    bool
	format       string
	output       string
	configFile   string
	profileName  string
	listProfiles bool
	verbose      bool
	noColor      bool
	quiet        bool
	debug        bool
	showVersion  bool
	showHelp     bool

	set  map[string]bool
	args []string
}

// finalConfiguration is the outcome of merging defaults, profile and flags
type finalConfiguration struct {
	mode      records.Mode
	format    string
	output    string
	recursive bool
	verbose   bool
	noColor   bool
	quiet     bool
	debug     bool
	preflight bool
}

// environment is what run needs from the process
type environment struct {
	stdout      io.Writer
	stderr      io.Writer
	interactive bool // stderr is a terminal
	stdoutTTY   bool
}

func main() {
	env := environment{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isTerminal(os.Stderr),
		stdoutTTY:   isTerminal(os.Stdout),
	}
	os.Exit(run(os.Args[1:], env))
}

func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("tiffpdf-meta", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&flags.mode, "mode", "", "File type to process: tiff or pdf")
	fs.Var(&flags.files, "file", "File, directory or glob pattern to process (repeatable)")
	fs.BoolVar(&flags.recursive, "recursive", false, "Descend into subdirectories")
	fs.StringVar(&flags.format, "format", "", "Output format: text, csv, json, yaml, xlsx")
	fs.StringVar(&flags.output, "output", "", "Path to output file (if not specified, output to stdout)")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&flags.profileName, "profile", "", "Profile name to use from config file")
	fs.BoolVar(&flags.listProfiles, "list-profiles", false, "List available profiles in config file")
	fs.BoolVar(&flags.verbose, "verbose", false, "Include the Full Path column in text output")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.quiet, "quiet", false, "Suppress progress and status output")
	fs.BoolVar(&flags.debug, "debug", false, "Log every extraction step and timing")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")
	fs.BoolVar(&flags.showHelp, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flags.showHelp = true
			return flags, nil
		}
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		flags.set[f.Name] = true
	})
	flags.args = fs.Args()
	return flags, nil
}

// run executes the command line and returns the process exit code
func run(args []string, env environment) int {
	flags, err := parseFlags(args)
	if err != nil {
		printError(env.stderr, "%v", err)
		fmt.Fprintln(env.stderr, "Use 'tiffpdf-meta --help' for usage")
		return 1
	}

	if flags.showVersion {
		fmt.Fprintln(env.stdout, version.Info())
		return 0
	}

	cfg := loadConfiguration(env.stderr, flags.configFile)

	if flags.showHelp {
		helpSystem := help.NewSystem(env.stdout, flags.noColor || cfg.Defaults.NoColor || !env.stdoutTTY)
		switch len(flags.args) {
		case 0:
			helpSystem.ShowGeneralHelp()
			return 0
		case 1:
			if helpSystem.ShowTopic(flags.args[0]) {
				return 0
			}
			printError(env.stderr, "unknown help topic '%s'. Available topics: %s", flags.args[0], strings.Join(help.Topics, ", "))
			return 1
		default:
			printError(env.stderr, "too many arguments for help command")
			return 1
		}
	}

	if flags.listProfiles {
		listProfiles(env.stdout, cfg)
		return 0
	}

	activeProfile, err := selectProfile(cfg, flags.profileName)
	if err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}

	final, err := resolveConfiguration(cfg, activeProfile, flags)
	if err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}
	if final.noColor || !env.interactive {
		color.NoColor = true
	}

	observer, debugObs := newObserver(env.stderr, final)

	inputs := append([]string{}, flags.files...)
	inputs = append(inputs, flags.args...)
	if len(inputs) == 0 {
		printError(env.stderr, "at least one file, directory or glob pattern is required")
		return 1
	}

	sel, err := selection.Collect(inputs, selection.Options{Mode: final.mode, Recursive: final.recursive})
	if err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}
	if debugObs != nil {
		for _, s := range sel.Skipped {
			debugObs.LogDetail("selection", fmt.Sprintf("skipped %s: %s", s.Path, s.Reason))
		}
	}
	if len(sel.Files) == 0 {
		printError(env.stderr, "no %s files found", final.mode.FileType())
		return 1
	}

	format, err := formatters.ResolveFormat(final.format, final.output)
	if err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}
	if format == "xlsx" && final.output == "" {
		printError(env.stderr, "xlsx output requires --output")
		return 1
	}

	var progress *progressDisplay
	if !final.quiet && !final.debug && env.interactive {
		progress = newProgressDisplay(env.stderr, len(sel.Files))
	}

	result, err := extract.Run(extract.Batch{Mode: final.mode, Files: sel.Files}, extract.Options{
		Observer:  observer,
		Progress:  progress.callback(),
		Preflight: final.preflight,
	})
	progress.finish()
	if err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}

	options := formatters.FormatterOptions{
		NoColor: plainOutput(final, env),
		Verbose: final.verbose,
	}
	if err := writeOutput(env.stdout, final.output, format, result, options); err != nil {
		printError(env.stderr, "%v", err)
		return 1
	}

	if !final.quiet {
		printStatus(env.stderr, result, final.output)
	}
	return 0
}

// plainOutput reports whether rendered output must carry no ANSI codes.
// Files never get color, stdout only when it is a terminal.
func plainOutput(final *finalConfiguration, env environment) bool {
	return final.noColor || final.output != "" || !env.stdoutTTY
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(stderr io.Writer, configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

func listProfiles(stdout io.Writer, cfg *config.Config) {
	profiles := cfg.ListProfiles()
	if len(profiles) == 0 {
		fmt.Fprintln(stdout, "No profiles defined in configuration file.")
		return
	}
	fmt.Fprintln(stdout, "Available profiles:")
	for _, name := range profiles {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Fprintf(stdout, "  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Fprintf(stdout, "  - %s\n", name)
		}
	}
}

func selectProfile(cfg *config.Config, name string) (*config.Profile, error) {
	if name == "" {
		return nil, nil
	}
	profile := cfg.GetProfile(name)
	if profile == nil {
		return nil, fmt.Errorf("profile '%s' not found. Available profiles: %s", name, strings.Join(cfg.ListProfiles(), ", "))
	}
	return profile, nil
}

// resolveConfiguration applies defaults, then the profile, then explicitly set flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *cliFlags) (*finalConfiguration, error) {
	final := &finalConfiguration{}

	// Mode
	mode := cfg.Defaults.Mode
	if activeProfile != nil && activeProfile.Mode != "" {
		mode = activeProfile.Mode
	}
	if flags.set["mode"] {
		mode = flags.mode
	}
	parsed, err := records.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	final.mode = parsed

	// Format and output
	final.format = cfg.Defaults.Format
	final.output = cfg.Defaults.Output
	if activeProfile != nil {
		if activeProfile.Format != "" {
			final.format = activeProfile.Format
		}
		if activeProfile.Output != "" {
			final.output = activeProfile.Output
		}
	}
	if flags.set["format"] {
		final.format = flags.format
	}
	if flags.set["output"] {
		final.output = flags.output
	}

	// Switches
	final.recursive = cfg.Defaults.Recursive || (activeProfile != nil && activeProfile.Recursive)
	if flags.set["recursive"] {
		final.recursive = flags.recursive
	}
	final.noColor = cfg.Defaults.NoColor
	if flags.set["no-color"] {
		final.noColor = flags.noColor
	}
	final.quiet = cfg.Defaults.Quiet
	if flags.set["quiet"] {
		final.quiet = flags.quiet
	}
	final.debug = cfg.Defaults.Debug
	if flags.set["debug"] {
		final.debug = flags.debug
	}
	final.verbose = flags.verbose
	final.preflight = cfg.PDF.Preflight

	return final, nil
}

// newObserver picks the observer for the run. In debug mode the debug
// observer is returned twice so callers can log selection details.
func newObserver(stderr io.Writer, final *finalConfiguration) (observability.Observer, *observability.DebugObserver) {
	level := observability.LevelFor(final.debug, final.quiet)
	if level == observability.ObservabilityDebug {
		d := observability.NewDebugObserver(stderr)
		return d, d
	}
	return observability.NewStandardObserver(level, stderr), nil
}

func printError(stderr io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: %s\n", fmt.Sprintf(format, args...))
}

func printStatus(stderr io.Writer, result *extract.Result, output string) {
	green := color.New(color.FgGreen)
	green.Fprintf(stderr, "Extracted metadata from %d items\n", len(result.Records))
	if result.Failed > 0 {
		color.New(color.FgYellow).Fprintf(stderr, "%d of %d files could not be read\n", result.Failed, result.Files)
	}
	if output != "" {
		fmt.Fprintf(stderr, "Saved to %s\n", output)
	}
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
