// Package cmd implements the CLI application computing Schedule NEC inputs.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

const (
	EnvConfig   = "NEC_CONFIG"
	EnvLogLevel = "NEC_LOG_LEVEL"
)

// DefaultConfig is the run file used when neither -config nor NEC_CONFIG is set.
const DefaultConfig = "nec.yaml"

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dividendsCmd{}, "tax forms")
	c.Register(&gainsCmd{}, "tax forms")
	c.Register(&showCmd{}, "inspection")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML run file. Defaults to $"+EnvConfig+" or "+DefaultConfig)
var Verbose = flag.Bool("v", false, "Log progress at debug level")

// LoadEnv loads the .env file of the working directory, if any.
func LoadEnv() {
	// a missing .env is the common case
	_ = godotenv.Load()
}

// ConfigPath returns the run file selected by the flags and the environment.
func ConfigPath() string {
	if *configFile != "" {
		return *configFile
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultConfig
}

// NewLogger returns the logger of the application, writing to stderr at the
// level named by NEC_LOG_LEVEL (info by default).
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	if s := os.Getenv(EnvLogLevel); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid %s %q, using info\n", EnvLogLevel, s)
		}
	}
	if *Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openConfig loads the run file, reporting errors to stderr.
func openConfig() (*Config, bool) {
	path := ConfigPath()
	c, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run file %q: %v\n", path, err)
		return nil, false
	}
	return c, true
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(strings.TrimLeft(out, "\n"))
}
