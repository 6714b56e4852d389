package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgomes/dumb/dumb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type cliOptions struct {
	configPath     string
	stepQuota      int
	recursionLimit int
	stackLimit     int
	trace          bool
}

// fileConfig mirrors the optional YAML config file. Unset keys leave the
// engine defaults in place.
type fileConfig struct {
	StepQuota      *int  `yaml:"step_quota"`
	RecursionLimit *int  `yaml:"recursion_limit"`
	StackLimit     *int  `yaml:"stack_limit"`
	Trace          *bool `yaml:"trace"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var cfg fileConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return &cfg, nil
}

// engineConfig merges the config file with command-line flags; flags that
// were set explicitly win.
func (o *cliOptions) engineConfig(cmd *cobra.Command) (dumb.Config, error) {
	var cfg dumb.Config
	trace := false

	if o.configPath != "" {
		file, err := loadConfigFile(o.configPath)
		if err != nil {
			return dumb.Config{}, err
		}
		if file.StepQuota != nil {
			cfg.StepQuota = *file.StepQuota
		}
		if file.RecursionLimit != nil {
			cfg.RecursionLimit = *file.RecursionLimit
		}
		if file.StackLimit != nil {
			cfg.StackLimit = *file.StackLimit
		}
		if file.Trace != nil {
			trace = *file.Trace
		}
	}

	flags := cmd.Flags()
	if flags.Changed("step-quota") {
		cfg.StepQuota = o.stepQuota
	}
	if flags.Changed("recursion-limit") {
		cfg.RecursionLimit = o.recursionLimit
	}
	if flags.Changed("stack-limit") {
		cfg.StackLimit = o.stackLimit
	}
	if flags.Changed("trace") {
		trace = o.trace
	}

	if trace {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(zerolog.TraceLevel).
			With().
			Timestamp().
			Logger()
		cfg.Logger = &logger
	}
	return cfg, nil
}
