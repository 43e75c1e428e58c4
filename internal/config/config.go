// Package config resolves the task file location and behavior settings from
// defaults, TOML config files and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// DefaultFile is the task file used when nothing else is configured.
	DefaultFile = "tasks.json"

	// UserConfigFile is the config filename inside the user config directory.
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the config filename looked up in the working directory.
	ProjectConfigFile = ".todo.toml"
)

// Config holds resolved settings for one invocation.
type Config struct {
	// File is the path of the JSON task file.
	File string

	// Strict reports malformed task files as errors instead of
	// treating them as empty.
	Strict bool

	// Quiet suppresses informational output.
	Quiet bool

	// Debug enables debug logging.
	Debug bool

	// Logger receives diagnostic output. Never nil after Load.
	Logger *zap.Logger

	// Sources lists the config files that were applied, in order.
	Sources []string
}

// fileConfig mirrors the TOML keys. Pointers distinguish unset keys from
// zero values so later layers only override what they mention.
type fileConfig struct {
	File   *string `toml:"file"`
	Strict *bool   `toml:"strict"`
	Quiet  *bool   `toml:"quiet"`
}

// LoadOptions controls where Load looks for config files.
type LoadOptions struct {
	// Path is an explicit config file. When set, the user and project
	// files are ignored and the file must exist.
	Path string

	// Dir is the user config directory. Defaults to DefaultConfigDir().
	Dir string

	// WorkDir is searched for ProjectConfigFile. Defaults to ".".
	WorkDir string

	// Logger is attached to the returned Config.
	Logger *zap.Logger
}

// Load builds a Config from, in increasing priority:
//  1. Defaults
//  2. User config file (DefaultConfigDir()/config.toml)
//  3. Project config file (.todo.toml in the working directory)
//
// An explicit Path replaces layers 2 and 3. Flags are applied by the caller.
func Load(opts LoadOptions) (*Config, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cfg := &Config{
		File:   DefaultFile,
		Logger: log,
	}

	if opts.Path != "" {
		if err := cfg.applyFile(expandPath(opts.Path)); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	for _, path := range []string{
		filepath.Join(dir, UserConfigFile),
		filepath.Join(workDir, ProjectConfigFile),
	} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyFile decodes one TOML file and overrides the keys it sets.
func (c *Config) applyFile(path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("loading config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if fc.File != nil {
		file := strings.TrimSpace(*fc.File)
		if file == "" {
			return fmt.Errorf("loading config file %s: file must not be empty", path)
		}
		c.File = resolveRelative(expandPath(file), filepath.Dir(path))
	}
	if fc.Strict != nil {
		c.Strict = *fc.Strict
	}
	if fc.Quiet != nil {
		c.Quiet = *fc.Quiet
	}

	c.Sources = append(c.Sources, path)
	c.Logger.Debug("applied config file", zap.String("path", path))
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

// resolveRelative anchors a relative path at base.
func resolveRelative(p, base string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
