package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigCols            = "cols"
	ConfigRows            = "rows"
	ConfigWinLength       = "win-length"
	ConfigDepth           = "depth"
	ConfigBranchCap       = "branch-cap"
	ConfigTimeBudget      = "time-budget"
	ConfigTTFractionOfMem = "tt-fraction-of-mem"
	ConfigCPUProfile      = "cpu-profile"
	ConfigMemProfile      = "mem-profile"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayLogfile = "autoplay-logfile"
	ConfigConfigFile      = "config-file"
)

const (
	DefaultCols      = 15
	DefaultRows      = 15
	DefaultWinLength = 5
)

var ErrBadSetting = errors.New("bad setting")

// Config is a thin wrapper around a viper instance. Settings come, in order
// of precedence, from command line flags, GOMOKU_ environment variables, an
// optional YAML config file, and the defaults below.
type Config struct {
	viper.Viper
	args []string
}

var defaults = map[string]any{
	ConfigDebug:           false,
	ConfigCols:            DefaultCols,
	ConfigRows:            DefaultRows,
	ConfigWinLength:       DefaultWinLength,
	ConfigDepth:           5,
	ConfigBranchCap:       20,
	ConfigTimeBudget:      5 * time.Second,
	ConfigTTFractionOfMem: 1.0 / 256,
	ConfigCPUProfile:      "",
	ConfigMemProfile:      "",
	ConfigAutoplayThreads: 0,
	ConfigAutoplayLogfile: "",
	ConfigConfigFile:      "",
}

func setDefaults(v *viper.Viper) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
}

// DefaultConfig returns a config holding only the defaults. Handy for tests
// and for callers that never parse a command line.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

// Load reads flags from args, then the environment, then the config file
// named by --config-file (if any).
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigCols, DefaultCols, "number of columns on the board")
	fs.Int(ConfigRows, DefaultRows, "number of rows on the board")
	fs.Int(ConfigWinLength, DefaultWinLength, "stones in a row needed to win")
	fs.Int(ConfigDepth, 5, "deepest ply the engine searches to")
	fs.Int(ConfigBranchCap, 20, "most candidate moves tried per node")
	fs.Duration(ConfigTimeBudget, 5*time.Second, "soft time limit per engine move")
	fs.Float64(ConfigTTFractionOfMem, 1.0/256, "fraction of system memory for the transposition table")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.Int(ConfigAutoplayThreads, 0, "autoplay worker count (0 means one per cpu)")
	fs.String(ConfigAutoplayLogfile, "", "append a YAML record of every autoplay game here")
	fs.String(ConfigConfigFile, "", "YAML file with settings")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("gomoku")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if f := c.GetString(ConfigConfigFile); f != "" {
		c.SetConfigFile(f)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("reading config file %s: %w", f, err)
			}
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	for _, k := range []string{ConfigCols, ConfigRows, ConfigWinLength} {
		if c.GetInt(k) < 1 {
			return fmt.Errorf("%w: %s must be positive", ErrBadSetting, k)
		}
	}
	if f := c.GetFloat64(ConfigTTFractionOfMem); f <= 0 || f >= 1 {
		return fmt.Errorf("%w: %s must be in (0, 1)", ErrBadSetting, ConfigTTFractionOfMem)
	}
	return nil
}

// SetValue parses a value typed at the shell and stores it under key.
// Only known keys may be set.
func (c *Config) SetValue(key, value string) error {
	d, ok := defaults[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %s", ErrBadSetting, key)
	}
	var v any
	var err error
	switch d.(type) {
	case bool:
		v, err = parseBool(value)
	case int:
		v, err = strconv.Atoi(value)
	case float64:
		v, err = strconv.ParseFloat(value, 64)
	case time.Duration:
		v, err = time.ParseDuration(value)
	default:
		v = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%s: %v", ErrBadSetting, key, value, err)
	}
	old := c.Get(key)
	c.Set(key, v)
	if err := c.validate(); err != nil {
		c.Set(key, old)
		return err
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// Args returns the command line arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings returns every setting for display. There are no secrets
// among them at the moment, but callers that log the config should use this.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
