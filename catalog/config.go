// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// DefaultCapacity is the registration ceiling of a catalog. Registering more
// units than this is treated as a program logic error.
const DefaultCapacity = 4095

// Config controls a catalog. It can be loaded from a TOML file.
type Config struct {
	Capacity int    `toml:"capacity"`
	TimeUnit string `toml:"time_unit"`
	LogLevel string `toml:"log_level"`
	FailFast bool   `toml:"fail_fast"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		TimeUnit: Micro.String(),
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decoding %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, errors.Newf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "validating %s", path)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return errors.Newf("capacity must be positive, got %d", c.Capacity)
	}
	if _, err := ParseTimeUnit(c.TimeUnit); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Unit returns the parsed time unit.
func (c Config) Unit() TimeUnit {
	u, err := ParseTimeUnit(c.TimeUnit)
	if err != nil {
		return Micro
	}
	return u
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return lvl, nil
}
