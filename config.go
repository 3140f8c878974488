package uhash

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the file form of the table options. Zero fields keep their
// defaults.
//
//	min_size = 8
//	initial_size = 32
//	growth_load = 1.0
//	shrink_load = 0.25
type Config struct {
	MinSize      int     `toml:"min_size"`
	InitialSize  int     `toml:"initial_size"`
	MaxSize      int     `toml:"max_size"`
	GrowthLoad   float64 `toml:"growth_load"`
	ShrinkLoad   float64 `toml:"shrink_load"`
	GrowthFactor float64 `toml:"growth_factor"`
	ShrinkFactor float64 `toml:"shrink_factor"`
}

// DefaultConfig returns the settings a table uses when given no options.
func DefaultConfig() Config {
	return Config{
		MinSize:      DefaultMinSize,
		InitialSize:  DefaultMinSize,
		MaxSize:      DefaultMaxSize,
		GrowthLoad:   DefaultGrowthLoad,
		ShrinkLoad:   DefaultShrinkLoad,
		GrowthFactor: DefaultGrowthFactor,
		ShrinkFactor: DefaultShrinkFactor,
	}
}

// LoadConfig decodes a TOML file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the non-zero fields of c into table options.
func (c Config) Options() []Option {
	var opts []Option
	if c.MinSize != 0 {
		opts = append(opts, WithMinSize(c.MinSize))
	}
	if c.InitialSize != 0 {
		opts = append(opts, WithInitialSize(c.InitialSize))
	}
	if c.MaxSize != 0 {
		opts = append(opts, WithMaxSize(c.MaxSize))
	}
	if c.GrowthLoad != 0 {
		opts = append(opts, WithGrowthLoad(c.GrowthLoad))
	}
	if c.ShrinkLoad != 0 {
		opts = append(opts, WithShrinkLoad(c.ShrinkLoad))
	}
	if c.GrowthFactor != 0 {
		opts = append(opts, WithGrowthFactor(c.GrowthFactor))
	}
	if c.ShrinkFactor != 0 {
		opts = append(opts, WithShrinkFactor(c.ShrinkFactor))
	}
	return opts
}
