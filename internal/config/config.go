package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize          = 100
	DefaultMinValue      = 5
	DefaultMaxValue      = 100
	DefaultFPS           = 60
	DefaultPacing        = 1.0
	DefaultLatencyUnitMS = 50
	DefaultTheme         = "classic"
	DefaultDataDir       = "./runs"
)

// EnvPrefix prefixes every environment override, e.g. SORTVIZ_SIZE.
const EnvPrefix = "SORTVIZ_"

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Size          int      `yaml:"size"`
	MinValue      int      `yaml:"min_value"`
	MaxValue      int      `yaml:"max_value"`
	Seed          int64    `yaml:"seed"`
	FPS           int      `yaml:"fps"`
	Pacing        float64  `yaml:"pacing"`
	GraceMS       int      `yaml:"grace_ms"`
	LatencyUnitMS int      `yaml:"latency_unit_ms"`
	Algorithms    []string `yaml:"algorithms"`
	Theme         string   `yaml:"theme"`
	LogLevel      string   `yaml:"log_level"`
	LogFormat     string   `yaml:"log_format"`
	DataDir       string   `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:          DefaultSize,
		MinValue:      DefaultMinValue,
		MaxValue:      DefaultMaxValue,
		FPS:           DefaultFPS,
		Pacing:        DefaultPacing,
		LatencyUnitMS: DefaultLatencyUnitMS,
		Theme:         DefaultTheme,
		LogLevel:      "info",
		LogFormat:     "json",
		DataDir:       DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field outside its accepted range.
func (c *Config) Validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("%w: size %d is negative", ErrInvalid, c.Size)
	case c.MinValue < 1:
		return fmt.Errorf("%w: min_value %d must be at least 1", ErrInvalid, c.MinValue)
	case c.MaxValue < c.MinValue:
		return fmt.Errorf("%w: max_value %d below min_value %d", ErrInvalid, c.MaxValue, c.MinValue)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalid, c.FPS)
	case c.Pacing < 0:
		return fmt.Errorf("%w: pacing %g is negative", ErrInvalid, c.Pacing)
	case c.GraceMS < 0:
		return fmt.Errorf("%w: grace_ms %d is negative", ErrInvalid, c.GraceMS)
	case c.LatencyUnitMS <= 0:
		return fmt.Errorf("%w: latency_unit_ms %d must be positive", ErrInvalid, c.LatencyUnitMS)
	}
	return nil
}

func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

func (c *Config) Grace() time.Duration {
	return time.Duration(c.GraceMS) * time.Millisecond
}

func (c *Config) LatencyUnit() time.Duration {
	return time.Duration(c.LatencyUnitMS) * time.Millisecond
}

// LoadEnv reads .env files (missing files are ignored) and applies SORTVIZ_*
// variables on top of c.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return c.ApplyEnv(os.LookupEnv)
}

// ApplyEnv applies overrides found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"SIZE":            &c.Size,
		"MIN_VALUE":       &c.MinValue,
		"MAX_VALUE":       &c.MaxValue,
		"FPS":             &c.FPS,
		"GRACE_MS":        &c.GraceMS,
		"LATENCY_UNIT_MS": &c.LatencyUnitMS,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, v, err)
		}
		*dst = n
	}

	strs := map[string]*string{
		"THEME":      &c.Theme,
		"LOG_LEVEL":  &c.LogLevel,
		"LOG_FORMAT": &c.LogFormat,
		"DATA_DIR":   &c.DataDir,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvPrefix + "PACING"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %sPACING=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Pacing = f
	}
	if v, ok := lookup(EnvPrefix + "ALGORITHMS"); ok {
		c.Algorithms = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Algorithms = append(c.Algorithms, id)
			}
		}
	}
	return nil
}
