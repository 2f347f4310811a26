// Package config loads chopsim run configurations.
//
// A configuration looks like:
//
//	frames: 120
//	fps: 60
//	log_level: info
//	parameters:
//	  Speed: "2.5"
//	  Shape: Ramp
//	pulses:
//	  Reset: [30, 90]
//	input:
//	  rate: 60
//	  channels:
//	    - [0, 0.5, 1]
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultFrames = 60
	defaultFPS    = 60
)

// Input is an upstream operator held constant for the whole run.
type Input struct {
	Rate     float64     `yaml:"rate"`
	Channels [][]float32 `yaml:"channels"`
}

// Config is one simulator run.
type Config struct {
	Frames   int     `yaml:"frames"`
	FPS      float64 `yaml:"fps"`
	Samples  int32   `yaml:"samples,omitempty"`
	LogLevel string  `yaml:"log_level,omitempty"`

	// Parameters are set by name before the first frame, using the same
	// text a user would type into the parameter dialog.
	Parameters map[string]string `yaml:"parameters,omitempty"`

	// Pulses maps a pulse parameter to the frames it is pressed on.
	Pulses map[string][]int `yaml:"pulses,omitempty"`

	Input *Input `yaml:"input,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Frames:     defaultFrames,
		FPS:        defaultFPS,
		Parameters: make(map[string]string),
		Pulses:     make(map[string][]int),
	}
}

// Load reads a configuration file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Parameters == nil {
		cfg.Parameters = make(map[string]string)
	}
	if cfg.Pulses == nil {
		cfg.Pulses = make(map[string][]int)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and the input shape.
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", c.FPS)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", c.Samples)
	}
	for name, frames := range c.Pulses {
		for _, f := range frames {
			if f < 0 {
				return fmt.Errorf("pulse %s: frame %d is negative", name, f)
			}
		}
	}
	if c.Input != nil {
		if c.Input.Rate <= 0 {
			return fmt.Errorf("input rate must be positive, got %g", c.Input.Rate)
		}
		for i, ch := range c.Input.Channels {
			if len(ch) != len(c.Input.Channels[0]) {
				return fmt.Errorf("input channel %d has %d samples, channel 0 has %d", i, len(ch), len(c.Input.Channels[0]))
			}
		}
	}
	return nil
}

// SetParameter records a NAME=VALUE assignment.
func (c *Config) SetParameter(assignment string) error {
	name, value, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected NAME=VALUE, got %q", assignment)
	}
	c.Parameters[name] = strings.TrimSpace(value)
	return nil
}

// AddPulse records a NAME@FRAME press.
func (c *Config) AddPulse(press string) error {
	name, at, ok := strings.Cut(press, "@")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected NAME@FRAME, got %q", press)
	}
	frame, err := strconv.Atoi(strings.TrimSpace(at))
	if err != nil || frame < 0 {
		return fmt.Errorf("invalid frame in %q", press)
	}
	c.Pulses[name] = append(c.Pulses[name], frame)
	return nil
}

// ParameterNames returns the configured parameter names, sorted.
func (c *Config) ParameterNames() []string {
	names := make([]string, 0, len(c.Parameters))
	for name := range c.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PulseNames returns the scheduled pulse names, sorted.
func (c *Config) PulseNames() []string {
	names := make([]string, 0, len(c.Pulses))
	for name := range c.Pulses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
