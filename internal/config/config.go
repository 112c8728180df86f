package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultFPS         = 60
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultCount       = 12
	DefaultRestitution = 0.8
	DefaultGravity     = 400.0
)

type Config struct {
	Scene    string  `yaml:"scene"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
	FPS      int     `yaml:"fps"`

	Arena ArenaConfig `yaml:"arena"`

	// Count and Restitution parameterize the generated scenes.
	Count       int     `yaml:"count"`
	Restitution float64 `yaml:"restitution"`

	// Gravity is a downward uniform field strength. Zero disables it.
	Gravity float64 `yaml:"gravity"`

	// Balls and Fields spell out a scene explicitly. The "custom" scene
	// builds the world from these lists and nothing else.
	Balls  []BallConfig  `yaml:"balls"`
	Fields []FieldConfig `yaml:"fields"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BallConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Restitution float64 `yaml:"restitution"`
	Color       string  `yaml:"color"`
}

// FieldConfig describes one force source. Type selects which of the
// remaining fields matter: "uniform" uses fx/fy, "radial" uses cx/cy,
// strength and min_distance, "drag" uses coefficient.
type FieldConfig struct {
	Type        string  `yaml:"type"`
	FX          float64 `yaml:"fx"`
	FY          float64 `yaml:"fy"`
	CX          float64 `yaml:"cx"`
	CY          float64 `yaml:"cy"`
	Strength    float64 `yaml:"strength"`
	MinDistance float64 `yaml:"min_distance"`
	Coefficient float64 `yaml:"coefficient"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    "random",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Arena: ArenaConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Count:       DefaultCount,
		Restitution: DefaultRestitution,
		Gravity:     DefaultGravity,
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena must have positive size, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	for i, b := range c.Balls {
		if b.Radius <= 0 {
			return fmt.Errorf("ball %d: radius must be positive, got %f", i, b.Radius)
		}
	}
	for i, f := range c.Fields {
		switch f.Type {
		case "uniform", "radial", "drag":
		default:
			return fmt.Errorf("field %d: unknown type %q", i, f.Type)
		}
	}
	return nil
}
