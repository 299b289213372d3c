package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/timing"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSpeed     = 1.0
	DefaultServerURL = "http://localhost:5000"
	DefaultAddr      = ":5000"
	DefaultStore     = "file"
	DefaultDataPath  = "data/sessions.json"
	DefaultTheme     = "ocean"
)

type Config struct {
	Algorithm string       `yaml:"algorithm"`
	Size      int          `yaml:"size"`
	Speed     float64      `yaml:"speed"`
	Username  string       `yaml:"username"`
	Seed      int64        `yaml:"seed"`
	Preset    string       `yaml:"preset"`
	Theme     string       `yaml:"theme"`
	Layout    model.Layout `yaml:"layout"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	// URL is where the client reaches the persistence server. An empty URL
	// reads and writes the local store directly.
	URL   string `yaml:"url"`
	Addr  string `yaml:"addr"`
	Store string `yaml:"store"`
	Data  string `yaml:"data"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      model.DefaultSize,
		Speed:     DefaultSpeed,
		Theme:     DefaultTheme,
		Layout:    model.DefaultLayout(),
		Server: ServerConfig{
			URL:   DefaultServerURL,
			Addr:  DefaultAddr,
			Store: DefaultStore,
			Data:  DefaultDataPath,
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps size and speed and fills blank fields with defaults.
// Out-of-range input is corrected silently.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Algorithm == "" {
		c.Algorithm = def.Algorithm
	}
	c.Size = model.ClampSize(c.Size)
	c.Speed = timing.ClampSpeed(c.Speed)
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		c.Layout = def.Layout
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.Store == "" {
		c.Server.Store = def.Server.Store
	}
	if c.Server.Data == "" && c.Server.Store != "memory" {
		c.Server.Data = def.Server.Data
	}
}

// Validate reports settings that cannot be corrected by Normalize.
func (c *Config) Validate() error {
	if _, err := engine.Lookup(c.Algorithm); err != nil {
		return err
	}
	switch c.Server.Store {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store %q (want file, sqlite or memory)", c.Server.Store)
	}
	if c.Preset != "" && GetPreset(c.Preset) == nil {
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
