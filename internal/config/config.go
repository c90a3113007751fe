package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seastate/currentsim/internal/gmprocess"
)

const (
	DefaultChannel   = "current_velocity"
	DefaultRateHz    = 10.0
	DefaultFrame     = "world"
	DefaultHTTPAddr  = ":8080"
	DefaultRedisAddr = "localhost:6379"
)

type Config struct {
	Channel  string          `yaml:"channel"`
	RateHz   float64         `yaml:"rate_hz"`
	Frame    string          `yaml:"frame"`
	Seed     uint64          `yaml:"seed"`
	HTTP     HTTPConfig      `yaml:"http"`
	Redis    RedisConfig     `yaml:"redis"`
	Velocity gmprocess.Model `yaml:"velocity"`
	Angle    gmprocess.Model `yaml:"angle"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func DefaultConfig() *Config {
	return &Config{
		Channel: DefaultChannel,
		RateHz:  DefaultRateHz,
		Frame:   DefaultFrame,
		HTTP:    HTTPConfig{Addr: DefaultHTTPAddr},
		Redis:   RedisConfig{Addr: DefaultRedisAddr},
		Velocity: gmprocess.Model{
			Mean: 0, Min: -0.05, Max: 0.05, NoiseAmp: 0.005, Mu: 0.05,
		},
		Angle: gmprocess.Model{
			Mean: 0, Min: -0.1745, Max: 0.1745, NoiseAmp: 0.05, Mu: 0.1,
		},
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
	if c.RateHz <= 0 {
		return fmt.Errorf("rate_hz must be positive, got %g", c.RateHz)
	}
	if c.Channel == "" {
		return fmt.Errorf("channel must not be empty")
	}
	if err := c.Velocity.Validate(); err != nil {
		return fmt.Errorf("velocity: %w", err)
	}
	if err := c.Angle.Validate(); err != nil {
		return fmt.Errorf("angle: %w", err)
	}
	return nil
}
