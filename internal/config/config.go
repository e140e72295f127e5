package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`

	Agent struct {
		DelaySeconds int `yaml:"delaySeconds"`
	} `yaml:"agent"`

	Dashboard struct {
		Port            int    `yaml:"port"`
		APIBaseURL      string `yaml:"apiBaseURL"`
		CacheTTLSeconds int    `yaml:"cacheTTLSeconds"`
	} `yaml:"dashboard"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rateLimit"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8000
	cfg.Store.Path = "data/applicants.json"
	cfg.Agent.DelaySeconds = 2
	cfg.Dashboard.Port = 8501
	cfg.Dashboard.APIBaseURL = "http://localhost:8000"
	cfg.Dashboard.CacheTTLSeconds = 3
	cfg.CORS.AllowedOrigins = []string{
		"http://localhost:8501",
		"http://127.0.0.1:8501",
		"http://localhost:3000",
	}
	cfg.RateLimit.RPS = 50
	cfg.RateLimit.Burst = 100
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	return &cfg
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// AgentDelay returns the simulated decision-agent latency.
func (c *Config) AgentDelay() time.Duration {
	return time.Duration(c.Agent.DelaySeconds) * time.Second
}

// DashboardCacheTTL returns how long the dashboard may serve a cached
// applicant list before re-polling the API.
func (c *Config) DashboardCacheTTL() time.Duration {
	return time.Duration(c.Dashboard.CacheTTLSeconds) * time.Second
}
