package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// JWTSecretEnv overrides server.jwtSecret when set.
const JWTSecretEnv = "DECISION_COACH_JWT_SECRET"

type LLMConfig struct {
	Enabled        bool   `json:"enabled"`
	URL            string `json:"url"`
	Model          string `json:"model"`
	APIKey         string `json:"apiKey"`
	DailyLimit     int    `json:"dailyLimit"`
	CacheTTLHours  int    `json:"cacheTTLHours"`
	MaxConcurrent  int    `json:"maxConcurrent"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

func (l LLMConfig) CacheTTL() time.Duration {
	return time.Duration(l.CacheTTLHours) * time.Hour
}

func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Subpath   string `json:"subpath"`
		JWTSecret string `json:"jwtSecret"`
		// Mode is gin's mode: debug, release or test.
		Mode string `json:"mode"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	// SQLite is used when Postgres.DSN is empty.
	SQLite struct {
		Path string `json:"path"`
	} `json:"sqlite"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	LLM  LLMConfig `json:"llm"`
	CORS struct {
		Origins []string `json:"origins"`
	} `json:"cors"`
	RateLimit struct {
		PerSecond float64 `json:"perSecond"`
		Burst     int     `json:"burst"`
	} `json:"rateLimit"`
	Log struct {
		Mode string `json:"mode"`
	} `json:"log"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		c, err := Parse(raw)
		if err != nil {
			cfgErr = err
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

// Parse decodes, applies env overrides and defaults, then validates.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("invalid config format: %w", err)
	}
	if v := os.Getenv(JWTSecretEnv); v != "" {
		c.Server.JWTSecret = v
	}
	c.applyDefaults()
	if c.Server.JWTSecret == "" {
		return nil, errors.New("jwtSecret must be set in config")
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "decision-coach.db"
	}
	if c.LLM.DailyLimit <= 0 {
		c.LLM.DailyLimit = 10
	}
	if c.LLM.CacheTTLHours <= 0 {
		c.LLM.CacheTTLHours = 24
	}
	if c.LLM.MaxConcurrent <= 0 {
		c.LLM.MaxConcurrent = 2
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.RateLimit.PerSecond <= 0 {
		c.RateLimit.PerSecond = 5
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "production"
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
