package main

import (
	"fmt"
	"os"
	"time"

	"ojplay/internal/common/cache"
	"ojplay/internal/fakeexec/service"
	"ojplay/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr        = "127.0.0.1:8080"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultStatusTTL       = 30 * time.Minute
	defaultProblemsFile    = "configs/problems.yaml"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// JobsConfig holds the fake job lifecycle settings.
type JobsConfig struct {
	// StatusTTL is how long a job stays queryable after submission.
	StatusTTL time.Duration `yaml:"statusTTL"`
	// StepsToComplete is the number of status reads before a job settles.
	StepsToComplete int `yaml:"stepsToComplete"`
}

// AppConfig holds the fake-backend configuration.
type AppConfig struct {
	Server       ServerConfig      `yaml:"server"`
	Logger       logger.Config     `yaml:"logger"`
	Redis        cache.RedisConfig `yaml:"redis"`
	Jobs         JobsConfig        `yaml:"jobs"`
	ProblemsFile string            `yaml:"problemsFile"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// An empty redis addr is valid: the backend then runs an embedded redis.
func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Jobs.StatusTTL == 0 {
		cfg.Jobs.StatusTTL = defaultStatusTTL
	}
	if cfg.Jobs.StepsToComplete <= 0 {
		cfg.Jobs.StepsToComplete = service.DefaultStepsToComplete
	}
	if cfg.ProblemsFile == "" {
		cfg.ProblemsFile = defaultProblemsFile
	}
	applyRedisDefaults(&cfg.Redis)
}

func applyRedisDefaults(cfg *cache.RedisConfig) {
	defaults := cache.DefaultRedisConfig()
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = defaults.PoolSize
	}
}
