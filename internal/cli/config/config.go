package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"ojplay/internal/catalog"
	"ojplay/internal/session"
	"ojplay/internal/submission"
	"ojplay/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "http://127.0.0.1:8080"
	DefaultTimeout     = 10 * time.Second
	DefaultHistoryFile = "configs/.cli_history"
	DefaultLogLevel    = "warn"
)

// Config holds CLI configuration.
type Config struct {
	BaseURL          string        `yaml:"baseURL"`
	Timeout          time.Duration `yaml:"timeout"`
	PollInterval     time.Duration `yaml:"pollInterval"`
	DefaultProblemID int64         `yaml:"defaultProblemID"`
	Language         string        `yaml:"language"`
	UserID           string        `yaml:"userID"`
	TimeoutMs        int           `yaml:"timeoutMs"`
	MemoryLimitMB    int           `yaml:"memoryLimitMB"`
	HistoryFile      string        `yaml:"historyFile"`
	Color            *bool         `yaml:"color"`
	Logger           logger.Config `yaml:"logger"`
}

// Load reads the config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read config file failed: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file failed: %w", err)
		}
	}
	applyDefaults(&cfg)
	if _, ok := submission.Lookup(cfg.Language); !ok {
		return cfg, fmt.Errorf("unsupported language %q", cfg.Language)
	}
	return cfg, nil
}

// ColorEnabled reports whether output should be styled.
func (c Config) ColorEnabled() bool {
	return c.Color != nil && *c.Color
}

// Encoder returns a submission encoder carrying the configured limits.
func (c Config) Encoder() *submission.Encoder {
	return &submission.Encoder{
		UserID:        c.UserID,
		TimeoutMs:     c.TimeoutMs,
		MemoryLimitMB: c.MemoryLimitMB,
	}
}

// SessionOptions maps the config onto session options.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		PollInterval:     c.PollInterval,
		DefaultProblemID: c.DefaultProblemID,
		Language:         c.Language,
		Encoder:          c.Encoder(),
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = session.DefaultPollInterval
	}
	if cfg.DefaultProblemID == 0 {
		cfg.DefaultProblemID = catalog.DefaultProblemID
	}
	if cfg.Language == "" {
		cfg.Language = submission.DefaultLanguage
	}
	if cfg.UserID == "" {
		cfg.UserID = submission.DefaultUserID
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = submission.DefaultTimeoutMs
	}
	if cfg.MemoryLimitMB == 0 {
		cfg.MemoryLimitMB = submission.DefaultMemoryLimitMB
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryFile
	}
	if cfg.Color == nil {
		value := true
		cfg.Color = &value
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLogLevel
	}
	if cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = "stderr"
	}
}
