// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Country    string           `yaml:"country" mapstructure:"country"`
	Translate  bool             `yaml:"translate" mapstructure:"translate"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Oracle     OracleConfig     `yaml:"oracle" mapstructure:"oracle"`
	Review     ReviewConfig     `yaml:"review" mapstructure:"review"`
	Duplicates DuplicatesConfig `yaml:"duplicates" mapstructure:"duplicates"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// BatchConfig controls batch partitioning and worker concurrency. The same
// worker limit applies to both the invoice-extraction stage (per file) and
// the standardization stage (per batch).
type BatchConfig struct {
	Size    int `yaml:"size" mapstructure:"size"`
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OracleConfig holds settings for the external standardization endpoint.
type OracleConfig struct {
	APIKey        string        `yaml:"api_key" mapstructure:"api_key"`
	Model         string        `yaml:"model" mapstructure:"model"`
	MaxTokens     int64         `yaml:"max_tokens" mapstructure:"max_tokens"`
	RetryAttempts int           `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	TimeoutSecs   int           `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec    float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// Timeout returns the per-call timeout as a duration.
func (c OracleConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ReviewConfig controls the review-queue classifier.
type ReviewConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
}

// DuplicatesConfig controls the fuzzy duplicate detector.
type DuplicatesConfig struct {
	SimilarityThreshold int `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	Ceiling             int `yaml:"ceiling" mapstructure:"ceiling"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PMSCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("country", "AE")
	v.SetDefault("translate", false)
	v.SetDefault("batch.size", 10)
	v.SetDefault("batch.workers", 5)
	v.SetDefault("oracle.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("oracle.max_tokens", 8000)
	v.SetDefault("oracle.retry_attempts", 3)
	v.SetDefault("oracle.retry_delay", "2s")
	v.SetDefault("oracle.timeout_secs", 120)
	v.SetDefault("oracle.rate_per_sec", 2)
	v.SetDefault("oracle.rate_burst", 5)
	v.SetDefault("review.confidence_threshold", 80)
	v.SetDefault("duplicates.similarity_threshold", 90)
	v.SetDefault("duplicates.ceiling", 3000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
