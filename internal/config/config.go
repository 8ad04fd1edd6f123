// Package config loads the YAML configuration shared by the server and the
// CLIs. The zero-file case is fully supported: defaults alone are a complete
// runnable configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
)

// Environment overrides applied after the file, for deploy-varying values.
const (
	EnvAddr         = "SENTIMENT_ADDR"
	EnvInferenceURL = "SENTIMENT_INFERENCE_URL"
)

type ServerConfig struct {
	Address string `yaml:"address"`
	// Mode is the gin mode: debug, release or test.
	Mode      string `yaml:"mode"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type InferenceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c InferenceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type PredictConfig struct {
	Model         string `yaml:"model"`
	MaxTextLength int    `yaml:"max_text_length"`
}

type LimitsConfig struct {
	MaxConcurrency  int64   `yaml:"max_concurrency"`
	HealthThreshold float64 `yaml:"health_threshold"`
}

type BenchmarkConfig struct {
	RunsPerSample int                `yaml:"runs_per_sample"`
	WarmupText    string             `yaml:"warmup_text"`
	Models        []evalset.ModelRef `yaml:"models"`
	Samples       []evalset.Sample   `yaml:"samples"`
}

type CompareConfig struct {
	Models []evalset.ModelRef `yaml:"models"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Inference InferenceConfig `yaml:"inference"`
	Predict   PredictConfig   `yaml:"predict"`
	Limits    LimitsConfig    `yaml:"limits"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Compare   CompareConfig   `yaml:"compare"`
	StaticDir string          `yaml:"static_dir"`
}

// Load reads the YAML file at path, fills defaults, applies environment
// overrides and validates model/sample lists. A missing file is not an
// error; the defaults are used as-is.
func Load(path string) (Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnv()

	if err := c.validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// applyDefaults fills every unset field. List fields are defaulted only when
// absent: an explicit empty list stays empty, which is how a "benchmark
// nothing" configuration is expressed.
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":7860"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = "text"
	}
	if c.Inference.BaseURL == "" {
		c.Inference.BaseURL = "http://127.0.0.1:8000"
	}
	if c.Inference.TimeoutSeconds <= 0 {
		c.Inference.TimeoutSeconds = 30
	}
	if c.Predict.Model == "" {
		c.Predict.Model = evalset.DefaultPredictModel
	}
	if c.Predict.MaxTextLength <= 0 {
		c.Predict.MaxTextLength = 2000
	}
	if c.Limits.MaxConcurrency <= 0 {
		c.Limits.MaxConcurrency = 4
	}
	if c.Limits.HealthThreshold <= 0 {
		c.Limits.HealthThreshold = 0.8
	}
	if c.Benchmark.RunsPerSample <= 0 {
		c.Benchmark.RunsPerSample = 3
	}
	if c.Benchmark.WarmupText == "" {
		c.Benchmark.WarmupText = "warmup"
	}
	if c.Benchmark.Models == nil {
		c.Benchmark.Models = evalset.DefaultBenchModels()
	}
	if c.Benchmark.Samples == nil {
		c.Benchmark.Samples = evalset.DefaultSamples()
	}
	if c.Compare.Models == nil {
		c.Compare.Models = evalset.DefaultCompareModels()
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvInferenceURL); v != "" {
		c.Inference.BaseURL = v
	}
}

func (c *Config) validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if c.Predict.Model == "" {
		return errors.New("predict model must not be empty")
	}
	for _, m := range c.Benchmark.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("benchmark model: %w", err)
		}
	}
	for _, s := range c.Benchmark.Samples {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("benchmark sample: %w", err)
		}
	}
	for _, m := range c.Compare.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("compare model: %w", err)
		}
	}
	return nil
}
