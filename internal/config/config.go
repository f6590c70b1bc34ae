// SPDX-License-Identifier: EPL-2.0

// Package config loads the application configuration from a YAML file
// with built-in defaults and environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from YAML.
type Config struct {
	LogLevel string         `yaml:"log_level"` // "debug", "info", "warn", "error"
	Provider string         `yaml:"provider"`  // synthesis backend: "openai" or "xtts"
	OpenAI   OpenAIConfig   `yaml:"openai"`
	XTTS     XTTSConfig     `yaml:"xtts"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// OpenAIConfig holds settings for the hosted TTS backend.
type OpenAIConfig struct {
	// APIKeyEnv names the environment variable holding the API key.
	// The legacy secret name "Key_1" is consulted as a fallback.
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	Voice     string `yaml:"voice"`
	Format    string `yaml:"format"` // "wav" or "mp3"
}

// XTTSConfig holds settings for the local voice-cloning backend.
type XTTSConfig struct {
	ServerURL string        `yaml:"server_url"`
	Language  string        `yaml:"language"`
	Timeout   time.Duration `yaml:"timeout"`
}

// PipelineConfig holds the default post-processing parameters; CLI
// flags override them per invocation.
type PipelineConfig struct {
	TargetSampleRate int     `yaml:"target_sample_rate"`
	SilenceThreshold float64 `yaml:"silence_threshold"`
	TrimPadSamples   int     `yaml:"trim_pad_samples"`
	Normalize        bool    `yaml:"normalize"`
	NormalizePeak    float64 `yaml:"normalize_peak"`
	SpeedFactor      float64 `yaml:"speed_factor"`
	OutputStem       string  `yaml:"output_stem"`
}

// legacySecretName is the secret the original deployment stored its
// API key under.
const legacySecretName = "Key_1"

func defaults() *Config {
	return &Config{
		LogLevel: "info",
		Provider: "openai",
		OpenAI: OpenAIConfig{
			APIKeyEnv: "OPENAI_API_KEY",
			Model:     "gpt-4o-mini-tts",
			Voice:     "alloy",
			Format:    "wav",
		},
		XTTS: XTTSConfig{
			ServerURL: "http://localhost:8002",
			Language:  "ur",
			Timeout:   60 * time.Second,
		},
		Pipeline: PipelineConfig{
			TargetSampleRate: 16000,
			SilenceThreshold: 1e-4,
			TrimPadSamples:   0,
			Normalize:        true,
			NormalizePeak:    0.98,
			SpeedFactor:      1.0,
			OutputStem:       "urdu_tts",
		},
	}
}

// Load reads the configuration from path. A missing file is not an
// error when path is the default "": built-in defaults are used.
// After loading, environment overrides are applied and the result is
// validated.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("URDUVOX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("URDUVOX_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("URDUVOX_XTTS_URL"); v != "" {
		cfg.XTTS.ServerURL = v
	}
}

// APIKey resolves the hosted backend's API key: the configured
// environment variable first, then the legacy secret name.
func (c *Config) APIKey() string {
	if k := os.Getenv(c.OpenAI.APIKeyEnv); k != "" {
		return k
	}
	return os.Getenv(legacySecretName)
}

func (c *Config) validate() error {
	switch c.Provider {
	case "openai", "xtts":
	default:
		return fmt.Errorf("unknown provider %q (want openai or xtts)", c.Provider)
	}
	if c.Pipeline.TargetSampleRate <= 0 {
		return fmt.Errorf("target_sample_rate %d must be positive", c.Pipeline.TargetSampleRate)
	}
	if c.Pipeline.SpeedFactor <= 0 {
		return fmt.Errorf("speed_factor %g must be positive", c.Pipeline.SpeedFactor)
	}
	if c.Pipeline.Normalize && (c.Pipeline.NormalizePeak <= 0 || c.Pipeline.NormalizePeak > 1) {
		return fmt.Errorf("normalize_peak %g must be in (0, 1]", c.Pipeline.NormalizePeak)
	}
	return nil
}
