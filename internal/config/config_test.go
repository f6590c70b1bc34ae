// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Env mutation means these tests cannot run in parallel.

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urduvox.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini-tts" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
	if cfg.XTTS.ServerURL != "http://localhost:8002" {
		t.Errorf("ServerURL = %q", cfg.XTTS.ServerURL)
	}
	if cfg.XTTS.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.XTTS.Timeout)
	}
	if cfg.Pipeline.TargetSampleRate != 16000 {
		t.Errorf("TargetSampleRate = %d, want 16000", cfg.Pipeline.TargetSampleRate)
	}
	if !cfg.Pipeline.Normalize || cfg.Pipeline.NormalizePeak != 0.98 {
		t.Errorf("normalize defaults = %v/%g", cfg.Pipeline.Normalize, cfg.Pipeline.NormalizePeak)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
provider: xtts
xtts:
  server_url: http://tts.internal:9000
  language: en
pipeline:
  speed_factor: 1.25
  output_stem: newscast
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Provider != "xtts" {
		t.Errorf("Provider = %q, want xtts", cfg.Provider)
	}
	if cfg.XTTS.ServerURL != "http://tts.internal:9000" {
		t.Errorf("ServerURL = %q", cfg.XTTS.ServerURL)
	}
	if cfg.XTTS.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.XTTS.Language)
	}
	if cfg.Pipeline.SpeedFactor != 1.25 {
		t.Errorf("SpeedFactor = %g, want 1.25", cfg.Pipeline.SpeedFactor)
	}
	if cfg.Pipeline.OutputStem != "newscast" {
		t.Errorf("OutputStem = %q, want newscast", cfg.Pipeline.OutputStem)
	}
	// Unset keys keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini-tts" {
		t.Errorf("Model = %q, want default", cfg.OpenAI.Model)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a named but missing config file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "provider: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"UnknownProvider", "provider: espeak", "unknown provider"},
		{"BadRate", "pipeline:\n  target_sample_rate: -1", "target_sample_rate"},
		{"BadSpeed", "pipeline:\n  speed_factor: 0", "speed_factor"},
		{"BadPeak", "pipeline:\n  normalize_peak: 2.0", "normalize_peak"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("URDUVOX_LOG_LEVEL", "warn")
	t.Setenv("URDUVOX_PROVIDER", "xtts")
	t.Setenv("URDUVOX_XTTS_URL", "http://gpu-box:8002")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Provider != "xtts" {
		t.Errorf("Provider = %q, want xtts", cfg.Provider)
	}
	if cfg.XTTS.ServerURL != "http://gpu-box:8002" {
		t.Errorf("ServerURL = %q", cfg.XTTS.ServerURL)
	}
}

func TestAPIKey(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv(legacySecretName, "")
	if k := cfg.APIKey(); k != "" {
		t.Errorf("APIKey = %q, want empty", k)
	}

	t.Setenv(legacySecretName, "legacy-secret")
	if k := cfg.APIKey(); k != "legacy-secret" {
		t.Errorf("APIKey = %q, want legacy fallback", k)
	}

	t.Setenv("OPENAI_API_KEY", "sk-primary")
	if k := cfg.APIKey(); k != "sk-primary" {
		t.Errorf("APIKey = %q, want primary env", k)
	}
}
