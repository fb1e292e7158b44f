package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "5000" {
		t.Errorf("Expected Port to be 5000, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Risk.SampleCount != 10000 {
		t.Errorf("Expected SampleCount to be 10000, got %d", cfg.Risk.SampleCount)
	}

	if cfg.Risk.BucketCount != 11 {
		t.Errorf("Expected BucketCount to be 11, got %d", cfg.Risk.BucketCount)
	}

	if cfg.Risk.IntegrationStep != 0.0001 {
		t.Errorf("Expected IntegrationStep to be 0.0001, got %v", cfg.Risk.IntegrationStep)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("RISK_SAMPLE_COUNT", "20000")
	t.Setenv("RISK_TAIL_PROBABILITY", "0.01")
	t.Setenv("RISK_SEED", "42")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Risk.SampleCount != 20000 {
		t.Errorf("Expected SampleCount to be 20000, got %d", cfg.Risk.SampleCount)
	}

	if cfg.Risk.TailProbability != 0.01 {
		t.Errorf("Expected TailProbability to be 0.01, got %v", cfg.Risk.TailProbability)
	}

	if cfg.Risk.Seed != 42 {
		t.Errorf("Expected Seed to be 42, got %d", cfg.Risk.Seed)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be warn, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateOddSampleCount(t *testing.T) {
	t.Setenv("RISK_SAMPLE_COUNT", "9999")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when RISK_SAMPLE_COUNT is odd, got nil")
	}
}

func TestRiskConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rc *RiskConfig)
		wantErr bool
	}{
		{"defaults", func(rc *RiskConfig) {}, false},
		{"zero buckets", func(rc *RiskConfig) { rc.BucketCount = 0 }, true},
		{"zero samples", func(rc *RiskConfig) { rc.SampleCount = 0 }, true},
		{"tail of one", func(rc *RiskConfig) { rc.TailProbability = 1 }, true},
		{"negative step", func(rc *RiskConfig) { rc.IntegrationStep = -0.1 }, true},
		{"zero cutoff", func(rc *RiskConfig) { rc.SigmaCutoff = 0 }, true},
		{"zero max steps", func(rc *RiskConfig) { rc.MaxSteps = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := DefaultRiskConfig()
			tt.mutate(&rc)
			err := rc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRiskFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.yaml")
	content := "sample_count: 2000\nintegration_step: 0.001\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rc := DefaultRiskConfig()
	if err := LoadRiskFile(path, &rc); err != nil {
		t.Fatalf("LoadRiskFile() failed: %v", err)
	}

	if rc.SampleCount != 2000 {
		t.Errorf("Expected SampleCount to be 2000, got %d", rc.SampleCount)
	}
	if rc.IntegrationStep != 0.001 {
		t.Errorf("Expected IntegrationStep to be 0.001, got %v", rc.IntegrationStep)
	}
	// untouched fields keep their defaults
	if rc.BucketCount != 11 {
		t.Errorf("Expected BucketCount to stay 11, got %d", rc.BucketCount)
	}
}

func TestLoadRiskFileUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.yaml")
	if err := os.WriteFile(path, []byte("sample_cnt: 2000\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rc := DefaultRiskConfig()
	if err := LoadRiskFile(path, &rc); err == nil {
		t.Error("Expected error for unknown field, got nil")
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")

	value := getEnvAsFloat("TEST_FLOAT", 1)
	if value != 0.25 {
		t.Errorf("Expected value to be 0.25, got %v", value)
	}

	if got := getEnvAsFloat("TEST_FLOAT_MISSING", 1.5); got != 1.5 {
		t.Errorf("Expected default 1.5, got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 50 {
		t.Errorf("Expected fallback 50, got %d", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")

	if getEnvAsBool("TEST_BOOL", true) {
		t.Error("Expected false")
	}
}

func TestServerTimeouts(t *testing.T) {
	t.Setenv("HTTP_WRITE_TIMEOUT", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Expected ReadTimeout 15s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("Expected WriteTimeout 2m, got %v", cfg.Server.WriteTimeout)
	}

	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "-1s")
	if _, err := Load(); err == nil {
		t.Error("Expected error for negative shutdown timeout")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "not-a-duration")
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("Expected fallback 1s, got %v", got)
	}
}
