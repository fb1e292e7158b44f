package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production, test

	// Risk engine
	Risk RiskConfig

	// HTTP bridge
	Server ServerConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RiskConfig holds the numerical parameters of one analysis run
type RiskConfig struct {
	BucketCount     int     `yaml:"bucket_count"`     // Return Store 버킷 수 (실행 중 고정)
	SampleCount     int     `yaml:"sample_count"`     // Monte Carlo 샘플 수 (짝수)
	TailProbability float64 `yaml:"tail_probability"` // VaR tail (기본: 0.05)
	IntegrationStep float64 `yaml:"integration_step"` // Riemann sum step
	SigmaCutoff     float64 `yaml:"sigma_cutoff"`     // 적분 시작점 (mean - k*sigma)
	MaxSteps        int     `yaml:"max_steps"`        // 적분 반복 상한
	Seed            int64   `yaml:"seed"`             // 0=wall clock
}

// ServerConfig holds HTTP bridge configuration
type ServerConfig struct {
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultRiskConfig returns the parameters the engine was calibrated with
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		BucketCount:     11,
		SampleCount:     10000,
		TailProbability: 0.05,
		IntegrationStep: 0.0001,
		SigmaCutoff:     5,
		MaxSteps:        10_000_000,
		Seed:            0,
	}
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	defaults := DefaultRiskConfig()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		Risk: RiskConfig{
			BucketCount:     getEnvAsInt("RISK_BUCKET_COUNT", defaults.BucketCount),
			SampleCount:     getEnvAsInt("RISK_SAMPLE_COUNT", defaults.SampleCount),
			TailProbability: getEnvAsFloat("RISK_TAIL_PROBABILITY", defaults.TailProbability),
			IntegrationStep: getEnvAsFloat("RISK_INTEGRATION_STEP", defaults.IntegrationStep),
			SigmaCutoff:     getEnvAsFloat("RISK_SIGMA_CUTOFF", defaults.SigmaCutoff),
			MaxSteps:        getEnvAsInt("RISK_MAX_STEPS", defaults.MaxSteps),
			Seed:            getEnvAsInt64("RISK_SEED", defaults.Seed),
		},

		Server: ServerConfig{
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 10),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadRiskFile overlays a YAML risk parameter file on top of rc.
// Fields absent from the file keep their current value.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func LoadRiskFile(path string, rc *RiskConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read risk config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(rc); err != nil {
		return fmt.Errorf("decode risk config %s: %w", path, err)
	}

	return rc.Validate()
}

// Validate checks the numerical parameters
func (rc RiskConfig) Validate() error {
	if rc.BucketCount <= 0 {
		return fmt.Errorf("RISK_BUCKET_COUNT must be > 0")
	}
	if rc.SampleCount <= 0 || rc.SampleCount%2 != 0 {
		return fmt.Errorf("RISK_SAMPLE_COUNT must be a positive even number")
	}
	if rc.TailProbability <= 0 || rc.TailProbability >= 1 {
		return fmt.Errorf("RISK_TAIL_PROBABILITY must be between 0 and 1")
	}
	if rc.IntegrationStep <= 0 {
		return fmt.Errorf("RISK_INTEGRATION_STEP must be > 0")
	}
	if rc.SigmaCutoff <= 0 {
		return fmt.Errorf("RISK_SIGMA_CUTOFF must be > 0")
	}
	if rc.MaxSteps <= 0 {
		return fmt.Errorf("RISK_MAX_STEPS must be > 0")
	}
	return nil
}

// Validate checks if required configuration values are set
// CLI 플래그로 값을 덮어쓴 뒤 다시 호출함
func (c *Config) Validate() error {
	// Validate environment
	switch c.Env {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_*_TIMEOUT must be > 0")
	}

	return c.Risk.Validate()
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
