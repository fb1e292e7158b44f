package logger_test

import (
	"errors"
	"os"

	"github.com/wonny/aegis-risk/pkg/config"
	"github.com/wonny/aegis-risk/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.NewWithWriter(cfg, os.Stderr)

	log.WithFields(map[string]interface{}{
		"label":        "EQUITY",
		"observations": 252,
	}).Info("series ingested")

	log.WithError(errors.New("standard deviation is zero")).
		WithField("label", "BOND").
		Warn("degenerate series")
}
