package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"todoapp/config"
	"todoapp/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger

	logger.InitLogger()

	if zerolog.TimeFieldFormat != zerolog.TimeFormatUnix {
		t.Errorf("expected TimeFieldFormat to be %s, got %s", zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	}

	if zerolog.GlobalLevel() != zerolog.TraceLevel {
		t.Errorf("expected global level to be %s, got %s", zerolog.TraceLevel, zerolog.GlobalLevel())
	}

	log.Logger = originalLogger
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("test error"))

	if !strings.Contains(buf.String(), "test error") {
		t.Errorf("expected error log to contain message, got %q", buf.String())
	}

	log.Logger = originalLogger
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	logger.SetLogLevel(cfg)

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected global level to be %s, got %s", zerolog.WarnLevel, zerolog.GlobalLevel())
	}

	zerolog.SetGlobalLevel(originalLevel)
}

func TestSetLogLevel_InvalidFallsBackToTrace(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "not-a-level"

	logger.SetLogLevel(cfg)

	if zerolog.GlobalLevel() != zerolog.TraceLevel {
		t.Errorf("expected global level to be %s, got %s", zerolog.TraceLevel, zerolog.GlobalLevel())
	}

	zerolog.SetGlobalLevel(originalLevel)
}
