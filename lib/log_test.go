package lib

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		level  int32
	}{
		{
			name:   "info",
			prefix: "INFO:",
			level:  InfoLevel,
		},
		{
			name:   "debug",
			prefix: "DEBUG:",
			level:  DebugLevel,
		},
		{
			name:   "warn",
			prefix: "WARN:",
			level:  WarnLevel,
		},
		{
			name:   "error",
			prefix: "ERROR:",
			level:  ErrorLevel,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			logger := NewLogger(LoggerConfig{
				Level: DebugLevel,
				Out:   buf,
			})
			expectedString := test.prefix + " arg1 arg2"
			switch test.level {
			case InfoLevel:
				logger.Info("arg1 arg2")
			case DebugLevel:
				logger.Debug("arg1 arg2")
			case ErrorLevel:
				logger.Error("arg1 arg2")
			case WarnLevel:
				logger.Warn("arg1 arg2")
			}
			got := buf.String()
			if !strings.Contains(got, expectedString) {
				t.Fatalf("wanted %s to contain %s", got, expectedString)
			}
		})
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logger := NewLogger(LoggerConfig{
		Level: WarnLevel,
		Out:   buf,
	})
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("wanted %s to filter messages below the configured level", got)
	}
	if !strings.Contains(got, "shown") {
		t.Fatalf("wanted %s to contain the warning", got)
	}
}
