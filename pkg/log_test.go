package pkg

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	original := GetLogLevel()
	defer SetLogLevel(original)

	tests := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLogLevel(tt.level)
			if got := GetLogLevel(); got != tt.level {
				t.Errorf("GetLogLevel() = %v, want %v", got, tt.level)
			}
			if !LogEnabled(tt.level) {
				t.Errorf("LogEnabled(%v) = false, want true", tt.level)
			}
			if LogEnabled(tt.level - 1) {
				t.Errorf("LogEnabled(%v) = true, want false", tt.level-1)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    LogFormat
		wantErr error
	}{
		{"", LogFormatText, nil},
		{"text", LogFormatText, nil},
		{"json", LogFormatJSON, nil},
		{"yaml", LogFormatText, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogFormat(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseLogFormat(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogComponents(t *testing.T) {
	original := DefaultLogger
	originalLevel := GetLogLevel()
	defer func() {
		SetLogger(original)
		SetLogLevel(originalLevel)
	}()

	tests := []struct {
		name      string
		log       func(Component, string, ...any)
		component Component
	}{
		{"debug", LogDebug, ComponentPacket},
		{"info", LogInfo, ComponentControl},
		{"warn", LogWarn, ComponentDescriptor},
		{"error", LogError, ComponentDecoder},
	}

	SetLogLevel(slog.LevelDebug)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetLogger(NewLogger(&buf, nil))

			tt.log(tt.component, tt.name+" message", "key", "value")
			output := buf.String()
			if !strings.Contains(output, tt.name+" message") {
				t.Errorf("log missing message: %s", output)
			}
			if !strings.Contains(output, "component="+string(tt.component)) {
				t.Errorf("log missing component: %s", output)
			}
			if !strings.Contains(output, "key=value") {
				t.Errorf("log missing attribute: %s", output)
			}
		})
	}
}

func TestSetLogOutputJSON(t *testing.T) {
	original := DefaultLogger
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogOutput(&buf, LogFormatJSON)

	LogWarn(ComponentCapture, "json message")
	output := buf.String()
	if !strings.Contains(output, `"msg":"json message"`) {
		t.Errorf("JSON log output missing message: %s", output)
	}
	if !strings.Contains(output, `"component":"capture"`) {
		t.Errorf("JSON log output missing component: %s", output)
	}
}

func TestLogLevelFilters(t *testing.T) {
	original := DefaultLogger
	originalLevel := GetLogLevel()
	defer func() {
		SetLogger(original)
		SetLogLevel(originalLevel)
	}()

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, nil))
	SetLogLevel(slog.LevelWarn)

	LogDebug(ComponentFilter, "hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message emitted at warn level: %s", buf.String())
	}
}
