package logging

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { level.SetLevel(zapcore.InfoLevel) })

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug to be enabled")
	}
	if err := SetLevel(""); err != nil || level.Level() != zapcore.DebugLevel {
		t.Fatalf("expected empty name to keep debug, got %s, %v", level.Level(), err)
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if level.Level() != zapcore.DebugLevel {
		t.Fatalf("expected level unchanged after error, got %s", level.Level())
	}
}

func TestEncoderSeverityAndTimestamp(t *testing.T) {
	enc := zapcore.NewJSONEncoder(encoderConfig())
	at := time.Date(2026, 3, 10, 8, 30, 0, 123456789, time.UTC)

	tests := []struct {
		level    zapcore.Level
		severity string
	}{
		{zapcore.WarnLevel, `"severity":"WARNING"`},
		{zapcore.DPanicLevel, `"severity":"CRITICAL"`},
		{zapcore.Level(42), `"severity":"DEFAULT"`},
	}
	for _, tt := range tests {
		buf, err := enc.EncodeEntry(zapcore.Entry{Level: tt.level, Time: at, Message: "m"}, nil)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		line := buf.String()
		if !strings.Contains(line, tt.severity) {
			t.Fatalf("expected %s in %s", tt.severity, line)
		}
		if !strings.Contains(line, `"timestamp":"2026-03-10T08:30:00.123456Z"`) {
			t.Fatalf("unexpected timestamp in %s", line)
		}
	}
}

func TestUserFields(t *testing.T) {
	tests := []struct {
		name string
		role string
		want map[string]any
	}{
		{"with role", "advisor", map[string]any{"userId": "u1", "role": "advisor"}},
		{"without role", "", map[string]any{"userId": "u1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := zapcore.NewMapObjectEncoder()
			for _, f := range UserFields("u1", tt.role) {
				f.AddTo(enc)
			}
			if len(enc.Fields) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, enc.Fields)
			}
			for k, v := range tt.want {
				if enc.Fields[k] != v {
					t.Fatalf("expected %s=%v, got %v", k, v, enc.Fields)
				}
			}
		})
	}
}
