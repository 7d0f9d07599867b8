package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseTrace(t *testing.T) {
	tests := []struct {
		name        string
		traceparent string
		cloudTrace  string
		want        spanContext
		ok          bool
	}{
		{
			name:        "traceparent sampled",
			traceparent: "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01",
			want:        spanContext{TraceID: "ab42124a3c573678d4d8b21ba52df3bf", SpanID: "d21f7bc17caa5aba", Sampled: true},
			ok:          true,
		},
		{
			name:        "traceparent not sampled",
			traceparent: "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-00",
			want:        spanContext{TraceID: "ab42124a3c573678d4d8b21ba52df3bf", SpanID: "d21f7bc17caa5aba"},
			ok:          true,
		},
		{
			name:       "cloud trace fallback",
			cloudTrace: "105445aa7843bc8bf206b12000100000/1;o=1",
			want:       spanContext{TraceID: "105445aa7843bc8bf206b12000100000", SpanID: "1", Sampled: true},
			ok:         true,
		},
		{
			name:        "traceparent wins over cloud trace",
			traceparent: "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01",
			cloudTrace:  "105445aa7843bc8bf206b12000100000/1;o=1",
			want:        spanContext{TraceID: "ab42124a3c573678d4d8b21ba52df3bf", SpanID: "d21f7bc17caa5aba", Sampled: true},
			ok:          true,
		},
		{
			name:        "invalid",
			traceparent: "garbage",
			cloudTrace:  "also-garbage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTrace(tt.traceparent, tt.cloudTrace)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTraceResource(t *testing.T) {
	sc := spanContext{TraceID: "abc"}
	if got := traceResource(sc, "proj"); got != "projects/proj/traces/abc" {
		t.Fatalf("unexpected resource %q", got)
	}
	if got := traceResource(sc, ""); got != "" {
		t.Fatalf("expected empty resource without project, got %q", got)
	}
}

func TestLoggerWithTraceAddsFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	sc := spanContext{TraceID: "abc", SpanID: "def", Sampled: true}

	loggerWithTrace(zap.New(core), sc, "proj", "req-1").Info("hello")

	fields := recorded.All()[0].ContextMap()
	if fields["logging.googleapis.com/trace"] != "projects/proj/traces/abc" {
		t.Fatalf("unexpected trace field: %+v", fields)
	}
	if fields["logging.googleapis.com/spanId"] != "def" {
		t.Fatalf("unexpected span field: %+v", fields)
	}
	if fields["requestId"] != "req-1" {
		t.Fatalf("unexpected request id field: %+v", fields)
	}
}

func TestLoggerWithTraceNoFieldsReturnsBase(t *testing.T) {
	base := zap.NewNop()
	if got := loggerWithTrace(base, spanContext{}, "", ""); got != base {
		t.Fatal("expected base logger when there are no fields")
	}
	if loggerWithTrace(nil, spanContext{}, "", "") == nil {
		t.Fatal("expected nop logger for nil base")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "c", "d"); got != "c" {
		t.Fatalf("got %q, want c", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
