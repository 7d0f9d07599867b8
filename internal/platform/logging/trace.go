package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const (
	traceparentHeader = "traceparent"
	cloudTraceHeader  = "X-Cloud-Trace-Context"
)

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// Legacy Cloud Trace header: TRACE_ID/SPAN_ID;o=OPTIONS
var cloudTraceRe = regexp.MustCompile(`^([0-9a-fA-F]+)/([0-9]+)(?:;o=(\d))?$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// spanContext is the parsed trace header.
type spanContext struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// parseTrace prefers traceparent and falls back to X-Cloud-Trace-Context.
func parseTrace(traceparent, cloudTrace string) (spanContext, bool) {
	if m := traceparentRe.FindStringSubmatch(traceparent); len(m) == 5 {
		return spanContext{TraceID: m[2], SpanID: m[3], Sampled: m[4] == "01"}, true
	}
	if m := cloudTraceRe.FindStringSubmatch(cloudTrace); len(m) == 4 {
		return spanContext{TraceID: m[1], SpanID: m[2], Sampled: m[3] == "1"}, true
	}
	return spanContext{}, false
}

func traceResource(sc spanContext, projectID string) string {
	if projectID == "" || sc.TraceID == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", projectID, sc.TraceID)
}

func loggerWithTrace(base *zap.Logger, sc spanContext, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if resource := traceResource(sc, projectID); resource != "" {
		fields = append(fields,
			zap.String("logging.googleapis.com/trace", resource),
			zap.String("logging.googleapis.com/spanId", sc.SpanID),
			zap.Bool("logging.googleapis.com/trace_sampled", sc.Sampled),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
		)
	})
	return cachedProjectID
}
