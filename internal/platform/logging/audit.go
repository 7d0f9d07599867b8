package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a state-changing action for security and compliance logs.
type AuditEvent struct {
	Action     string // "create", "update", "upload", ...
	UserID     string
	Resource   string // "profile", "avatar", "activity"
	ResourceID string
	Result     string
	Details    map[string]any
}

// LogAuditEvent writes the event using the request-scoped logger.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.user_id", ev.UserID),
		zap.String("audit.resource_type", ev.Resource),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}

// AuditOutcome logs success when err is nil and failure otherwise. category maps the
// error to a value safe for audit storage.
func AuditOutcome(ctx context.Context, ev AuditEvent, err error, category func(error) string) {
	if err == nil {
		ev.Result = AuditSuccess
		LogAuditEvent(ctx, ev)
		return
	}
	ev.Result = AuditFailure
	if ev.Details == nil {
		ev.Details = map[string]any{}
	}
	ev.Details["error"] = category(err)
	LogAuditEvent(ctx, ev)
}
