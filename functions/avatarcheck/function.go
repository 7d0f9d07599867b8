// Package avatarcheck is a Cloud Storage triggered function that audits objects
// written under the avatar prefix of the avatar bucket.
package avatarcheck

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"go.uber.org/zap"
)

const (
	// Prefix is where the API writes avatar objects.
	Prefix = "avatars/"
	// MaxSize matches the API upload limit.
	MaxSize = 5 << 20
)

// AcceptedTypes matches the content types the API stores.
var AcceptedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var logger = newLogger()

func init() {
	functions.CloudEvent("CheckAvatar", checkAvatar)
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.LevelKey = "severity"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.TimeKey = "timestamp"
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// ObjectData is the payload of a google.cloud.storage.object.v1.finalized event.
type ObjectData struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        string `json:"size"`
}

// Verdict is the outcome of inspecting one object.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Inspect checks an avatar object's metadata against the upload rules.
func Inspect(d ObjectData) Verdict {
	rest := strings.TrimPrefix(d.Name, Prefix)
	if rest == d.Name || strings.Count(rest, "/") != 1 {
		return Verdict{Reason: "object name is not avatars/{uid}/{file}"}
	}
	if !slices.Contains(AcceptedTypes, d.ContentType) {
		return Verdict{Reason: "unsupported content type " + d.ContentType}
	}
	size, err := strconv.ParseInt(d.Size, 10, 64)
	if err != nil {
		return Verdict{Reason: "invalid size " + strconv.Quote(d.Size)}
	}
	if size <= 0 || size > MaxSize {
		return Verdict{Reason: fmt.Sprintf("size %d outside 1..%d", size, MaxSize)}
	}
	return Verdict{Accepted: true}
}

func checkAvatar(_ context.Context, e event.Event) error {
	var d ObjectData
	if err := e.DataAs(&d); err != nil {
		return fmt.Errorf("decoding event data: %w", err)
	}
	if !strings.HasPrefix(d.Name, Prefix) {
		return nil
	}

	fields := []zap.Field{
		zap.String("eventId", e.ID()),
		zap.String("bucket", d.Bucket),
		zap.String("object", d.Name),
		zap.String("contentType", d.ContentType),
	}
	if v := Inspect(d); !v.Accepted {
		logger.Warn("avatar object rejected", append(fields, zap.String("reason", v.Reason))...)
		return nil
	}
	logger.Info("avatar object accepted", fields...)
	return nil
}
