package avatarcheck

import (
	"context"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		data ObjectData
		want bool
	}{
		{"valid png", ObjectData{Name: "avatars/u1/a.png", ContentType: "image/png", Size: "2048"}, true},
		{"valid webp at limit", ObjectData{Name: "avatars/u1/a.webp", ContentType: "image/webp", Size: "5242880"}, true},
		{"too large", ObjectData{Name: "avatars/u1/a.png", ContentType: "image/png", Size: "5242881"}, false},
		{"empty", ObjectData{Name: "avatars/u1/a.png", ContentType: "image/png", Size: "0"}, false},
		{"bad size", ObjectData{Name: "avatars/u1/a.png", ContentType: "image/png", Size: "big"}, false},
		{"wrong type", ObjectData{Name: "avatars/u1/a.svg", ContentType: "image/svg+xml", Size: "10"}, false},
		{"no user segment", ObjectData{Name: "avatars/a.png", ContentType: "image/png", Size: "10"}, false},
		{"nested", ObjectData{Name: "avatars/u1/x/a.png", ContentType: "image/png", Size: "10"}, false},
		{"outside prefix", ObjectData{Name: "uploads/u1/a.png", ContentType: "image/png", Size: "10"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Inspect(tt.data)
			if v.Accepted != tt.want {
				t.Fatalf("expected accepted=%v, got %+v", tt.want, v)
			}
			if !v.Accepted && v.Reason == "" {
				t.Fatal("rejections need a reason")
			}
		})
	}
}

func newEvent(t *testing.T, data any) event.Event {
	t.Helper()
	e := event.New()
	e.SetID("evt-1")
	e.SetSource("//storage.googleapis.com/projects/_/buckets/demo")
	e.SetType("google.cloud.storage.object.v1.finalized")
	if err := e.SetData(event.ApplicationJSON, data); err != nil {
		t.Fatalf("set data: %v", err)
	}
	return e
}

func TestCheckAvatar(t *testing.T) {
	events := []ObjectData{
		{Bucket: "demo", Name: "avatars/u1/a.png", ContentType: "image/png", Size: "10"},
		{Bucket: "demo", Name: "avatars/u1/a.txt", ContentType: "text/plain", Size: "10"},
		{Bucket: "demo", Name: "exports/report.csv", ContentType: "text/csv", Size: "10"},
	}
	for _, d := range events {
		if err := checkAvatar(context.Background(), newEvent(t, d)); err != nil {
			t.Fatalf("%s: unexpected error: %v", d.Name, err)
		}
	}
}

func TestCheckAvatarBadPayload(t *testing.T) {
	e := newEvent(t, "not an object")
	if err := checkAvatar(context.Background(), e); err == nil {
		t.Fatal("expected decode error")
	}
}
