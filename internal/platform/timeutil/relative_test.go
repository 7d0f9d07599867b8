package timeutil

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"45 seconds", 45 * time.Second, "just now"},
		{"59 seconds", 59 * time.Second, "just now"},
		{"one minute", time.Minute, "1 minutes ago"},
		{"59 minutes", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"90 minutes", 90 * time.Minute, "1 hours ago"},
		{"23 hours", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 days ago"},
		{"six days", 6*24*time.Hour + 23*time.Hour, "6 days ago"},
		{"one week", 7 * 24 * time.Hour, "Mar 13, 2025"},
		{"future", -time.Hour, "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relative(now.Add(-tt.ago), now); got != tt.want {
				t.Fatalf("Relative(-%s) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}
