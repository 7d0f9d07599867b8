package overview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/profile"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func entry(id string, ago time.Duration) activity.Entry {
	return activity.Entry{ID: id, Type: activity.TypeOther, Title: id, CreatedAt: now.Add(-ago)}
}

func TestNewStats(t *testing.T) {
	tests := []struct {
		name   string
		counts activity.Counts
		total  int
		want   Stats
	}{
		{"none", activity.Counts{}, 12, Stats{ReportsTotal: 12}},
		{"half", activity.Counts{Applications: 3, Reports: 6}, 12, Stats{3, 6, 12, 50}},
		{"rounds", activity.Counts{Reports: 1}, 3, Stats{0, 1, 3, 33}},
		{"capped", activity.Counts{Reports: 15}, 12, Stats{0, 15, 12, 100}},
		{"zero total", activity.Counts{Reports: 2}, 0, Stats{0, 2, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NewStats(tt.counts, tt.total)); diff != "" {
				t.Fatalf("stats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildKeepsFiveNewest(t *testing.T) {
	entries := []activity.Entry{
		entry("a", 10*24*time.Hour),
		entry("b", 30*time.Second),
		entry("c", 5*time.Minute),
		entry("d", 3*time.Hour),
		entry("e", 2*24*time.Hour),
		entry("f", 90*time.Minute),
		entry("g", 20*24*time.Hour),
	}
	panel := Build(profile.Profile{}, Stats{}, entries, now)

	var got []string
	for _, item := range panel.Recent {
		got = append(got, item.ID+" "+item.When)
	}
	want := []string{
		"b just now",
		"c 5 minutes ago",
		"f 1 hours ago",
		"d 3 hours ago",
		"e 2 days ago",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("recent mismatch (-want +got):\n%s", diff)
	}
	if panel.EmptyMessage != "" {
		t.Fatalf("unexpected empty message %q", panel.EmptyMessage)
	}
}

func TestBuildOlderThanAWeekShowsDate(t *testing.T) {
	panel := Build(profile.Profile{}, Stats{}, []activity.Entry{entry("old", 8*24*time.Hour)}, now)
	if got := panel.Recent[0].When; got != "Jun 7, 2026" {
		t.Fatalf("expected absolute date, got %q", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	panel := Build(profile.Profile{}, Stats{}, nil, now)
	if panel.Recent == nil || len(panel.Recent) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", panel.Recent)
	}
	if panel.EmptyMessage != EmptyMessage {
		t.Fatalf("expected empty-state message, got %q", panel.EmptyMessage)
	}
}

func TestBuildCompletionAndLastLogin(t *testing.T) {
	p := profile.Profile{Phone: "+358401234567", Bio: "Hi", LastLogin: now.Add(-2 * time.Hour)}
	panel := Build(p, Stats{}, nil, now)

	if panel.Completion.Percent != 50 || panel.Completion.Label() != "2 of 4 completed" {
		t.Fatalf("unexpected completion %+v", panel.Completion)
	}
	if panel.LastLogin != "2 hours ago" {
		t.Fatalf("unexpected last login %q", panel.LastLogin)
	}
	if Build(profile.Profile{}, Stats{}, nil, now).LastLogin != "" {
		t.Fatal("expected no last login label for zero time")
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	entries := []activity.Entry{entry("old", time.Hour), entry("new", time.Minute)}
	Build(profile.Profile{}, Stats{}, entries, now)
	if entries[0].ID != "old" {
		t.Fatal("input slice was reordered")
	}
}
