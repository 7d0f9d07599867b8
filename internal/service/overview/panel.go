// Package overview composes the profile overview panel: stat tiles, recent activity and
// profile completeness.
package overview

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/janisto/intern-portal/internal/platform/timeutil"
	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// RecentLimit is the number of activity entries shown on the panel.
const RecentLimit = 5

// EmptyMessage replaces the activity list when there is nothing to show.
const EmptyMessage = "No recent activity yet"

// Stats are the three stat tiles.
type Stats struct {
	Applications     int
	ReportsSubmitted int
	ReportsTotal     int
	Progress         int
}

// NewStats derives the progress percentage from the report counts, capped at 100.
func NewStats(counts activity.Counts, reportsTotal int) Stats {
	s := Stats{
		Applications:     counts.Applications,
		ReportsSubmitted: counts.Reports,
		ReportsTotal:     reportsTotal,
	}
	if reportsTotal > 0 {
		s.Progress = min(100, int(math.Round(100*float64(counts.Reports)/float64(reportsTotal))))
	}
	return s
}

// Item is an activity entry with its relative-time label.
type Item struct {
	activity.Entry
	When string
}

// Panel is the rendered overview.
type Panel struct {
	Stats        Stats
	Recent       []Item
	EmptyMessage string
	Completion   profile.Completion
	LastLogin    string
}

// Build composes the panel. entries may arrive in any order; the newest RecentLimit are
// kept. now anchors the relative-time labels.
func Build(p profile.Profile, stats Stats, entries []activity.Entry, now time.Time) Panel {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b activity.Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}

	panel := Panel{
		Stats:      stats,
		Recent:     make([]Item, len(sorted)),
		Completion: profile.Score(p),
	}
	for i, e := range sorted {
		panel.Recent[i] = Item{Entry: e, When: timeutil.Relative(e.CreatedAt, now)}
	}
	if len(panel.Recent) == 0 {
		panel.EmptyMessage = EmptyMessage
	}
	if !p.LastLogin.IsZero() {
		panel.LastLogin = timeutil.Relative(p.LastLogin, now)
	}
	return panel
}
