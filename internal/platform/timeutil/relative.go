package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the absolute date shown once a timestamp is a week or more old.
const DateLayout = "Jan 2, 2006"

// Relative renders t relative to now using fixed buckets:
//
//	< 1 minute  "just now"
//	< 1 hour    "N minutes ago"
//	< 1 day     "N hours ago"
//	< 1 week    "N days ago"
//	otherwise   absolute date
//
// Counts are floored and never singularized ("1 hours ago"). Timestamps in the
// future render as "just now".
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
	default:
		return t.In(now.Location()).Format(DateLayout)
	}
}
