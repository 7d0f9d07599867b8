package profile

import (
	"fmt"
	"math"
	"strings"
)

// ChecklistItem is one profile-completeness predicate.
type ChecklistItem struct {
	Key   string
	Label string
	Done  bool
}

// Completion is the result of Score.
type Completion struct {
	Percent   int
	Completed int
	Total     int
	Items     []ChecklistItem
}

// Label renders e.g. "2 of 4 completed".
func (c Completion) Label() string {
	return fmt.Sprintf("%d of %d completed", c.Completed, c.Total)
}

var checklist = []struct {
	key   string
	label string
	value func(Profile) string
}{
	{FieldPhone, "Add phone number", func(p Profile) string { return p.Phone }},
	{FieldBio, "Write a short bio", func(p Profile) string { return p.Bio }},
	{FieldAddress, "Add address", func(p Profile) string { return p.Address }},
	{"avatar", "Upload a profile photo", func(p Profile) string { return p.Avatar }},
}

// Score computes profile completeness over the fixed, equally weighted checklist.
func Score(p Profile) Completion {
	c := Completion{
		Total: len(checklist),
		Items: make([]ChecklistItem, len(checklist)),
	}
	for i, item := range checklist {
		done := strings.TrimSpace(item.value(p)) != ""
		if done {
			c.Completed++
		}
		c.Items[i] = ChecklistItem{Key: item.key, Label: item.label, Done: done}
	}
	c.Percent = int(math.Round(100 * float64(c.Completed) / float64(c.Total)))
	return c
}
