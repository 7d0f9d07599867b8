package activity

import "github.com/janisto/intern-portal/internal/platform/timeutil"

// Entry is one activity feed item.
type Entry struct {
	ID          string        `json:"id"                    doc:"Activity ID (ULID)"   example:"01J9ZQ6W4M9C1V2E8X5R7T3K0A"`
	Type        string        `json:"type"                  doc:"Activity type"        example:"report" enum:"application,report,feedback,other"`
	Title       string        `json:"title"                 doc:"Title"                example:"Weekly report 3"`
	Description string        `json:"description,omitempty" doc:"Optional description" example:"Submitted to advisor"`
	CreatedAt   timeutil.Time `json:"createdAt"             doc:"Creation timestamp"   example:"2024-01-15T10:30:00.000Z"`
}

// ListData is the response body of the activity listing.
type ListData struct {
	Entries []Entry `json:"entries" doc:"Entries, newest first"`
}

// ActivityListOutput is the response wrapper with pagination Link header.
type ActivityListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}
