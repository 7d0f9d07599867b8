package activity

import "github.com/janisto/intern-portal/internal/platform/pagination"

// ActivityListInput for GET /users/{userId}/activity
type ActivityListInput struct {
	UserID string `path:"userId" doc:"User whose activity to list" example:"user-123"`
	pagination.Params
}
