package activity

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/intern-portal/internal/platform/auth"
	applog "github.com/janisto/intern-portal/internal/platform/logging"
	"github.com/janisto/intern-portal/internal/platform/pagination"
	"github.com/janisto/intern-portal/internal/platform/timeutil"
	activitysvc "github.com/janisto/intern-portal/internal/service/activity"
)

const cursorType = "activity"

// Register wires activity routes into the provided API router.
func Register(api huma.API, svc activitysvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-activity",
		Method:      http.MethodGet,
		Path:        "/users/{userId}/activity",
		Summary:     "List a user's activity",
		Description: "Returns the user's activity feed, newest first. Use the cursor from the Link header to navigate between pages. Callers may only list their own activity.",
		Tags:        []string{"Activity"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ActivityListInput) (*ActivityListOutput, error) {
		user := auth.UserFromContext(ctx)
		if input.UserID != user.UID {
			return nil, huma.Error403Forbidden("cannot read another user's activity")
		}

		cursor, err := pagination.DecodeCursor(input.Cursor, cursorType)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}

		limit := input.PageSize()
		page, err := svc.List(ctx, user.UID, cursor.Value, limit)
		if err != nil {
			if errors.Is(err, activitysvc.ErrInvalidID) {
				return nil, huma.Error400BadRequest("cursor references unknown activity")
			}
			applog.LogError(ctx, "activity listing failed", err)
			return nil, huma.Error500InternalServerError("internal error")
		}

		query := url.Values{}
		if input.Limit > 0 {
			query.Set("limit", strconv.Itoa(limit))
		}
		if input.Cursor != "" {
			query.Set("cursor", input.Cursor)
		}
		next := ""
		if page.Next != "" {
			next = pagination.Cursor{Type: cursorType, Value: page.Next}.Encode()
		}

		return &ActivityListOutput{
			Link: pagination.BuildLinkHeader(prefix+"/users/"+url.PathEscape(user.UID)+"/activity", query, next),
			Body: ListData{Entries: toHTTPEntries(page.Entries)},
		}, nil
	})
}

func toHTTPEntries(entries []activitysvc.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{
			ID:          e.ID,
			Type:        string(e.Type),
			Title:       e.Title,
			Description: e.Description,
			CreatedAt:   timeutil.NewTime(e.CreatedAt),
		}
	}
	return out
}
