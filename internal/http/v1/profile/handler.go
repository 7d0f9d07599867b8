package profile

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/intern-portal/internal/platform/auth"
	applog "github.com/janisto/intern-portal/internal/platform/logging"
	"github.com/janisto/intern-portal/internal/platform/timeutil"
	activitysvc "github.com/janisto/intern-portal/internal/service/activity"
	avatarsvc "github.com/janisto/intern-portal/internal/service/avatar"
	overviewsvc "github.com/janisto/intern-portal/internal/service/overview"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

// AvatarMaxBodyBytes bounds the multipart request; the part itself is capped at
// avatar.MaxSize.
const AvatarMaxBodyBytes = avatarsvc.MaxSize + 1<<20

// Activity titles recorded after successful mutations.
const (
	titleProfileUpdated = "Profile updated"
	titleAvatarChanged  = "Avatar changed"
)

// Services bundles the dependencies of the profile endpoints.
type Services struct {
	Profiles profilesvc.Service
	Avatars  *avatarsvc.Service
	Activity activitysvc.Service
	Overview *overviewsvc.Service
}

var bearer = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers profile endpoints.
func Register(api huma.API, prefix string, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profile",
		Summary:       "Create user profile",
		Description:   "Provisions the authenticated user's profile. The role comes from the token's role claim and defaults to student.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		role := profilesvc.RoleStudent
		if user.Role != "" {
			parsed, err := profilesvc.ParseRole(user.Role)
			if err != nil {
				return nil, huma.Error403Forbidden("unrecognized role claim")
			}
			role = parsed
		}
		email := input.Body.Email
		if email == "" {
			email = user.Email
		}
		if err := profilesvc.ValidateIdentity(input.Body.FullName, email); err != nil {
			return nil, mapServiceError(ctx, err)
		}

		profile, err := svc.Profiles.Create(ctx, user.UID, profilesvc.CreateParams{
			FullName: input.Body.FullName,
			Email:    email,
			Role:     role,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileCreateOutput{
			Location: prefix + "/profile",
			Body:     toHTTPProfile(profile),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Retrieves the profile for the authenticated user.",
		Tags:        []string{"Profile"},
		Security:    bearer,
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Profiles.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileGetOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-personal-info",
		Method:      http.MethodPut,
		Path:        "/profile/personal-info",
		Summary:     "Replace personal information",
		Description: "Replaces the full editable field set. Role-specific fields not used by the caller's role are cleared.",
		Tags:        []string{"Profile"},
		Security:    bearer,
	}, func(ctx context.Context, input *PersonalInfoUpdateInput) (*PersonalInfoUpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		current, err := svc.Profiles.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		info := input.Body.toService()
		if err := profilesvc.ValidatePersonalInfo(current.Role, info, time.Now()); err != nil {
			return nil, mapServiceError(ctx, err)
		}

		profile, err := svc.Profiles.UpdatePersonalInfo(ctx, user.UID, info)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		recordActivity(ctx, svc.Activity, user.UID, titleProfileUpdated)
		return &PersonalInfoUpdateOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:  "upload-avatar",
		Method:       http.MethodPut,
		Path:         "/profile/avatar",
		Summary:      "Upload avatar",
		Description:  "Stores a JPEG, PNG, GIF or WebP image of at most 5 MB as the caller's avatar. Images larger than 1024 pixels on a side are downscaled.",
		Tags:         []string{"Profile"},
		Security:     bearer,
		MaxBodyBytes: AvatarMaxBodyBytes,
		Errors:       []int{http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType},
	}, func(ctx context.Context, input *AvatarUploadInput) (*AvatarUploadOutput, error) {
		user := auth.UserFromContext(ctx)

		file := input.RawBody.Data().Avatar
		data, err := io.ReadAll(io.LimitReader(file, avatarsvc.MaxSize+1))
		if err != nil {
			return nil, huma.Error400BadRequest("failed to read avatar")
		}

		profile, err := svc.Avatars.Upload(ctx, user.UID, data)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		recordActivity(ctx, svc.Activity, user.UID, titleAvatarChanged)
		return &AvatarUploadOutput{Body: AvatarUpload{AvatarRef: profile.Avatar}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile-overview",
		Method:      http.MethodGet,
		Path:        "/profile/overview",
		Summary:     "Get profile overview",
		Description: "Returns the stat tiles, the five most recent activity entries and profile completeness.",
		Tags:        []string{"Profile"},
		Security:    bearer,
	}, func(ctx context.Context, _ *OverviewGetInput) (*OverviewGetOutput, error) {
		user := auth.UserFromContext(ctx)

		panel, err := svc.Overview.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &OverviewGetOutput{Body: toHTTPOverview(panel)}, nil
	})
}

// recordActivity appends a feed entry. Failures are logged and do not fail the request.
func recordActivity(ctx context.Context, svc activitysvc.Service, userID, title string) {
	_, err := svc.Record(ctx, userID, activitysvc.Input{Type: activitysvc.TypeOther, Title: title})
	if err != nil {
		applog.LogWarn(ctx, "failed to record activity", zap.String("title", title), zap.Error(err))
	}
}

func mapServiceError(ctx context.Context, err error) error {
	var verr *profilesvc.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = &huma.ErrorDetail{Message: f.Message, Location: "body." + f.Field}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	case errors.Is(err, avatarsvc.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, avatarsvc.ErrTooLarge.Error())
	case errors.Is(err, avatarsvc.ErrUnsupportedType):
		return huma.NewError(http.StatusUnsupportedMediaType, avatarsvc.ErrUnsupportedType.Error())
	case errors.Is(err, avatarsvc.ErrEmpty):
		return huma.Error422UnprocessableEntity(avatarsvc.ErrEmpty.Error())
	default:
		applog.LogError(ctx, "profile request failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPOverview(panel overviewsvc.Panel) Overview {
	out := Overview{
		Stats: Stats{
			Applications:     panel.Stats.Applications,
			ReportsSubmitted: panel.Stats.ReportsSubmitted,
			ReportsTotal:     panel.Stats.ReportsTotal,
			Progress:         panel.Stats.Progress,
		},
		Recent:       make([]RecentActivity, len(panel.Recent)),
		EmptyMessage: panel.EmptyMessage,
		Completion: Completion{
			Percent: panel.Completion.Percent,
			Label:   panel.Completion.Label(),
			Items:   make([]ChecklistItem, len(panel.Completion.Items)),
		},
		LastLogin: panel.LastLogin,
	}
	for i, item := range panel.Recent {
		out.Recent[i] = RecentActivity{
			ID:          item.ID,
			Type:        string(item.Type),
			Title:       item.Title,
			Description: item.Description,
			CreatedAt:   timeutil.NewTime(item.CreatedAt),
			When:        item.When,
		}
	}
	for i, item := range panel.Completion.Items {
		out.Completion.Items[i] = ChecklistItem{Key: item.Key, Label: item.Label, Done: item.Done}
	}
	return out
}
