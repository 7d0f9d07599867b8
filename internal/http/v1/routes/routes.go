package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/intern-portal/internal/http/v1/activity"
	"github.com/janisto/intern-portal/internal/http/v1/profile"
	"github.com/janisto/intern-portal/internal/platform/auth"
	activitysvc "github.com/janisto/intern-portal/internal/service/activity"
	avatarsvc "github.com/janisto/intern-portal/internal/service/avatar"
	overviewsvc "github.com/janisto/intern-portal/internal/service/overview"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

// Services are the domain services behind the v1 API.
type Services struct {
	Profiles profilesvc.Service
	Activity activitysvc.Service
	Avatars  *avatarsvc.Service
	Overview *overviewsvc.Service
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svc Services) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profile.Register(api, prefix, profile.Services{
		Profiles: svc.Profiles,
		Avatars:  svc.Avatars,
		Activity: svc.Activity,
		Overview: svc.Overview,
	})
	activity.Register(api, svc.Activity, prefix)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
