package avatar

import (
	"context"
	"errors"

	"go.uber.org/zap"

	applog "github.com/janisto/intern-portal/internal/platform/logging"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// Service uploads avatars and attaches them to profiles.
type Service struct {
	store    Store
	profiles profile.Service
}

// NewService creates an avatar service.
func NewService(store Store, profiles profile.Service) *Service {
	return &Service{store: store, profiles: profiles}
}

// Upload validates data, stores it and points the profile at the new object. When the
// profile update fails the stored object is removed again. The previous avatar object is
// left in place.
func (s *Service) Upload(ctx context.Context, userID string, data []byte) (*profile.Profile, error) {
	p, err := s.upload(ctx, userID, data)
	applog.AuditOutcome(ctx, applog.AuditEvent{
		Action: "upload", UserID: userID, Resource: "avatar", ResourceID: userID,
	}, err, CategorizeError)
	return p, err
}

func (s *Service) upload(ctx context.Context, userID string, data []byte) (*profile.Profile, error) {
	img, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	img, err = Normalize(img)
	if err != nil {
		return nil, err
	}

	ref, err := s.store.Put(ctx, userID, img)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.SetAvatar(ctx, userID, ref)
	if err != nil {
		if derr := s.store.Delete(context.WithoutCancel(ctx), ref); derr != nil {
			applog.LogWarn(ctx, "failed to remove orphaned avatar",
				zap.String("ref", ref), zap.Error(derr))
		}
		return nil, err
	}
	return p, nil
}

// CategorizeError converts errors to audit-safe categories.
func CategorizeError(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrEmpty):
		return "empty"
	default:
		return profile.CategorizeError(err)
	}
}
