package overview

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// Service assembles panels from the profile and activity stores.
type Service struct {
	profiles        profile.Service
	activity        activity.Service
	reportsRequired int
	now             func() time.Time
}

// NewService creates an overview service. reportsRequired is the report total shown on
// the stat tile.
func NewService(profiles profile.Service, activities activity.Service, reportsRequired int) *Service {
	return &Service{
		profiles:        profiles,
		activity:        activities,
		reportsRequired: reportsRequired,
		now:             time.Now,
	}
}

// Get loads the profile, the recent entries and the counts concurrently. The first
// failure cancels the others.
func (s *Service) Get(ctx context.Context, userID string) (Panel, error) {
	var (
		p      *profile.Profile
		page   activity.Page
		counts activity.Counts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.profiles.Get(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = s.activity.List(gctx, userID, "", RecentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.activity.Count(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Panel{}, err
	}

	return Build(*p, NewStats(counts, s.reportsRequired), page.Entries, s.now()), nil
}
