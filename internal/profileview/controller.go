package profileview

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/intern-portal/internal/client"
	applog "github.com/janisto/intern-portal/internal/platform/logging"
	"github.com/janisto/intern-portal/internal/platform/timeutil"
	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/overview"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// State is the fetch state of the page.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tab is a section of the profile page.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabPersonalInfo Tab = "personal-info"
	TabSecurity     Tab = "security"
	TabActivityLog  Tab = "activity-log"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabOverview, TabPersonalInfo, TabSecurity, TabActivityLog}

// ParseTab returns the tab named s.
func ParseTab(s string) (Tab, error) {
	if t := Tab(s); slices.Contains(Tabs, t) {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Controller owns the cached profile of one page visit.
type Controller struct {
	backend Backend
	cred    client.Credential
	now     func() time.Time

	done chan struct{}

	mu          sync.Mutex
	started     bool
	state       State
	err         error
	profile     profile.Profile
	activity    []activity.Entry
	activityErr error
	tab         Tab
	form        *PersonalInfoForm
	uploader    *AvatarUploader
}

// NewController creates a controller in the loading state.
func NewController(backend Backend, cred client.Credential) *Controller {
	return &Controller{
		backend: backend,
		cred:    cred,
		now:     time.Now,
		done:    make(chan struct{}),
		state:   StateLoading,
		tab:     TabOverview,
	}
}

// Load fetches the profile and its recent activity. Only the first call fetches;
// later calls wait for and return the outcome of the first. A failed activity fetch
// does not fail the page.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		select {
		case <-c.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.err
	}
	c.started = true
	c.mu.Unlock()
	defer close(c.done)

	p, err := c.backend.FetchProfile(ctx, c.cred)
	if err == nil && (p == nil || p.ID == "") {
		err = ErrEmptyProfile
	}
	if err != nil {
		applog.LogWarn(ctx, "profile page load failed", zap.Error(err))
		c.mu.Lock()
		c.state = StateError
		c.err = err
		c.mu.Unlock()
		return err
	}

	entries, actErr := c.backend.FetchRecentActivity(ctx, c.cred, p.ID)
	if actErr != nil {
		applog.LogWarn(ctx, "recent activity fetch failed", zap.Error(actErr))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p.Clone()
	c.activity = slices.Clone(entries)
	c.activityErr = actErr
	c.form = newPersonalInfoForm(c.backend, c.cred, c.profile, c.apply, c.now)
	c.uploader = newAvatarUploader(c.backend, c.cred, c.apply)
	c.state = StateReady
	return nil
}

// State returns the fetch state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the load failure, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Tab returns the selected tab.
func (c *Controller) Tab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SelectTab switches tabs. It never fetches.
func (c *Controller) SelectTab(t Tab) error {
	if !slices.Contains(Tabs, t) {
		return fmt.Errorf("%w: %q", ErrUnknownTab, t)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = t
	return nil
}

// Profile returns a copy of the cached profile.
func (c *Controller) Profile() (profile.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return profile.Profile{}, ErrNotReady
	}
	return c.profile.Clone(), nil
}

// LastLogin returns the relative last-login label, or "" when unknown.
func (c *Controller) LastLogin() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return "", ErrNotReady
	}
	if c.profile.LastLogin.IsZero() {
		return "", nil
	}
	return timeutil.Relative(c.profile.LastLogin, c.now()), nil
}

// Activity returns the fetched activity entries and the error of that fetch.
func (c *Controller) Activity() ([]activity.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, ErrNotReady
	}
	if c.activityErr != nil {
		return nil, c.activityErr
	}
	return slices.Clone(c.activity), nil
}

// Overview builds the overview panel from the cached profile, the fetched activity
// and the caller's stats.
func (c *Controller) Overview(stats overview.Stats) (overview.Panel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return overview.Panel{}, ErrNotReady
	}
	return overview.Build(c.profile, stats, c.activity, c.now()), nil
}

// Form returns the personal-info form.
func (c *Controller) Form() (*PersonalInfoForm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, ErrNotReady
	}
	return c.form, nil
}

// Uploader returns the avatar uploader.
func (c *Controller) Uploader() (*AvatarUploader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, ErrNotReady
	}
	return c.uploader, nil
}

func (c *Controller) apply(m Mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = Reduce(c.profile, m)
}
