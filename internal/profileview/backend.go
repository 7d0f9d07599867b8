// Package profileview holds the state of the profile page: the fetch state machine,
// tab selection, the personal-info form and the avatar uploader.
//
// Every component is safe for concurrent use. Locks are released across network
// calls; busy flags reject overlapping submissions instead of queueing them.
package profileview

import (
	"context"
	"errors"

	"github.com/janisto/intern-portal/internal/client"
	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// Errors
var (
	ErrNotReady     = errors.New("profile page is not ready")
	ErrEmptyProfile = errors.New("profile payload is empty")
	ErrBusy         = errors.New("operation already in progress")
	ErrNotDirty     = errors.New("no changes to save")
	ErrNoFile       = errors.New("no file selected")
	ErrUnknownField = errors.New("unknown field")
	ErrHiddenField  = errors.New("field is not editable for this role")
	ErrUnknownTab   = errors.New("unknown tab")
)

// Backend is the portal API as seen by the profile page. UpdatePersonalInfo may
// return a nil profile when the server only acknowledges the write.
type Backend interface {
	FetchProfile(ctx context.Context, cred client.Credential) (*profile.Profile, error)
	UpdatePersonalInfo(ctx context.Context, cred client.Credential, info profile.PersonalInfo) (*profile.Profile, error)
	UploadAvatar(ctx context.Context, cred client.Credential, file client.File) (string, error)
	FetchRecentActivity(ctx context.Context, cred client.Credential, userID string) ([]activity.Entry, error)
}

var _ Backend = (*client.Client)(nil)
