package profileview

import (
	"context"
	"slices"
	"sync"

	"github.com/janisto/intern-portal/internal/client"
	"github.com/janisto/intern-portal/internal/service/activity"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// MockBackend is an in-memory Backend for tests. Gate, when set, blocks mutations until
// it is closed or receives a value; FetchGate does the same for FetchProfile.
type MockBackend struct {
	mu sync.Mutex

	Profile     *profile.Profile
	Entries     []activity.Entry
	FetchErr    error
	ActivityErr error
	UpdateErr   error
	UploadErr   error
	// AckOnly makes UpdatePersonalInfo return no profile.
	AckOnly   bool
	Gate      chan struct{}
	FetchGate chan struct{}

	Updates []profile.PersonalInfo
	Uploads []client.File
	Creds   []client.Credential
	fetches int
}

// NewMockBackend creates a backend serving p.
func NewMockBackend(p profile.Profile) *MockBackend {
	return &MockBackend{Profile: &p}
}

// FetchProfile returns the configured profile.
func (m *MockBackend) FetchProfile(ctx context.Context, cred client.Credential) (*profile.Profile, error) {
	m.mu.Lock()
	m.fetches++
	m.Creds = append(m.Creds, cred)
	gate := m.FetchGate
	m.mu.Unlock()
	if err := waitGate(ctx, gate); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	if m.Profile == nil {
		return nil, nil
	}
	p := m.Profile.Clone()
	return &p, nil
}

// UpdatePersonalInfo records info and applies it to the stored profile.
func (m *MockBackend) UpdatePersonalInfo(ctx context.Context, cred client.Credential, info profile.PersonalInfo) (*profile.Profile, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Creds = append(m.Creds, cred)
	m.Updates = append(m.Updates, info)
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if m.Profile == nil {
		return nil, profile.ErrNotFound
	}
	info.Normalize().ForRole(m.Profile.Role).ApplyTo(m.Profile)
	if m.AckOnly {
		return nil, nil
	}
	p := m.Profile.Clone()
	return &p, nil
}

// UploadAvatar records file and returns a reference derived from its name.
func (m *MockBackend) UploadAvatar(ctx context.Context, cred client.Credential, file client.File) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Creds = append(m.Creds, cred)
	m.Uploads = append(m.Uploads, file)
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	ref := "https://storage.example.com/avatars/" + file.Name
	if m.Profile != nil {
		m.Profile.Avatar = ref
	}
	return ref, nil
}

// FetchRecentActivity returns the configured entries.
func (m *MockBackend) FetchRecentActivity(_ context.Context, cred client.Credential, _ string) ([]activity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Creds = append(m.Creds, cred)
	if m.ActivityErr != nil {
		return nil, m.ActivityErr
	}
	return slices.Clone(m.Entries), nil
}

// Fetches returns the number of FetchProfile calls.
func (m *MockBackend) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *MockBackend) wait(ctx context.Context) error {
	m.mu.Lock()
	gate := m.Gate
	m.mu.Unlock()
	return waitGate(ctx, gate)
}

func waitGate(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Backend = (*MockBackend)(nil)
