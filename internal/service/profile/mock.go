package profile

import (
	"context"
	"sync"
	"time"
)

// MockProfileService implements Service for unit tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	err      error
}

// NewMockProfileService creates a new mock service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]*Profile),
	}
}

func (m *MockProfileService) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if _, exists := m.profiles[userID]; exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{ID: userID, Role: params.Role, CreatedAt: now, UpdatedAt: now, LastLogin: now}
	PersonalInfo{FullName: params.FullName, Email: params.Email}.Normalize().ApplyTo(p)
	m.profiles[userID] = p
	out := p.Clone()
	return &out, nil
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (m *MockProfileService) UpdatePersonalInfo(ctx context.Context, userID string, info PersonalInfo) (*Profile, error) {
	return m.mutate(userID, func(p *Profile) {
		info.Normalize().ForRole(p.Role).ApplyTo(p)
	})
}

func (m *MockProfileService) SetAvatar(ctx context.Context, userID, avatarRef string) (*Profile, error) {
	return m.mutate(userID, func(p *Profile) {
		p.Avatar = avatarRef
	})
}

func (m *MockProfileService) mutate(userID string, fn func(*Profile)) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	fn(p)
	p.UpdatedAt = time.Now().UTC()
	out := p.Clone()
	return &out, nil
}

// Put stores p as-is, replacing any existing profile with the same ID.
func (m *MockProfileService) Put(p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := p.Clone()
	m.profiles[p.ID] = &c
}

// FailWith makes every subsequent mutation return err. Pass nil to reset.
func (m *MockProfileService) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Clear removes all profiles (useful for test cleanup).
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
	m.err = nil
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
