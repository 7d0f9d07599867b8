package activity

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockActivityService implements Service for unit tests.
type MockActivityService struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	ids     *idGenerator
	err     error
}

// NewMockActivityService creates a new mock service.
func NewMockActivityService() *MockActivityService {
	return &MockActivityService{
		entries: make(map[string][]Entry),
		ids:     newIDGenerator(),
	}
}

func (m *MockActivityService) Record(ctx context.Context, userID string, in Input) (*Entry, error) {
	if _, err := ParseType(string(in.Type)); err != nil {
		return nil, err
	}
	return m.Add(userID, in, time.Now().UTC())
}

// Add records an entry with an explicit creation time.
func (m *MockActivityService) Add(userID string, in Input, at time.Time) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	e := Entry{
		ID:          m.ids.New(at),
		UserID:      userID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   at,
	}
	m.entries[userID] = append(m.entries[userID], e)
	return &e, nil
}

func (m *MockActivityService) List(ctx context.Context, userID, after string, limit int) (Page, error) {
	if after != "" {
		if err := validateID(after); err != nil {
			return Page{}, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return Page{}, m.err
	}
	if limit <= 0 {
		return Page{}, nil
	}
	all := slices.Clone(m.entries[userID])
	slices.SortFunc(all, func(a, b Entry) int { return strings.Compare(b.ID, a.ID) })

	start := 0
	if after != "" {
		start = len(all)
		for i, e := range all {
			if e.ID < after {
				start = i
				break
			}
		}
	}
	rest := all[start:]
	page := Page{Entries: rest}
	if len(rest) > limit {
		page.Entries = rest[:limit]
		page.Next = page.Entries[limit-1].ID
	}
	return page, nil
}

func (m *MockActivityService) Count(ctx context.Context, userID string) (Counts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return Counts{}, m.err
	}
	var c Counts
	for _, e := range m.entries[userID] {
		switch e.Type {
		case TypeApplication:
			c.Applications++
		case TypeReport:
			c.Reports++
		case TypeFeedback, TypeOther:
		}
	}
	return c, nil
}

// FailWith makes every subsequent call return err. Pass nil to reset.
func (m *MockActivityService) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Clear removes all entries (useful for test cleanup).
func (m *MockActivityService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]Entry)
	m.err = nil
}

// Compile-time interface check
var _ Service = (*MockActivityService)(nil)
