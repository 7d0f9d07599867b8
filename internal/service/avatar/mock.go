package avatar

import (
	"context"
	"fmt"
	"sync"
)

// MockStore implements Store in memory for unit tests.
type MockStore struct {
	mu      sync.Mutex
	objects map[string]Image
	seq     int
	putErr  error
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{objects: make(map[string]Image)}
}

func (m *MockStore) Put(ctx context.Context, userID string, img Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return "", m.putErr
	}
	m.seq++
	ref := fmt.Sprintf("https://storage.test/avatars/%s/%d%s", userID, m.seq, img.Extension())
	m.objects[ref] = img
	return ref, nil
}

func (m *MockStore) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, ref)
	return nil
}

// Get returns the stored image for ref.
func (m *MockStore) Get(ref string) (Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.objects[ref]
	return img, ok
}

// Len returns the number of stored objects.
func (m *MockStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// FailPutWith makes Put return err. Pass nil to reset.
func (m *MockStore) FailPutWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
