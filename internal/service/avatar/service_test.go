package avatar

import (
	"context"
	"errors"
	"testing"

	"github.com/janisto/intern-portal/internal/service/profile"
)

func newTestService(t *testing.T) (*Service, *MockStore, *profile.MockProfileService) {
	t.Helper()
	store := NewMockStore()
	profiles := profile.NewMockProfileService()
	profiles.Put(profile.Profile{ID: "u1", Role: profile.RoleStudent, Bio: "hi"})
	return NewService(store, profiles), store, profiles
}

func TestUploadSetsAvatar(t *testing.T) {
	svc, store, _ := newTestService(t)

	p, err := svc.Upload(context.Background(), "u1", encodePNG(t, 16, 16))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Avatar == "" || p.Bio != "hi" {
		t.Fatalf("unexpected profile %+v", p)
	}
	img, ok := store.Get(p.Avatar)
	if !ok {
		t.Fatal("expected object to be stored under the returned reference")
	}
	if img.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", img.ContentType)
	}
}

func TestUploadRejectsBeforeStoring(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "u1", []byte("not an image"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("rejected upload must not be stored")
	}
}

func TestUploadRemovesObjectWhenProfileUpdateFails(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "missing", encodePNG(t, 4, 4))
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected orphaned object to be deleted, %d left", store.Len())
	}
}

func TestUploadStoreFailure(t *testing.T) {
	svc, store, profiles := newTestService(t)
	boom := errors.New("bucket unavailable")
	store.FailPutWith(boom)

	if _, err := svc.Upload(context.Background(), "u1", encodePNG(t, 4, 4)); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	p, _ := profiles.Get(context.Background(), "u1")
	if p.Avatar != "" {
		t.Fatal("profile must not change when the store fails")
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrTooLarge, "too_large"},
		{ErrUnsupportedType, "unsupported_type"},
		{ErrEmpty, "empty"},
		{profile.ErrNotFound, "not_found"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		if got := CategorizeError(tt.err); got != tt.want {
			t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
