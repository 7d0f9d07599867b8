package profileview

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/janisto/intern-portal/internal/client"
	"github.com/janisto/intern-portal/internal/service/avatar"
)

// SizeGuideline is the upload size shown to the user. It is not enforced locally.
const SizeGuideline = avatar.MaxSize

// AvatarUploader holds at most one pending avatar file and uploads it.
type AvatarUploader struct {
	backend Backend
	cred    client.Credential
	commit  func(Mutation)

	mu      sync.Mutex
	open    bool
	pending *client.File
	preview string
	seq     int
	busy    bool
	err     error
}

func newAvatarUploader(backend Backend, cred client.Credential, commit func(Mutation)) *AvatarUploader {
	return &AvatarUploader{backend: backend, cred: cred, commit: commit}
}

// AcceptedTypes returns the content types offered in the file picker.
func (u *AvatarUploader) AcceptedTypes() []string {
	return avatar.AcceptedTypes
}

// Open shows the upload surface.
func (u *AvatarUploader) Open() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.open = true
}

// IsOpen reports whether the upload surface is showing.
func (u *AvatarUploader) IsOpen() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.open
}

// Select replaces any pending file and returns its data URL preview.
func (u *AvatarUploader) Select(file client.File) string {
	data := make([]byte, len(file.Data))
	copy(data, file.Data)
	file.Data = data
	preview := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.open = true
	u.pending = &file
	u.preview = preview
	u.seq++
	u.err = nil
	return preview
}

// Pending returns the selected file.
func (u *AvatarUploader) Pending() (client.File, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending == nil {
		return client.File{}, false
	}
	return *u.pending, true
}

// Preview returns the data URL of the pending file, or "".
func (u *AvatarUploader) Preview() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.preview
}

// Busy reports whether an upload is in flight.
func (u *AvatarUploader) Busy() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.busy
}

// Err returns the error of the last upload, or nil.
func (u *AvatarUploader) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Upload sends the pending file. On success the returned reference is committed,
// the surface closes and the selection clears. On failure the selection and preview
// remain.
func (u *AvatarUploader) Upload(ctx context.Context) (string, error) {
	u.mu.Lock()
	if u.busy {
		u.mu.Unlock()
		return "", ErrBusy
	}
	if u.pending == nil {
		u.mu.Unlock()
		return "", ErrNoFile
	}
	file := *u.pending
	seq := u.seq
	u.busy = true
	u.err = nil
	u.mu.Unlock()

	ref, err := u.backend.UploadAvatar(ctx, u.cred, file)

	u.mu.Lock()
	u.busy = false
	if err != nil {
		u.err = err
		u.mu.Unlock()
		return "", err
	}
	// A file selected while uploading stays pending.
	if u.seq == seq {
		u.pending = nil
		u.preview = ""
		u.open = false
	}
	u.mu.Unlock()

	if u.commit != nil {
		u.commit(AvatarChanged(ref))
	}
	return ref, nil
}

// Cancel clears the selection and closes the surface.
func (u *AvatarUploader) Cancel() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	u.preview = ""
	u.open = false
	u.err = nil
}
