package profileview

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/janisto/intern-portal/internal/client"
	"github.com/janisto/intern-portal/internal/service/profile"
)

// SuccessWindow is how long Saved reports true after a successful submit.
const SuccessWindow = 3 * time.Second

// Counter is the live bio character counter.
type Counter struct {
	Length int
	Max    int
	Over   bool
}

func (c Counter) String() string {
	return fmt.Sprintf("%d/%d", c.Length, c.Max)
}

// PersonalInfoForm edits the personal-info field set of one profile.
type PersonalInfoForm struct {
	backend Backend
	cred    client.Credential
	commit  func(Mutation)
	now     func() time.Time
	role    profile.Role
	fields  profile.FieldSet

	mu       sync.Mutex
	snapshot profile.PersonalInfo
	values   profile.PersonalInfo
	bioInput int
	busy     bool
	err      error
	savedAt  time.Time
}

func newPersonalInfoForm(backend Backend, cred client.Credential, p profile.Profile, commit func(Mutation), now func() time.Time) *PersonalInfoForm {
	info := p.PersonalInfo()
	return &PersonalInfoForm{
		backend:  backend,
		cred:     cred,
		commit:   commit,
		now:      now,
		role:     p.Role,
		fields:   profile.FieldsFor(p.Role),
		snapshot: info,
		values:   info,
		bioInput: utf8.RuneCountInString(info.Bio),
	}
}

// Fields returns which role-specific fields the form shows.
func (f *PersonalInfoForm) Fields() profile.FieldSet {
	return f.fields
}

// Universities returns the university choices.
func (f *PersonalInfoForm) Universities() []string {
	return profile.Universities
}

// GraduationYears returns the graduation year choices.
func (f *PersonalInfoForm) GraduationYears() []int {
	return profile.GraduationYears(f.now())
}

// Values returns the current field values.
func (f *PersonalInfoForm) Values() profile.PersonalInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyInfo(f.values)
}

// Set updates one field by name. Bio is truncated to profile.BioMaxLength; an empty
// graduation year clears it.
func (f *PersonalInfoForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case profile.FieldFullName:
		f.values.FullName = value
	case profile.FieldEmail:
		f.values.Email = value
	case profile.FieldPhone:
		f.values.Phone = value
	case profile.FieldAddress:
		f.values.Address = value
	case profile.FieldBio:
		f.bioInput = utf8.RuneCountInString(value)
		f.values.Bio = truncateRunes(value, profile.BioMaxLength)
	case profile.FieldUniversity:
		if f.fields.University == profile.Hidden {
			return fmt.Errorf("%w: %s", ErrHiddenField, field)
		}
		f.values.University = value
	case profile.FieldDepartment:
		if f.fields.Department == profile.Hidden {
			return fmt.Errorf("%w: %s", ErrHiddenField, field)
		}
		f.values.Department = value
	case profile.FieldGraduationYear:
		if f.fields.GraduationYear == profile.Hidden {
			return fmt.Errorf("%w: %s", ErrHiddenField, field)
		}
		if strings.TrimSpace(value) == "" {
			f.values.GraduationYear = nil
			return nil
		}
		year, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &profile.ValidationError{Fields: []profile.FieldError{
				{Field: field, Message: "graduation year must be a number"},
			}}
		}
		f.values.GraduationYear = &year
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// BioCounter reports the length of the last bio input. Over is set when the input
// exceeded the cap, even though the stored value was truncated.
func (f *PersonalInfoForm) BioCounter() Counter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Counter{
		Length: f.bioInput,
		Max:    profile.BioMaxLength,
		Over:   f.bioInput > profile.BioMaxLength,
	}
}

// Dirty reports whether any field differs from the last confirmed snapshot.
func (f *PersonalInfoForm) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.values.Equal(f.snapshot)
}

// Busy reports whether a submit is in flight.
func (f *PersonalInfoForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// CanSubmit reports whether the submit trigger is enabled.
func (f *PersonalInfoForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.busy && !f.values.Equal(f.snapshot)
}

// Err returns the error of the last submit, or nil.
func (f *PersonalInfoForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Saved reports whether the success indicator is showing.
func (f *PersonalInfoForm) Saved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.savedAt.IsZero() && f.now().Sub(f.savedAt) < SuccessWindow
}

// Submit validates the form and sends the full field set. Local validation failures
// return a *profile.ValidationError without contacting the backend. On failure the
// edited values are kept.
func (f *PersonalInfoForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.values.Equal(f.snapshot) {
		f.mu.Unlock()
		return ErrNotDirty
	}
	if err := profile.ValidatePersonalInfo(f.role, f.values, f.now()); err != nil {
		f.err = err
		f.mu.Unlock()
		return err
	}
	sent := copyInfo(f.values)
	f.busy = true
	f.err = nil
	f.savedAt = time.Time{}
	f.mu.Unlock()

	confirmed, err := f.backend.UpdatePersonalInfo(ctx, f.cred, sent)

	f.mu.Lock()
	f.busy = false
	if err != nil {
		f.err = err
		f.mu.Unlock()
		return err
	}
	saved := sent
	if confirmed != nil {
		saved = confirmed.PersonalInfo()
	}
	if f.values.Equal(sent) {
		f.values = copyInfo(saved)
		f.bioInput = utf8.RuneCountInString(saved.Bio)
	}
	f.snapshot = copyInfo(saved)
	f.savedAt = f.now()
	f.mu.Unlock()

	if f.commit != nil {
		f.commit(PersonalInfoSaved(sent, confirmed))
	}
	return nil
}

// Cancel reverts all edits to the last confirmed snapshot.
func (f *PersonalInfoForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = copyInfo(f.snapshot)
	f.bioInput = utf8.RuneCountInString(f.snapshot.Bio)
	f.err = nil
}

func copyInfo(info profile.PersonalInfo) profile.PersonalInfo {
	if info.GraduationYear != nil {
		y := *info.GraduationYear
		info.GraduationYear = &y
	}
	return info
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
