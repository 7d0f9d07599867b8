package profile

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is a portal user's stored profile.
//
// Role-specific fields (University, Department, GraduationYear) are optional here;
// requiredness is a property of the edit form, see FieldsFor.
type Profile struct {
	ID             string
	Email          string
	FullName       string
	Role           Role
	Phone          string
	Address        string
	Bio            string
	Avatar         string
	University     string
	Department     string
	GraduationYear *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLogin      time.Time
}

// Initials returns up to two upper-case initials from the full name, falling back to the
// first letter of the email.
func (p Profile) Initials() string {
	var out []rune
	for _, word := range strings.Fields(p.FullName) {
		r, _ := utf8.DecodeRuneInString(word)
		out = append(out, unicode.ToUpper(r))
	}
	switch {
	case len(out) > 2:
		out = []rune{out[0], out[len(out)-1]}
	case len(out) == 0 && p.Email != "":
		r, _ := utf8.DecodeRuneInString(p.Email)
		out = []rune{unicode.ToUpper(r)}
	}
	return string(out)
}

// PersonalInfo returns the editable subset of the profile.
func (p Profile) PersonalInfo() PersonalInfo {
	return PersonalInfo{
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		University:     p.University,
		Department:     p.Department,
		GraduationYear: cloneInt(p.GraduationYear),
		Bio:            p.Bio,
		Address:        p.Address,
	}
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	p.GraduationYear = cloneInt(p.GraduationYear)
	return p
}

// PersonalInfo is the full editable field set submitted by the personal-info form.
type PersonalInfo struct {
	FullName       string
	Email          string
	Phone          string
	University     string
	Department     string
	GraduationYear *int
	Bio            string
	Address        string
}

// Normalize trims whitespace and lower-cases the email.
func (pi PersonalInfo) Normalize() PersonalInfo {
	pi.FullName = strings.TrimSpace(pi.FullName)
	pi.Email = strings.ToLower(strings.TrimSpace(pi.Email))
	pi.Phone = strings.TrimSpace(pi.Phone)
	pi.University = strings.TrimSpace(pi.University)
	pi.Department = strings.TrimSpace(pi.Department)
	pi.GraduationYear = cloneInt(pi.GraduationYear)
	pi.Bio = strings.TrimSpace(pi.Bio)
	pi.Address = strings.TrimSpace(pi.Address)
	return pi
}

// ForRole clears the fields the role does not edit.
func (pi PersonalInfo) ForRole(r Role) PersonalInfo {
	fields := FieldsFor(r)
	if fields.University == Hidden {
		pi.University = ""
	}
	if fields.Department == Hidden {
		pi.Department = ""
	}
	if fields.GraduationYear == Hidden {
		pi.GraduationYear = nil
	}
	return pi
}

// Equal reports whether both field sets hold the same values.
func (pi PersonalInfo) Equal(other PersonalInfo) bool {
	if (pi.GraduationYear == nil) != (other.GraduationYear == nil) {
		return false
	}
	if pi.GraduationYear != nil && *pi.GraduationYear != *other.GraduationYear {
		return false
	}
	a, b := pi, other
	a.GraduationYear, b.GraduationYear = nil, nil
	return a == b
}

// ApplyTo copies the personal-info fields onto p.
func (pi PersonalInfo) ApplyTo(p *Profile) {
	p.FullName = pi.FullName
	p.Email = pi.Email
	p.Phone = pi.Phone
	p.University = pi.University
	p.Department = pi.Department
	p.GraduationYear = cloneInt(pi.GraduationYear)
	p.Bio = pi.Bio
	p.Address = pi.Address
}

// CreateParams for provisioning a profile.
type CreateParams struct {
	FullName string
	Email    string
	Role     Role
}

// Service defines profile operations.
//
// Implementations normalize input with PersonalInfo.Normalize before storing.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	UpdatePersonalInfo(ctx context.Context, userID string, info PersonalInfo) (*Profile, error)
	SetAvatar(ctx context.Context, userID, avatarRef string) (*Profile, error)
}

// CategorizeError converts errors to audit-safe categories.
func CategorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
