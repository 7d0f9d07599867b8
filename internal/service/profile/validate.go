package profile

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits.
const (
	FullNameMinLength = 2
	BioMaxLength      = 500
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldUniversity     = "university"
	FieldDepartment     = "department"
	FieldGraduationYear = "graduationYear"
	FieldBio            = "bio"
	FieldAddress        = "address"
)

// FieldError is a validation failure of one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field errors. It never leaves the client when raised by the form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for field, or "".
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// ValidateIdentity checks the fields every profile needs. It returns nil or a
// *ValidationError.
func ValidateIdentity(fullName, email string) error {
	return asError(identityErrors(fullName, email))
}

// ValidatePersonalInfo checks info against the schema for role. now selects the
// graduation year window. It returns nil or a *ValidationError.
func ValidatePersonalInfo(role Role, info PersonalInfo, now time.Time) error {
	errs := identityErrors(info.FullName, info.Email)
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if utf8.RuneCountInString(info.Bio) > BioMaxLength {
		add(FieldBio, fmt.Sprintf("bio must be at most %d characters", BioMaxLength))
	}

	fields := FieldsFor(role)
	if fields.University == Required {
		switch uni := strings.TrimSpace(info.University); {
		case uni == "":
			add(FieldUniversity, "university is required")
		case !IsUniversity(uni):
			add(FieldUniversity, "university must be one of the listed institutions")
		}
	}
	if fields.Department == Required && strings.TrimSpace(info.Department) == "" {
		add(FieldDepartment, "department is required")
	}
	if fields.GraduationYear != Hidden && info.GraduationYear != nil {
		years := GraduationYears(now)
		if y := *info.GraduationYear; y < years[0] || y > years[len(years)-1] {
			add(FieldGraduationYear, fmt.Sprintf("graduation year must be between %d and %d", years[0], years[len(years)-1]))
		}
	}

	return asError(errs)
}

func identityErrors(fullName, email string) []FieldError {
	var errs []FieldError
	switch name := strings.TrimSpace(fullName); {
	case name == "":
		errs = append(errs, FieldError{FieldFullName, "full name is required"})
	case utf8.RuneCountInString(name) < FullNameMinLength:
		errs = append(errs, FieldError{FieldFullName, fmt.Sprintf("full name must be at least %d characters", FullNameMinLength)})
	}
	switch email = strings.TrimSpace(email); {
	case email == "":
		errs = append(errs, FieldError{FieldEmail, "email is required"})
	case !validEmail(email):
		errs = append(errs, FieldError{FieldEmail, "email is not a valid address"})
	}
	return errs
}

func asError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// validEmail accepts a bare addr-spec; display names are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && addr.Name == ""
}
