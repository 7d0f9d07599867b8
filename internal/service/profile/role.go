package profile

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrUnknownRole is returned by ParseRole for anything outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// Role is the portal role of a user. The zero value is not a valid role.
type Role int

const (
	RoleStudent Role = iota + 1
	RoleAdvisor
	RoleCompanyAdmin
	RoleDean
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleAdvisor, RoleCompanyAdmin, RoleDean}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleAdvisor:
		return "advisor"
	case RoleCompanyAdmin:
		return "company-admin"
	case RoleDean:
		return "dean"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	return r >= RoleStudent && r <= RoleDean
}

// ParseRole parses the wire name of a role.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Requirement says whether a role-specific field is shown and whether it must be filled.
type Requirement int

const (
	Hidden Requirement = iota
	Optional
	Required
)

// FieldSet is the role-specific part of the personal-info form.
type FieldSet struct {
	University     Requirement
	Department     Requirement
	GraduationYear Requirement
}

// FieldsFor returns the role-specific fields. It panics on an invalid role; roles are
// only constructed through ParseRole or the constants.
func FieldsFor(r Role) FieldSet {
	switch r {
	case RoleStudent:
		return FieldSet{University: Required, Department: Required, GraduationYear: Optional}
	case RoleAdvisor:
		return FieldSet{Department: Optional}
	case RoleCompanyAdmin, RoleDean:
		return FieldSet{}
	default:
		panic(fmt.Sprintf("profile: FieldsFor called with invalid role %d", int(r)))
	}
}

// OtherUniversity is the catch-all university choice.
const OtherUniversity = "Other"

// Universities is the closed list offered to students.
var Universities = []string{
	"Aalto University",
	"LUT University",
	"Tampere University",
	"University of Helsinki",
	"University of Jyväskylä",
	"University of Oulu",
	"University of Turku",
	OtherUniversity,
}

// IsUniversity reports whether name is one of Universities.
func IsUniversity(name string) bool {
	return slices.Contains(Universities, name)
}

// GraduationYearChoices is the number of selectable graduation years.
const GraduationYearChoices = 10

// GraduationYears returns the selectable years, starting with the current year.
func GraduationYears(now time.Time) []int {
	first := now.Year()
	years := make([]int, GraduationYearChoices)
	for i := range years {
		years[i] = first + i
	}
	return years
}
