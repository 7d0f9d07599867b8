package profileview

import (
	"fmt"

	"github.com/janisto/intern-portal/internal/service/profile"
)

// MutationKind identifies which fields a confirmed mutation owns.
type MutationKind int

const (
	MutationPersonalInfo MutationKind = iota + 1
	MutationAvatar
)

func (k MutationKind) String() string {
	switch k {
	case MutationPersonalInfo:
		return "personal-info"
	case MutationAvatar:
		return "avatar"
	default:
		return fmt.Sprintf("MutationKind(%d)", int(k))
	}
}

// Mutation is a server-confirmed change to the cached profile.
type Mutation struct {
	Kind MutationKind

	// Personal info: Confirmed is the server's record when it returned one, Sent
	// is what the client submitted.
	Sent      profile.PersonalInfo
	Confirmed *profile.Profile

	// Avatar: the reference returned by the upload.
	AvatarRef string
}

// PersonalInfoSaved builds the mutation for a successful personal-info update.
func PersonalInfoSaved(sent profile.PersonalInfo, confirmed *profile.Profile) Mutation {
	return Mutation{Kind: MutationPersonalInfo, Sent: sent, Confirmed: confirmed}
}

// AvatarChanged builds the mutation for a successful avatar upload.
func AvatarChanged(ref string) Mutation {
	return Mutation{Kind: MutationAvatar, AvatarRef: ref}
}

// Reduce returns p with m merged in. Each kind touches only the fields it owns, so
// confirmations of different kinds can arrive in any order. It panics on an unknown
// kind.
func Reduce(p profile.Profile, m Mutation) profile.Profile {
	next := p.Clone()
	switch m.Kind {
	case MutationPersonalInfo:
		info := m.Sent
		if m.Confirmed != nil {
			info = m.Confirmed.PersonalInfo()
		}
		info.ApplyTo(&next)
	case MutationAvatar:
		next.Avatar = m.AvatarRef
	default:
		panic(fmt.Sprintf("profileview: Reduce called with %s", m.Kind))
	}
	return next
}
