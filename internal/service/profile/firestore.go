package profile

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/intern-portal/internal/platform/logging"
)

// Collection is the Firestore collection holding one document per user.
const Collection = "profiles"

// firestoreProfile maps to the Firestore document structure.
type firestoreProfile struct {
	Email          string    `firestore:"email"`
	FullName       string    `firestore:"full_name"`
	Role           string    `firestore:"role"`
	Phone          string    `firestore:"phone,omitempty"`
	Address        string    `firestore:"address,omitempty"`
	Bio            string    `firestore:"bio,omitempty"`
	Avatar         string    `firestore:"avatar,omitempty"`
	University     string    `firestore:"university,omitempty"`
	Department     string    `firestore:"department,omitempty"`
	GraduationYear *int      `firestore:"graduation_year"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
	LastLogin      time.Time `firestore:"last_login"`
}

func toDocument(p *Profile) firestoreProfile {
	return firestoreProfile{
		Email:          p.Email,
		FullName:       p.FullName,
		Role:           p.Role.String(),
		Phone:          p.Phone,
		Address:        p.Address,
		Bio:            p.Bio,
		Avatar:         p.Avatar,
		University:     p.University,
		Department:     p.Department,
		GraduationYear: p.GraduationYear,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		LastLogin:      p.LastLogin,
	}
}

func fromDocument(userID string, doc *firestore.DocumentSnapshot) (*Profile, error) {
	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	role, err := ParseRole(fp.Role)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", userID, err)
	}
	return &Profile{
		ID:             userID,
		Email:          fp.Email,
		FullName:       fp.FullName,
		Role:           role,
		Phone:          fp.Phone,
		Address:        fp.Address,
		Bio:            fp.Bio,
		Avatar:         fp.Avatar,
		University:     fp.University,
		Department:     fp.Department,
		GraduationYear: fp.GraduationYear,
		CreatedAt:      fp.CreatedAt,
		UpdatedAt:      fp.UpdatedAt,
		LastLogin:      fp.LastLogin,
	}, nil
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, now: time.Now}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(Collection).Doc(userID)
}

// Create provisions a profile using a transaction to prevent duplicates.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	docRef := s.doc(userID)
	now := s.now().UTC()

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		info := PersonalInfo{FullName: params.FullName, Email: params.Email}.Normalize()
		p := &Profile{
			ID:        userID,
			Role:      params.Role,
			CreatedAt: now,
			UpdatedAt: now,
			LastLogin: now,
		}
		info.ApplyTo(p)

		if err := tx.Set(docRef, toDocument(p)); err != nil {
			return err
		}
		result = p
		return nil
	})
	applog.AuditOutcome(ctx, applog.AuditEvent{
		Action: "create", UserID: userID, Resource: "profile", ResourceID: userID,
	}, err, CategorizeError)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromDocument(userID, doc)
}

// UpdatePersonalInfo replaces the personal-info fields in a transaction.
func (s *FirestoreStore) UpdatePersonalInfo(ctx context.Context, userID string, info PersonalInfo) (*Profile, error) {
	p, err := s.mutate(ctx, userID, func(p *Profile) {
		info.Normalize().ForRole(p.Role).ApplyTo(p)
	})
	applog.AuditOutcome(ctx, applog.AuditEvent{
		Action: "update", UserID: userID, Resource: "profile", ResourceID: userID,
	}, err, CategorizeError)
	return p, err
}

// SetAvatar stores the avatar reference in a transaction.
func (s *FirestoreStore) SetAvatar(ctx context.Context, userID, avatarRef string) (*Profile, error) {
	p, err := s.mutate(ctx, userID, func(p *Profile) {
		p.Avatar = avatarRef
	})
	applog.AuditOutcome(ctx, applog.AuditEvent{
		Action: "set_avatar", UserID: userID, Resource: "profile", ResourceID: userID,
	}, err, CategorizeError)
	return p, err
}

func (s *FirestoreStore) mutate(ctx context.Context, userID string, fn func(*Profile)) (*Profile, error) {
	docRef := s.doc(userID)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		p, err := fromDocument(userID, doc)
		if err != nil {
			return err
		}
		fn(p)
		p.UpdatedAt = s.now().UTC()

		if err := tx.Set(docRef, toDocument(p)); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
