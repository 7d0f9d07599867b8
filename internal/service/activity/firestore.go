package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	applog "github.com/janisto/intern-portal/internal/platform/logging"
)

const (
	usersCollection    = "users"
	activityCollection = "activity"
	countAlias         = "count"
)

// firestoreEntry maps to the Firestore document structure.
type firestoreEntry struct {
	Type        string    `firestore:"type"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description,omitempty"`
	CreatedAt   time.Time `firestore:"created_at"`
}

// FirestoreStore implements Service with one subcollection per user, keyed by ULID.
type FirestoreStore struct {
	client *firestore.Client
	ids    *idGenerator
	now    func() time.Time
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, ids: newIDGenerator(), now: time.Now}
}

func (s *FirestoreStore) collection(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(activityCollection)
}

// Record appends an entry to the user's feed.
func (s *FirestoreStore) Record(ctx context.Context, userID string, in Input) (*Entry, error) {
	entry, err := s.record(ctx, userID, in)
	ev := applog.AuditEvent{Action: "create", UserID: userID, Resource: "activity"}
	if entry != nil {
		ev.ResourceID = entry.ID
	}
	applog.AuditOutcome(ctx, ev, err, CategorizeError)
	return entry, err
}

func (s *FirestoreStore) record(ctx context.Context, userID string, in Input) (*Entry, error) {
	if _, err := ParseType(string(in.Type)); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	entry := &Entry{
		ID:          s.ids.New(now),
		UserID:      userID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
	}
	_, err := s.collection(userID).Doc(entry.ID).Create(ctx, firestoreEntry{
		Type:        string(in.Type),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List reads one page ordered by document ID descending.
func (s *FirestoreStore) List(ctx context.Context, userID, after string, limit int) (Page, error) {
	if limit <= 0 {
		return Page{}, nil
	}
	q := s.collection(userID).OrderBy(firestore.DocumentID, firestore.Desc)
	if after != "" {
		if err := validateID(after); err != nil {
			return Page{}, err
		}
		q = q.StartAfter(after)
	}
	// One extra document tells whether another page exists.
	iter := q.Limit(limit + 1).Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return Page{}, err
		}
		var fe firestoreEntry
		if err := doc.DataTo(&fe); err != nil {
			return Page{}, fmt.Errorf("activity %s: %w", doc.Ref.ID, err)
		}
		entries = append(entries, Entry{
			ID:          doc.Ref.ID,
			UserID:      userID,
			Type:        Type(fe.Type),
			Title:       fe.Title,
			Description: fe.Description,
			CreatedAt:   fe.CreatedAt,
		})
	}

	page := Page{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		page.Next = page.Entries[limit-1].ID
	}
	return page, nil
}

// Count runs one aggregation query per tracked type.
func (s *FirestoreStore) Count(ctx context.Context, userID string) (Counts, error) {
	apps, err := s.count(ctx, userID, TypeApplication)
	if err != nil {
		return Counts{}, err
	}
	reports, err := s.count(ctx, userID, TypeReport)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Applications: apps, Reports: reports}, nil
}

func (s *FirestoreStore) count(ctx context.Context, userID string, typ Type) (int, error) {
	q := s.collection(userID).Where("type", "==", string(typ))
	res, err := q.NewAggregationQuery().WithCount(countAlias).Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res[countAlias].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result %T", res[countAlias])
	}
	return int(v.GetIntegerValue()), nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
