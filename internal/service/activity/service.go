// Package activity records and lists a user's portal activity feed.
package activity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Service errors
var (
	ErrUnknownType = errors.New("unknown activity type")
	ErrInvalidID   = errors.New("invalid activity id")
)

// Type classifies an activity entry.
type Type string

const (
	TypeApplication Type = "application"
	TypeReport      Type = "report"
	TypeFeedback    Type = "feedback"
	TypeOther       Type = "other"
)

// ParseType validates an activity type name.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeApplication, TypeReport, TypeFeedback, TypeOther:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// Entry is one item of the activity feed. IDs are ULIDs, so lexical order is chronological.
type Entry struct {
	ID          string
	UserID      string
	Type        Type
	Title       string
	Description string
	CreatedAt   time.Time
}

// Input describes an entry to record.
type Input struct {
	Type        Type
	Title       string
	Description string
}

// Page is one slice of a reverse-chronological listing. Next is the ID to continue after,
// empty on the last page.
type Page struct {
	Entries []Entry
	Next    string
}

// Counts of entries per tracked type.
type Counts struct {
	Applications int
	Reports      int
}

// Service defines activity operations.
type Service interface {
	Record(ctx context.Context, userID string, in Input) (*Entry, error)
	// List returns up to limit entries older than after (all when after is empty),
	// newest first.
	List(ctx context.Context, userID, after string, limit int) (Page, error)
	Count(ctx context.Context, userID string) (Counts, error)
}

// CategorizeError converts errors to audit-safe categories.
func CategorizeError(err error) string {
	switch {
	case errors.Is(err, ErrUnknownType):
		return "invalid_type"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	default:
		return "internal_error"
	}
}

// idGenerator issues monotonic ULIDs.
type idGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDGenerator() *idGenerator {
	return &idGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *idGenerator) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// validateID rejects anything that is not a ULID.
func validateID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
