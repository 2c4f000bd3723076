package store

import (
	"context"
	"errors"

	"github.com/appifylab/webinar-platform/internal/domain"
)

var ErrMeetingNotFound = errors.New("meeting not found in store")

// MeetingStore holds the gateway's per-meeting metadata. Implementations
// are swappable behind this interface so the request handlers never touch
// the backing structure directly.
type MeetingStore interface {
	Put(ctx context.Context, rec *domain.MeetingRecord) error
	Get(ctx context.Context, id string) (*domain.MeetingRecord, error)
	Delete(ctx context.Context, id string) error
	// Increment adds one to the participant counter and returns the new
	// value. ErrMeetingNotFound is returned when the meeting is unknown.
	Increment(ctx context.Context, id string) (int, error)
	// Decrement subtracts one from the participant counter, flooring at
	// zero, and returns the new value.
	Decrement(ctx context.Context, id string) (int, error)
	// Count returns the number of stored meetings.
	Count(ctx context.Context) (int, error)
}
