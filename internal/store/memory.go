package store

import (
	"context"
	"sync"

	"github.com/appifylab/webinar-platform/internal/domain"
)

// InMemoryMeetingStore keeps records in a process-local map. State is lost
// on restart and never expires.
type InMemoryMeetingStore struct {
	mu       sync.RWMutex
	meetings map[string]*domain.MeetingRecord
}

func NewInMemoryMeetingStore() *InMemoryMeetingStore {
	return &InMemoryMeetingStore{
		meetings: make(map[string]*domain.MeetingRecord),
	}
}

func (s *InMemoryMeetingStore) Put(ctx context.Context, rec *domain.MeetingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.meetings[rec.ID] = &cp
	return nil
}

func (s *InMemoryMeetingStore) Get(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.meetings[id]
	if !ok {
		return nil, ErrMeetingNotFound
	}

	cp := *rec
	return &cp, nil
}

func (s *InMemoryMeetingStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[id]; !ok {
		return ErrMeetingNotFound
	}

	delete(s.meetings, id)
	return nil
}

func (s *InMemoryMeetingStore) Increment(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.meetings[id]
	if !ok {
		return 0, ErrMeetingNotFound
	}

	rec.ParticipantsCount++
	return rec.ParticipantsCount, nil
}

func (s *InMemoryMeetingStore) Decrement(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.meetings[id]
	if !ok {
		return 0, ErrMeetingNotFound
	}

	if rec.ParticipantsCount > 0 {
		rec.ParticipantsCount--
	}
	return rec.ParticipantsCount, nil
}

func (s *InMemoryMeetingStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.meetings), nil
}
