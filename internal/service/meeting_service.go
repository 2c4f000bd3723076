package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/metrics"
	"github.com/appifylab/webinar-platform/internal/store"
	"github.com/appifylab/webinar-platform/internal/upstream/realtimekit"
)

var (
	ErrTitleRequired    = errors.New("Meeting title is required and must be a non-empty string")
	ErrTitleTooLong     = errors.New("Meeting title must be less than 100 characters")
	ErrNameRequired     = errors.New("Participant name is required and must be a non-empty string")
	ErrNameTooLong      = errors.New("Participant name must be less than 50 characters")
	ErrInvalidPreset    = errors.New("Invalid preset. Must be either webinar_presenter or webinar_viewer")
	ErrInvalidMeetingID = errors.New("Invalid meeting ID format")
)

// ParticipantLimitError is returned when a join would push the cached
// counter past the configured maximum.
type ParticipantLimitError struct {
	Max int
}

func (e *ParticipantLimitError) Error() string {
	return fmt.Sprintf("meeting has reached maximum participant limit (%d)", e.Max)
}

const (
	defaultRegion      = "ap-south-1"
	maxTitleLength     = 100
	maxNameLength      = 50
	minMeetingIDLength = 10
)

type MeetingService struct {
	upstream UpstreamClient
	store    store.MeetingStore
	log      *slog.Logger
}

func NewMeetingService(upstream UpstreamClient, meetings store.MeetingStore, log *slog.Logger) *MeetingService {
	if log == nil {
		log = slog.Default()
	}
	return &MeetingService{
		upstream: upstream,
		store:    meetings,
		log:      log,
	}
}

func (s *MeetingService) Create(ctx context.Context, in CreateMeetingInput) (*CreateMeetingResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	region := in.PreferredRegion
	if region == "" {
		region = defaultRegion
	}

	start := time.Now()
	res, meeting, err := s.upstream.CreateMeeting(ctx, realtimekit.CreateMeetingRequest{
		Title:           title,
		PreferredRegion: region,
	})
	metrics.UpstreamLatency.WithLabelValues("create_meeting").Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error("meeting creation failed", "error", err)
		return nil, err
	}

	rec := &domain.MeetingRecord{
		ID:                meeting.ID,
		Title:             title,
		PreferredRegion:   region,
		CreatedAt:         time.Now().UTC(),
		CreatedByIP:       in.ClientIP,
		ParticipantsCount: 0,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		// The upstream meeting exists either way; a store failure only
		// costs us the local lookup.
		s.log.Warn("failed to cache meeting", "meeting_id", meeting.ID, "error", err)
	}
	s.updateCacheGauge(ctx)

	s.log.Info("meeting created",
		"meeting_id", meeting.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &CreateMeetingResult{Body: res.Body, Meeting: meeting}, nil
}

func (s *MeetingService) Join(ctx context.Context, in JoinMeetingInput) (*JoinMeetingResult, error) {
	if utf8.RuneCountInString(in.MeetingID) < minMeetingIDLength {
		return nil, ErrInvalidMeetingID
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(in.Name) > maxNameLength {
		return nil, ErrNameTooLong
	}
	if !domain.ValidPreset(in.PresetName) {
		return nil, ErrInvalidPreset
	}

	customID := in.CustomParticipantID
	if customID == "" {
		customID = fmt.Sprintf("participant_%d", time.Now().UnixMilli())
	}

	// Optimistically count the participant before the upstream call. This
	// is not atomic with the call itself; the counter can drift when the
	// process dies in between.
	var count *int
	rec, err := s.store.Get(ctx, in.MeetingID)
	if err == nil {
		n, incErr := s.store.Increment(ctx, in.MeetingID)
		if incErr == nil {
			count = &n
			if rec.MaxParticipants > 0 && n > rec.MaxParticipants {
				if _, decErr := s.store.Decrement(ctx, in.MeetingID); decErr != nil {
					s.log.Warn("failed to roll back participant count", "meeting_id", in.MeetingID, "error", decErr)
				}
				return nil, &ParticipantLimitError{Max: rec.MaxParticipants}
			}
		}
	}

	start := time.Now()
	res, participant, err := s.upstream.AddParticipant(ctx, in.MeetingID, realtimekit.AddParticipantRequest{
		Name:                name,
		PresetName:          in.PresetName,
		CustomParticipantID: customID,
		Picture:             in.Picture,
	})
	metrics.UpstreamLatency.WithLabelValues("add_participant").Observe(time.Since(start).Seconds())
	if err != nil {
		if count != nil {
			if _, decErr := s.store.Decrement(ctx, in.MeetingID); decErr != nil {
				s.log.Warn("failed to roll back participant count", "meeting_id", in.MeetingID, "error", decErr)
			}
		}
		s.log.Error("participant join failed", "meeting_id", in.MeetingID, "error", err)
		return nil, err
	}

	s.log.Info("participant joined",
		"meeting_id", in.MeetingID,
		"name", name,
		"preset", in.PresetName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &JoinMeetingResult{Body: res.Body, Participant: participant, ParticipantCount: count}, nil
}

func (s *MeetingService) Get(ctx context.Context, meetingID string) (*GetMeetingResult, error) {
	rec, err := s.store.Get(ctx, meetingID)
	if err == nil {
		return &GetMeetingResult{Cached: true, Record: rec}, nil
	}
	if !errors.Is(err, store.ErrMeetingNotFound) {
		return nil, err
	}

	start := time.Now()
	res, err := s.upstream.GetMeeting(ctx, meetingID)
	metrics.UpstreamLatency.WithLabelValues("get_meeting").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return &GetMeetingResult{Cached: false, Body: res.Body}, nil
}

func (s *MeetingService) updateCacheGauge(ctx context.Context) {
	if n, err := s.store.Count(ctx); err == nil {
		metrics.CachedMeetings.Set(float64(n))
	}
}
