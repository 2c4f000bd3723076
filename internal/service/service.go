package service

import (
	"context"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/upstream/realtimekit"
)

// UpstreamClient is the slice of the RealtimeKit client the services use.
type UpstreamClient interface {
	CreateMeeting(ctx context.Context, req realtimekit.CreateMeetingRequest) (*realtimekit.Result, realtimekit.Meeting, error)
	AddParticipant(ctx context.Context, meetingID string, req realtimekit.AddParticipantRequest) (*realtimekit.Result, realtimekit.Participant, error)
	GetMeeting(ctx context.Context, meetingID string) (*realtimekit.Result, error)
}

type MeetingInteractor interface {
	Create(ctx context.Context, in CreateMeetingInput) (*CreateMeetingResult, error)
	Join(ctx context.Context, in JoinMeetingInput) (*JoinMeetingResult, error)
	Get(ctx context.Context, meetingID string) (*GetMeetingResult, error)
}

type WebhookInteractor interface {
	Process(ctx context.Context, event domain.Event) error
}

type AnalyticsInteractor interface {
	Track(ctx context.Context, event AnalyticsEvent)
}

type CreateMeetingInput struct {
	Title           string
	PreferredRegion string
	ClientIP        string
}

type CreateMeetingResult struct {
	// Body is the verbatim upstream response, passed through to the caller.
	Body    map[string]any
	Meeting realtimekit.Meeting
}

type JoinMeetingInput struct {
	MeetingID           string
	Name                string
	PresetName          string
	CustomParticipantID string
	Picture             string
}

type JoinMeetingResult struct {
	Body        map[string]any
	Participant realtimekit.Participant
	// ParticipantCount is nil when the meeting is not in the local store.
	ParticipantCount *int
}

type GetMeetingResult struct {
	Cached bool
	// Record is set on a cache hit.
	Record *domain.MeetingRecord
	// Body is the upstream response on a cache miss.
	Body map[string]any
}

type AnalyticsEvent struct {
	Event    string
	ClientIP string
	Data     map[string]any
}
