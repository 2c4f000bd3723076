package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/metrics"
	"github.com/appifylab/webinar-platform/internal/store"
)

// WebhookService applies upstream lifecycle events to the local meeting
// store. Events for unknown meetings are logged and dropped; there is no
// retry or dead-letter handling.
type WebhookService struct {
	store store.MeetingStore
	log   *slog.Logger
}

func NewWebhookService(meetings store.MeetingStore, log *slog.Logger) *WebhookService {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookService{store: meetings, log: log}
}

func (s *WebhookService) Process(ctx context.Context, event domain.Event) error {
	metrics.WebhookEvents.WithLabelValues(event.Event).Inc()

	switch event.Event {
	case domain.EventMeetingStarted:
		s.log.Info("meeting started", "meeting_id", event.MeetingID)

	case domain.EventMeetingEnded:
		s.log.Info("meeting ended", "meeting_id", event.MeetingID)
		if err := s.store.Delete(ctx, event.MeetingID); err != nil && !errors.Is(err, store.ErrMeetingNotFound) {
			return err
		}
		if n, err := s.store.Count(ctx); err == nil {
			metrics.CachedMeetings.Set(float64(n))
		}

	case domain.EventParticipantJoined:
		s.log.Info("participant joined",
			"meeting_id", event.MeetingID,
			"participant", event.ParticipantName,
		)

	case domain.EventParticipantLeft:
		s.log.Info("participant left",
			"meeting_id", event.MeetingID,
			"participant", event.ParticipantName,
		)
		if _, err := s.store.Decrement(ctx, event.MeetingID); err != nil && !errors.Is(err, store.ErrMeetingNotFound) {
			return err
		}

	case domain.EventRecordingStarted:
		s.log.Info("recording started", "meeting_id", event.MeetingID)

	case domain.EventRecordingStopped:
		s.log.Info("recording stopped", "meeting_id", event.MeetingID)

	default:
		s.log.Debug("ignoring unknown webhook event", "event", event.Event)
	}

	return nil
}
