package service

import (
	"context"
	"log/slog"
)

// AnalyticsService records client-reported events. Fire and forget: the
// events only exist in structured logs.
type AnalyticsService struct {
	log *slog.Logger
}

func NewAnalyticsService(log *slog.Logger) *AnalyticsService {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsService{log: log}
}

func (s *AnalyticsService) Track(_ context.Context, event AnalyticsEvent) {
	attrs := []any{
		"event", event.Event,
		"ip", event.ClientIP,
	}
	for k, v := range event.Data {
		attrs = append(attrs, k, v)
	}
	s.log.Info("analytics event", attrs...)
}
