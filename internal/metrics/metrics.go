package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webinar_http_requests_total",
		Help: "HTTP requests handled by the gateway, by route and status.",
	}, []string{"route", "status"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webinar_upstream_request_seconds",
		Help:    "Latency of calls to the RealtimeKit API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webinar_rate_limited_total",
		Help: "Requests rejected by a local rate-limit window.",
	}, []string{"limiter"})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webinar_webhook_events_total",
		Help: "Upstream lifecycle events received on the webhook endpoint.",
	}, []string{"event"})

	CachedMeetings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "webinar_cached_meetings",
		Help: "Meetings currently held in the local store.",
	})
)
