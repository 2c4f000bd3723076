package http

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/appifylab/webinar-platform/internal/service"
	"github.com/appifylab/webinar-platform/internal/store"
	"github.com/appifylab/webinar-platform/internal/version"
)

type SystemController struct {
	analytics service.AnalyticsInteractor
	meetings  store.MeetingStore
	startedAt time.Time
	log       *slog.Logger
}

func NewSystemController(analytics service.AnalyticsInteractor, meetings store.MeetingStore, log *slog.Logger) *SystemController {
	if log == nil {
		log = slog.Default()
	}
	return &SystemController{
		analytics: analytics,
		meetings:  meetings,
		startedAt: time.Now(),
		log:       log,
	}
}

func (c *SystemController) Health(ctx *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	cached, err := c.meetings.Count(ctx.Request.Context())
	if err != nil {
		c.log.Warn("failed to count cached meetings", "error", err)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version.Version,
		"uptime":    time.Since(c.startedAt).Seconds(),
		"memory": gin.H{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
			"num_gc":      mem.NumGC,
		},
		"cached_meetings": cached,
	})
}

func (c *SystemController) Analytics(ctx *gin.Context) {
	type analyticsRequest struct {
		Event string         `json:"event"`
		Data  map[string]any `json:"data"`
	}

	// fire and forget: a malformed body is still acknowledged
	var req analyticsRequest
	if err := ctx.ShouldBindJSON(&req); err == nil && req.Event != "" {
		c.analytics.Track(ctx.Request.Context(), service.AnalyticsEvent{
			Event:    req.Event,
			ClientIP: ctx.ClientIP(),
			Data:     req.Data,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
