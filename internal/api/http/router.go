package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"

	"github.com/appifylab/webinar-platform/internal/config"
)

// contentSecurityPolicy mirrors the policy served to the webinar SPA: the
// SDK loads from the Cloudflare CDN and media flows over the RealtimeKit
// endpoints.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https:; " +
	"connect-src 'self' https://rtk.realtime.cloudflare.com wss://rtk.realtime.cloudflare.com; " +
	"media-src 'self' blob:; " +
	"object-src 'none'"

const maxBodyBytes = 10 << 20 // 10 MiB, same cap as the JSON body parser limit

type Controllers struct {
	Meetings *MeetingController
	Webhooks *WebhookController
	System   *SystemController
}

type RouterOptions struct {
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig
	// NewLimiterStore returns a counter store for one limiter; each route
	// class gets its own prefix so the windows stay independent.
	NewLimiterStore func(prefix string) limiter.Store
	Log             *slog.Logger
}

func SetupRouter(controllers Controllers, opts RouterOptions) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(ctx *gin.Context, _ any) {
		writeError(ctx, http.StatusInternalServerError, "Internal server error", codeInternalError)
	}))
	router.Use(secure.New(secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: contentSecurityPolicy,
	}))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = opts.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.Use(bodySizeLimit(maxBodyBytes))

	rl := opts.RateLimit
	router.Use(newRateLimiter(opts.NewLimiterStore("rl-global"), rl.GlobalLimit, rl.GlobalWindow,
		"global", "Too many requests from this IP, please try again after 15 minutes."))

	createLimiter := newRateLimiter(opts.NewLimiterStore("rl-create"), rl.CreateLimit, rl.CreateWindow,
		"create", "Too many meetings created from this IP, please try again after 15 minutes.")
	joinLimiter := newRateLimiter(opts.NewLimiterStore("rl-join"), rl.JoinLimit, rl.JoinWindow,
		"join", "Too many join attempts from this IP, please try again after 1 minute.")

	api := router.Group("/api")
	api.POST("/create-meeting", createLimiter, controllers.Meetings.CreateMeeting)
	api.POST("/meetings/:meetingId/participants", joinLimiter, controllers.Meetings.JoinParticipant)
	api.GET("/meetings/:meetingId", controllers.Meetings.GetMeeting)
	api.GET("/health", controllers.System.Health)
	api.POST("/analytics", controllers.System.Analytics)
	api.POST("/webhooks/cloudflare", controllers.Webhooks.HandleCloudflare)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(ctx *gin.Context) {
		writeError(ctx, http.StatusNotFound, "Endpoint not found", codeNotFound)
	})

	return router
}
