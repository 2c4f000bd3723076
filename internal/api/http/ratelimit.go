package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"

	"github.com/appifylab/webinar-platform/internal/metrics"
)

// newRateLimiter builds a fixed-window per-client-IP limiter middleware.
// The window state lives in the supplied store and resets with it.
func newRateLimiter(store limiter.Store, limit int64, window time.Duration, name, message string) gin.HandlerFunc {
	instance := limiter.New(store, limiter.Rate{Period: window, Limit: limit})

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(ctx *gin.Context) {
			metrics.RateLimited.WithLabelValues(name).Inc()
			writeError(ctx, http.StatusTooManyRequests, message, codeRateLimited)
		}),
		mgin.WithErrorHandler(func(ctx *gin.Context, err error) {
			writeError(ctx, http.StatusInternalServerError, "Internal server error", codeInternalError)
		}),
	)
}
