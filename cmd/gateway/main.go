package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	httpapi "github.com/appifylab/webinar-platform/internal/api/http"
	"github.com/appifylab/webinar-platform/internal/config"
	"github.com/appifylab/webinar-platform/internal/service"
	"github.com/appifylab/webinar-platform/internal/store"
	"github.com/appifylab/webinar-platform/internal/upstream/realtimekit"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	// The gateway only serves HTTPS; refusing to start without the key
	// pair beats silently serving plaintext.
	for _, f := range []string{cfg.TLS.CertFile, cfg.TLS.KeyFile} {
		if _, err := os.Stat(f); err != nil {
			log.Error("TLS file missing", slog.String("path", f), slog.Any("error", err))
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect redis", slog.Any("error", err))
			os.Exit(1)
		}
	}

	var meetings store.MeetingStore
	if redisClient != nil {
		meetings = store.NewRedisMeetingStore(redisClient)
	} else {
		meetings = store.NewInMemoryMeetingStore()
	}

	upstream := realtimekit.NewClient(realtimekit.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		AuthHeader: cfg.Upstream.AuthHeader,
	})

	meetingService := service.NewMeetingService(upstream, meetings, log)
	webhookService := service.NewWebhookService(meetings, log)
	analyticsService := service.NewAnalyticsService(log)

	controllers := httpapi.Controllers{
		Meetings: httpapi.NewMeetingController(meetingService, log),
		Webhooks: httpapi.NewWebhookController(webhookService, cfg.Webhook.Secret, log),
		System:   httpapi.NewSystemController(analyticsService, meetings, log),
	}

	router := httpapi.SetupRouter(controllers, httpapi.RouterOptions{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		RateLimit:       cfg.RateLimit,
		NewLimiterStore: limiterStoreFactory(redisClient, log),
		Log:             log,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	go func() {
		log.Info("starting gateway",
			slog.String("addr", cfg.HTTP.Address),
			slog.String("env", cfg.Env),
			slog.String("upstream", cfg.Upstream.BaseURL),
		)
		if err := srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("https server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server closed")
}

func limiterStoreFactory(redisClient *redis.Client, log *slog.Logger) func(prefix string) limiter.Store {
	return func(prefix string) limiter.Store {
		if redisClient != nil {
			s, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: prefix})
			if err != nil {
				log.Error("failed to create redis limiter store", slog.Any("error", err))
				os.Exit(1)
			}
			return s
		}
		return memorystore.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: time.Minute,
		})
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
