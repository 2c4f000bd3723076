package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMustLoadPath(t *testing.T) {
	t.Run("reads the yaml file and fills defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
env: prod
tls:
  cert_file: /etc/webinar/tls/cert.pem
  key_file: /etc/webinar/tls/key.pem
rate_limit:
  create_limit: 10
  join_limit: 30
  global_limit: 100
redis:
  addr: localhost:6379
`), 0o600))

		cfg := MustLoadPath(path)
		require.Equal(t, "prod", cfg.Env)
		require.Equal(t, ":3001", cfg.HTTP.Address)
		require.Equal(t, "/etc/webinar/tls/cert.pem", cfg.TLS.CertFile)
		require.Equal(t, int64(10), cfg.RateLimit.CreateLimit)
		require.Equal(t, 15*time.Minute, cfg.RateLimit.CreateWindow)
		require.Equal(t, int64(30), cfg.RateLimit.JoinLimit)
		require.Equal(t, time.Minute, cfg.RateLimit.JoinWindow)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.NotEmpty(t, cfg.CORS.AllowedOrigins)
		require.Equal(t, "https://rtk.realtime.cloudflare.com/v2", cfg.Upstream.BaseURL)
	})

	t.Run("panics when the file is missing", func(t *testing.T) {
		require.Panics(t, func() {
			MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
		})
	})
}
