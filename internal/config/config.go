package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	TLS       TLSConfig       `yaml:"tls"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Webhook   WebhookConfig   `yaml:"webhook"`
}

type HTTPConfig struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
}

// TLSConfig points at the local key/cert pair. Both files must exist; the
// gateway refuses to start without them.
type TLSConfig struct {
	CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:"cert/cert.pem"`
	KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:"cert/key.pem"`
}

type UpstreamConfig struct {
	BaseURL string `yaml:"base_url" env:"CF_API_BASE" env-default:"https://rtk.realtime.cloudflare.com/v2"`
	// AuthHeader is the full Authorization header value for the upstream
	// account. The default is a demo credential; a real deployment must
	// externalize and rotate this.
	AuthHeader string `yaml:"auth_header" env:"CF_AUTH_HEADER" env-default:"Basic NGQzOGNlZGQtZWRmMi00OTc3LThlYWMtYjczM2NmYjY5OGIwOjY2ZjFlY2EzMTUyMmRiNzBiNmQ0"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

type RateLimitConfig struct {
	CreateLimit  int64         `yaml:"create_limit" env-default:"10"`
	CreateWindow time.Duration `yaml:"create_window" env-default:"15m"`
	JoinLimit    int64         `yaml:"join_limit" env-default:"30"`
	JoinWindow   time.Duration `yaml:"join_window" env-default:"1m"`
	GlobalLimit  int64         `yaml:"global_limit" env-default:"100"`
	GlobalWindow time.Duration `yaml:"global_window" env-default:"15m"`
}

// RedisConfig is optional. When Addr is empty the gateway keeps all state
// in process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// WebhookConfig enables HMAC verification of webhook payloads when a
// secret is set. No verification happens otherwise.
type WebhookConfig struct {
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.setDefaults()

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":3001"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://localhost:5173",
			"https://localhost:5173",
		}
	}
}
