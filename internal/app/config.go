package app

import (
	"net"
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const (
	defaultAddr       = "0.0.0.0:8080"
	defaultBackendURL = "http://localhost:8000"
)

// Config holds the complete application configuration, loadable from
// environment variables (KIOSK_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string        `default:"0.0.0.0:8080" usage:"Kiosk server listen address"`
	BackendURL     string        `default:"http://localhost:8000" usage:"Restaurant backend base URL (also VITE_BACKEND_URL or BACKEND_URL)" flag:"backend-url"`
	BackendTimeout time.Duration `default:"10s" usage:"Timeout of a single backend request" flag:"backend-timeout"`
	Session        SessionConfig
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	Graceful       GracefulConfig
}

// SessionConfig bounds ordering sessions.
type SessionConfig struct {
	TTL             time.Duration `default:"30m" usage:"Close sessions idle for longer than this"`
	MaxSessions     int           `default:"1000" usage:"Maximum concurrently open sessions" flag:"max-sessions"`
	SweepInterval   time.Duration `default:"1m" usage:"How often idle sessions are swept" flag:"sweep-interval"`
	CheckoutTimeout time.Duration `default:"30s" usage:"Upper bound of one order submission" flag:"checkout-timeout"`
	LoadTimeout     time.Duration `default:"30s" usage:"Upper bound of one menu load" flag:"load-timeout"`
}

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64 `default:"20" usage:"Sustained requests per second per client"`
	Burst int     `default:"40" usage:"Request burst per client"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "KIOSK",
		Files:     []string{"config.yaml", "/etc/kiosk/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults(os.Getenv)

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// applyPlatformDefaults maps variables set by the frontend build or the
// hosting platform. KIOSK_BACKEND_URL wins over VITE_BACKEND_URL, which wins
// over BACKEND_URL.
func (c *Config) applyPlatformDefaults(getenv func(string) string) {
	if c.BackendURL == defaultBackendURL && getenv("KIOSK_BACKEND_URL") == "" {
		for _, key := range []string{"VITE_BACKEND_URL", "BACKEND_URL"} {
			if v := getenv(key); v != "" {
				c.BackendURL = v
				break
			}
		}
	}
	if port := getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = net.JoinHostPort("0.0.0.0", port)
	}
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return errors.New("backend URL is required: set KIOSK_BACKEND_URL")
	}
	if c.Session.MaxSessions < 0 {
		return errors.Errorf("max sessions must not be negative, got %d", c.Session.MaxSessions)
	}
	return nil
}
