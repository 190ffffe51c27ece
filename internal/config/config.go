package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/utils"
)

// ErrInvalidConfig is returned by Validate when a setting makes the server unusable
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application. It is built once at
// start-up and treated as read-only afterwards.
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Client IP resolution. Forwarding headers are only honored from
	// TRUSTED_PROXIES; TRUSTED_PLATFORM names a CDN whose header is trusted.
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	TrustedPlatform string   `env:"TRUSTED_PLATFORM"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Turnstile Configuration
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey   string `env:"TURNSTILE_SITE_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`

	// Notification Configuration
	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`

	// Email Configuration
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL"`

	// Site profile (organization details used in notifications and emails)
	SiteProfilePath string `env:"SITE_PROFILE"`

	// Outbound HTTP
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try the environment specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate performs the start-up check. Only problems that make every
// submission fail are fatal; the rest are returned as warnings.
func (c *Config) Validate() (warnings []string, err error) {
	var problems []string

	if strings.TrimSpace(c.TurnstileSecretKey) == "" {
		problems = append(problems, "TURNSTILE_SECRET_KEY is required")
	}
	if _, perr := url.ParseRequestURI(c.TurnstileVerifyURL); perr != nil {
		problems = append(problems, "TURNSTILE_VERIFY_URL is not a valid URL")
	}
	if c.Port == "" {
		problems = append(problems, "API_PORT must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}
	if c.HTTPClientTimeout <= 0 {
		problems = append(problems, "HTTP_CLIENT_TIMEOUT must be positive")
	}
	for _, origin := range c.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "*" && !utils.IsValidOrigin(origin) {
			problems = append(problems, fmt.Sprintf("ALLOWED_ORIGINS entry %q is not a valid origin", origin))
		}
	}
	for _, proxy := range c.TrustedProxies {
		if !validProxy(strings.TrimSpace(proxy)) {
			problems = append(problems, fmt.Sprintf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
		}
	}
	if _, ok := trustedPlatforms[strings.ToLower(c.TrustedPlatform)]; !ok {
		problems = append(problems, fmt.Sprintf("TRUSTED_PLATFORM %q is not supported", c.TrustedPlatform))
	}
	if err := c.LogConfig().Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if c.DiscordWebhookURL == "" {
		warnings = append(warnings, "DISCORD_WEBHOOK_URL is not set, contact submissions will be rejected")
	} else if _, perr := url.ParseRequestURI(c.DiscordWebhookURL); perr != nil {
		problems = append(problems, "DISCORD_WEBHOOK_URL is not a valid URL")
	}
	if c.ResendBaseURL != "" {
		if _, perr := url.ParseRequestURI(c.ResendBaseURL); perr != nil {
			problems = append(problems, "RESEND_BASE_URL is not a valid URL")
		}
	}
	if c.ResendAPIKey == "" {
		warnings = append(warnings, "RESEND_API_KEY is not set, confirmation emails will not be sent")
	}
	if c.TurnstileSiteKey == "" {
		warnings = append(warnings, "TURNSTILE_SITE_KEY is not set, the challenge widget cannot render")
	}

	if len(problems) > 0 {
		return warnings, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return warnings, nil
}

// trustedPlatforms maps TRUSTED_PLATFORM values to the header gin trusts
var trustedPlatforms = map[string]string{
	"":                  "",
	"cloudflare":        gin.PlatformCloudflare,
	"google-app-engine": gin.PlatformGoogleAppEngine,
	"fly-io":            gin.PlatformFlyIO,
}

// PlatformHeader returns the client IP header of the configured platform,
// or "" when none is configured.
func (c *Config) PlatformHeader() string {
	return trustedPlatforms[strings.ToLower(c.TrustedPlatform)]
}

// TrustedProxyList returns the trimmed TRUSTED_PROXIES entries
func (c *Config) TrustedProxyList() []string {
	var out []string
	for _, p := range c.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validProxy(p string) bool {
	if net.ParseIP(p) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(p)
	return err == nil
}

// LogConfig derives the logger settings
func (c *Config) LogConfig() *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = strings.ToLower(c.LogLevel)
	lc.LogRequests = c.LogRequests
	if c.LogFile != "" {
		lc.File = c.LogFile
	} else if c.IsProduction() {
		lc.File = "/app/logs/api.log"
	}
	return lc
}
