package mailcloud

import (
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the host of the list, download and cancel endpoints.
	DefaultBaseURL = "https://api.smtps.jp"

	// DefaultSendEndpoint is the send URL template. {subdomain} is replaced
	// with the email's sub-domain.
	DefaultSendEndpoint = "https://{subdomain}.smtps.jp/api/v2/emails/send.json"

	// DefaultSubDomain selects the sandbox environment.
	DefaultSubDomain = "sandbox"

	subDomainPlaceholder = "{subdomain}"
)

var subDomainPattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)

// Config holds the complete client configuration.
type Config struct {
	// Transport contains HTTP settings.
	Transport TransportConfig

	// SubDomain is the default sub-domain for new transaction emails.
	SubDomain string

	// RateLimit contains client-side rate limiting configuration.
	RateLimit RateLimitConfig

	// Monitoring contains observability configuration.
	Monitoring MonitoringConfig
}

// TransportConfig contains HTTP settings.
type TransportConfig struct {
	// BaseURL is the scheme and host of the resource endpoints.
	BaseURL string

	// SendEndpoint is the send URL template containing {subdomain}.
	SendEndpoint string

	// Timeout is the maximum time to wait for a whole request.
	Timeout time.Duration

	// VerifySSL enables TLS certificate verification.
	VerifySSL bool

	// MaxConnsPerHost limits the number of connections per host.
	MaxConnsPerHost int

	// IdleConnTimeout is the maximum time an idle connection will remain open.
	IdleConnTimeout time.Duration

	// HTTPClient replaces the client built from the settings above.
	HTTPClient *http.Client
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	// Enabled indicates whether rate limiting is enabled.
	Enabled bool

	// Rate is the number of requests per period.
	Rate int

	// Period is the time period for the rate limit.
	Period time.Duration

	// Burst is the maximum number of requests that can be made immediately.
	Burst int
}

// MonitoringConfig contains observability configuration.
type MonitoringConfig struct {
	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig

	// Logging contains logging configuration.
	Logging LoggingConfig
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled creates spans through the global OpenTelemetry tracer provider.
	Enabled bool
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string

	// Format is the log format (json, text).
	Format string

	// Output is where to write logs (stdout, stderr, or file path).
	// Empty disables logging.
	Output string

	// IncludeRequestResponse adds response bodies to request logs.
	// Request bodies are never logged since they carry credentials.
	IncludeRequestResponse bool

	// Logger overrides Level, Format and Output.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			BaseURL:         DefaultBaseURL,
			SendEndpoint:    DefaultSendEndpoint,
			Timeout:         30 * time.Second,
			VerifySSL:       true,
			MaxConnsPerHost: 10,
			IdleConnTimeout: 90 * time.Second,
		},
		SubDomain: DefaultSubDomain,
		RateLimit: RateLimitConfig{
			Enabled: false,
			Rate:    100,
			Period:  time.Minute,
			Burst:   10,
		},
		Monitoring: MonitoringConfig{
			Tracing: TracingConfig{
				Enabled: true,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
		},
	}
}

// Validate checks if the configuration is valid and complete.
func (c *Config) Validate() error {
	if u, err := url.Parse(c.Transport.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{
			Field:   "transport.base_url",
			Message: "base URL must be an absolute URL: " + c.Transport.BaseURL,
		}
	}

	endpoint := strings.ReplaceAll(c.Transport.SendEndpoint, subDomainPlaceholder, DefaultSubDomain)
	if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{
			Field:   "transport.send_endpoint",
			Message: "send endpoint must be an absolute URL: " + c.Transport.SendEndpoint,
		}
	}

	if c.Transport.Timeout <= 0 {
		return &ValidationError{
			Field:   "transport.timeout",
			Message: "timeout must be greater than 0",
		}
	}

	if !subDomainPattern.MatchString(c.SubDomain) {
		return &ValidationError{
			Field:   "sub_domain",
			Message: "sub_domain must be a valid host label: " + c.SubDomain,
		}
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Rate <= 0 {
			return &ValidationError{
				Field:   "rate_limit.rate",
				Message: "rate must be greater than 0",
			}
		}
		if c.RateLimit.Period <= 0 {
			return &ValidationError{
				Field:   "rate_limit.period",
				Message: "period must be greater than 0",
			}
		}
	}

	logging := c.Monitoring.Logging
	if logging.Logger == nil && logging.Output != "" {
		if _, ok := parseLevel(logging.Level); !ok {
			return &ValidationError{
				Field:   "monitoring.logging.level",
				Message: "level must be one of debug, info, warn, error: " + logging.Level,
			}
		}
		if logging.Format != "json" && logging.Format != "text" {
			return &ValidationError{
				Field:   "monitoring.logging.format",
				Message: "format must be json or text: " + logging.Format,
			}
		}
	}

	return nil
}
