package mailcloud

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Transport.Timeout = timeout
	}
}

// WithVerifySSL enables or disables TLS certificate verification.
func WithVerifySSL(verify bool) Option {
	return func(c *Config) {
		c.Transport.VerifySSL = verify
	}
}

// WithBaseURL points the resource endpoints at another host.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.Transport.BaseURL = baseURL
	}
}

// WithSendEndpoint sets the send URL template. The template may contain
// {subdomain}.
func WithSendEndpoint(template string) Option {
	return func(c *Config) {
		c.Transport.SendEndpoint = template
	}
}

// WithHTTPClient uses a caller-supplied HTTP client. Timeout and TLS
// options are then the caller's responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.Transport.HTTPClient = client
	}
}

// WithMaxConnsPerHost sets the maximum number of connections per host.
func WithMaxConnsPerHost(maxConns int) Option {
	return func(c *Config) {
		c.Transport.MaxConnsPerHost = maxConns
	}
}

// WithSubDomain sets the default sub-domain of new transaction emails.
func WithSubDomain(subDomain string) Option {
	return func(c *Config) {
		c.SubDomain = subDomain
	}
}

// WithRateLimit configures client-side rate limiting.
func WithRateLimit(rate int, period time.Duration, burst int) Option {
	return func(c *Config) {
		c.RateLimit.Enabled = true
		c.RateLimit.Rate = rate
		c.RateLimit.Period = period
		c.RateLimit.Burst = burst
	}
}

// WithLogger sends client logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Monitoring.Logging.Logger = logger
	}
}

// WithLogging configures logging.
func WithLogging(level, format, output string) Option {
	return func(c *Config) {
		c.Monitoring.Logging.Level = level
		c.Monitoring.Logging.Format = format
		c.Monitoring.Logging.Output = output
	}
}

// WithRequestResponseLogging adds response bodies to request logs.
func WithRequestResponseLogging(enabled bool) Option {
	return func(c *Config) {
		c.Monitoring.Logging.IncludeRequestResponse = enabled
	}
}

// WithTracing enables OpenTelemetry spans.
func WithTracing() Option {
	return func(c *Config) {
		c.Monitoring.Tracing.Enabled = true
	}
}

// WithoutTracing disables OpenTelemetry spans.
func WithoutTracing() Option {
	return func(c *Config) {
		c.Monitoring.Tracing.Enabled = false
	}
}
