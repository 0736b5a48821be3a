package mailcloud

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/lattiq/mailcloud/internal/core"
	"github.com/lattiq/mailcloud/internal/transport"
)

// Type aliases to re-export core types for the public API.
type (
	Credentials  = core.Credentials
	EmailAddress = core.EmailAddress
	Delivery     = core.Delivery
	Bounce       = core.Bounce
	Statistic    = core.Statistic
	Auditlog     = core.Auditlog
	AuditlogKind = core.AuditlogKind
	Unsubscribe  = core.Unsubscribe
)

// Audit log kinds.
const (
	AuditlogLogin     = core.AuditlogLogin
	AuditlogOperation = core.AuditlogOperation
)

// Record and address constructors.
var (
	NewEmailAddress = core.NewEmailAddress
	NewDelivery     = core.NewDelivery
	NewBounce       = core.NewBounce
	NewStatistic    = core.NewStatistic
	NewAuditlog     = core.NewAuditlog
	NewUnsubscribe  = core.NewUnsubscribe
)

const tracerName = "github.com/lattiq/mailcloud"

// Client talks to the Customers Mail Cloud API with one credential pair.
// All methods are safe for concurrent use.
type Client struct {
	config      Config
	credentials Credentials
	transport   transport.Poster
	rateLimiter *RateLimiter
	logger      *slog.Logger
	logCloser   io.Closer
	tracer      trace.Tracer
	mu          sync.RWMutex
	closed      bool
}

// New creates a client for the given API user and key.
// The client should be closed when no longer needed to release resources.
func New(apiUser, apiKey string, opts ...Option) (*Client, error) {
	credentials, err := core.NewCredentials(apiUser, apiKey)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	logger, logCloser, err := newLogger(config.Monitoring.Logging)
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:      config,
		credentials: credentials,
		logger:      logger,
		logCloser:   logCloser,
		transport: transport.NewHTTP(transport.Config{
			Timeout:            config.Transport.Timeout,
			InsecureSkipVerify: !config.Transport.VerifySSL,
			MaxConnsPerHost:    config.Transport.MaxConnsPerHost,
			IdleConnTimeout:    config.Transport.IdleConnTimeout,
			UserAgent:          GetVersionInfo().UserAgent(),
			HTTPClient:         config.Transport.HTTPClient,
			Logger:             logger,
			LogResponseBody:    config.Monitoring.Logging.IncludeRequestResponse,
		}),
	}

	if config.Monitoring.Tracing.Enabled {
		client.tracer = otel.Tracer(tracerName)
	} else {
		client.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	if config.RateLimit.Enabled {
		client.rateLimiter = NewRateLimiter(config.RateLimit)
	}

	logger.Debug("mailcloud client created",
		"api_user", credentials.User(),
		"base_url", config.Transport.BaseURL,
		"sub_domain", config.SubDomain,
	)

	return client, nil
}

// Credentials returns the credential pair the client was created with.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close marks the client closed and releases the log file, if any.
// Further calls return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.logCloser != nil {
		if err := c.logCloser.Close(); err != nil {
			return fmt.Errorf("failed to close log output: %w", err)
		}
	}
	return nil
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// begin starts the span of a public operation and fails fast on a closed
// client.
func (c *Client) begin(ctx context.Context, op string) (context.Context, trace.Span, error) {
	ctx, span := c.tracer.Start(ctx, "mailcloud.Client."+op)
	if err := c.checkOpen(); err != nil {
		return ctx, span, fail(span, err, err.Error())
	}
	return ctx, span, nil
}

// fail records err on span and returns it.
func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}

// auth is the credential pair as it appears in every request body.
type auth struct {
	APIUser string `json:"api_user"`
	APIKey  string `json:"api_key"`
}

func (c *Client) auth() auth {
	return auth{APIUser: c.credentials.User(), APIKey: c.credentials.Key()}
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.config.Transport.BaseURL, "/") + path
}

func (c *Client) sendURL(subDomain string) string {
	return strings.ReplaceAll(c.config.Transport.SendEndpoint, subDomainPlaceholder, subDomain)
}
