package transport

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = 30 * time.Second

// Config configures the HTTP transport.
type Config struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	MaxConnsPerHost    int
	IdleConnTimeout    time.Duration
	UserAgent          string

	// HTTPClient replaces the client built from the fields above.
	HTTPClient *http.Client

	// Logger receives one debug record per request. Nil disables logging.
	Logger *slog.Logger

	// LogResponseBody adds the response body to the debug record.
	LogResponseBody bool
}

// HTTP is the net/http implementation of Poster.
type HTTP struct {
	client          *http.Client
	userAgent       string
	logger          *slog.Logger
	logResponseBody bool
}

// NewHTTP creates a transport from cfg.
func NewHTTP(cfg Config) *HTTP {
	client := cfg.HTTPClient
	if client == nil {
		client = newHTTPClient(cfg)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HTTP{
		client:          client,
		userAgent:       cfg.UserAgent,
		logger:          logger,
		logResponseBody: cfg.LogResponseBody,
	}
}

func newHTTPClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	// Only for development endpoints with self-signed certificates.
	if cfg.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     tlsConfig,
			MaxConnsPerHost:     cfg.MaxConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// Client returns the underlying *http.Client.
func (h *HTTP) Client() *http.Client {
	return h.client
}

// Post implements Poster.
func (h *HTTP) Post(ctx context.Context, url string, body Body) (*Response, error) {
	contentType, payload, err := body.Encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, &NetworkError{Method: http.MethodPost, URL: url, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentTypeJSON)
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.DebugContext(ctx, "mailcloud request failed",
			"method", http.MethodPost,
			"url", url,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, &NetworkError{Method: http.MethodPost, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: http.MethodPost, URL: url, Err: err}
	}

	attrs := []any{
		"method", http.MethodPost,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"bytes", len(data),
	}
	if h.logResponseBody {
		attrs = append(attrs, "body", string(data))
	}
	h.logger.DebugContext(ctx, "mailcloud request", attrs...)

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}
	if resp.StatusCode >= 400 {
		return out, &StatusError{
			Method:     http.MethodPost,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       data,
		}
	}
	return out, nil
}
