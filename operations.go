package mailcloud

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lattiq/mailcloud/internal/transport"
)

// Resource endpoints, relative to the base URL.
const (
	deliveriesListPath       = "/transaction/v2/deliveries/list.json"
	bouncesListPath          = "/transaction/v2/bounces/list.json"
	statisticsListPath       = "/transaction/v2/statistics/list.json"
	auditlogsListPath        = "/transaction/v2/auditlogs/list.json"
	auditlogsDownloadPath    = "/transaction/v2/auditlogs/download.json"
	unsubscribesDownloadPath = "/transaction/v2/unsubscribes/download.json"
	unsubscribesCancelPath   = "/transaction/v2/unsubscribes/cancel.json"
)

type validator interface {
	Validate() error
}

// operation describes one list, download or cancel call.
type operation struct {
	name   string // span suffix, e.g. "Bounces"
	action string // used in network error text, e.g. "get bounces"
	path   string
}

// run validates params, posts payload and hands the decoded object to fn.
func (c *Client) run(ctx context.Context, op operation, params validator, payload any, fn func(ctx context.Context, obj map[string]any) error) error {
	ctx, span, err := c.begin(ctx, op.name)
	defer span.End()
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.String("mailcloud.endpoint", op.path))

	if err := params.Validate(); err != nil {
		return fail(span, err, "validation failed")
	}

	obj, err := c.postJSON(ctx, op.action, c.endpoint(op.path), transport.JSONBody(payload))
	if err != nil {
		return fail(span, err, "request failed")
	}
	if err := fn(ctx, obj); err != nil {
		return fail(span, err, "decode failed")
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// listRecords runs op and decodes the array under key.
func listRecords[T any](ctx context.Context, c *Client, op operation, key string, params validator, payload any, decode func(map[string]any) (*T, error)) ([]*T, error) {
	var records []*T
	err := c.run(ctx, op, params, payload, func(ctx context.Context, obj map[string]any) error {
		var err error
		records, err = decodeList(obj, key, decode)
		if err == nil {
			recordCount(ctx, len(records))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// download runs op and returns the response body unchanged.
func (c *Client) download(ctx context.Context, op operation, params validator, payload any) ([]byte, error) {
	ctx, span, err := c.begin(ctx, op.name)
	defer span.End()
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("mailcloud.endpoint", op.path))

	if err := params.Validate(); err != nil {
		return nil, fail(span, err, "validation failed")
	}

	resp, _, err := c.post(ctx, op.action, c.endpoint(op.path), transport.JSONBody(payload))
	if err != nil {
		return nil, fail(span, err, "request failed")
	}

	span.SetAttributes(attribute.Int("mailcloud.bytes", len(resp.Body)))
	span.SetStatus(codes.Ok, "")
	return resp.Body, nil
}

func recordCount(ctx context.Context, n int) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("mailcloud.records", n))
}
