package mailcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lattiq/mailcloud/internal/transport"
)

// post sends body to url and interprets the answer:
//
//   - a non-empty "errors" array becomes an *APIError whatever the status;
//   - otherwise a 4xx or 5xx becomes a client or server *TransportError;
//   - a request with no response becomes a network *TransportError.
//
// On success it returns the response and its body decoded as a JSON
// object, or a nil map when the body is not one.
func (c *Client) post(ctx context.Context, op, url string, body transport.Body) (*transport.Response, map[string]any, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	resp, err := c.transport.Post(ctx, url, body)
	if resp == nil {
		var netErr *transport.NetworkError
		if errors.As(err, &netErr) {
			return nil, nil, &TransportError{Kind: TransportNetwork, Op: op, Err: netErr}
		}
		return nil, nil, err
	}

	obj := decodeObject(resp.Body)
	if apiErr := apiErrorFrom(obj, resp.StatusCode); apiErr != nil {
		c.logger.DebugContext(ctx, "mailcloud api error",
			"op", op,
			"status", resp.StatusCode,
			"codes", apiErr.Codes(),
		)
		return resp, obj, apiErr
	}

	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		kind := TransportClient
		if statusErr.IsServer() {
			kind = TransportServer
		}
		return resp, obj, &TransportError{Kind: kind, StatusCode: statusErr.StatusCode, Op: op, Err: statusErr}
	}
	if err != nil {
		return resp, obj, err
	}
	return resp, obj, nil
}

// postJSON is post for operations that need a JSON object back.
func (c *Client) postJSON(ctx context.Context, op, url string, body transport.Body) (map[string]any, error) {
	resp, obj, err := c.post(ctx, op, url, body)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, unexpected(resp.Body)
	}
	return obj, nil
}

func unexpected(body []byte) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedResponse, body)
}

// decodeObject returns body as a JSON object, or nil. Numbers are kept as
// json.Number so record fields see their exact text.
func decodeObject(body []byte) map[string]any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil
	}
	return obj
}

func apiErrorFrom(obj map[string]any, status int) *APIError {
	if obj == nil {
		return nil
	}
	list, ok := obj["errors"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}

	entries := make([]ErrorEntry, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case map[string]any:
			entries = append(entries, ErrorEntry{
				Code:    text(v["code"]),
				Field:   text(v["field"]),
				Message: text(v["message"]),
			})
		default:
			entries = append(entries, ErrorEntry{Message: text(v)})
		}
	}
	return &APIError{Errors: entries, RawResponse: obj, StatusCode: status}
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// decodeList maps the array under key through decode. A missing or null
// key yields an empty list.
func decodeList[T any](obj map[string]any, key string, decode func(map[string]any) (*T, error)) ([]*T, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return []*T{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an array", ErrUnexpectedResponse, key)
	}

	out := make([]*T, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrUnexpectedResponse, key, i)
		}
		rec, err := decode(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
