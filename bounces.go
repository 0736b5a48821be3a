package mailcloud

import (
	"context"

	"github.com/lattiq/mailcloud/internal/core"
)

// Bounces lists bounced messages.
func (c *Client) Bounces(ctx context.Context, params BounceListParams) ([]*Bounce, error) {
	op := operation{name: "Bounces", action: "get bounces", path: bouncesListPath}
	payload := struct {
		auth
		BounceListParams
	}{c.auth(), params}
	return listRecords(ctx, c, op, "bounces", params, payload, core.NewBounce)
}
