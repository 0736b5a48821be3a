package mailcloud

import (
	"context"

	"github.com/lattiq/mailcloud/internal/core"
)

// Address directions for DeliveriesByAddress.
const (
	DirectionTo   = "to"
	DirectionFrom = "from"
)

const fullMatch = "full"

// Deliveries lists the delivery log of params.Date.
func (c *Client) Deliveries(ctx context.Context, params DeliveryListParams) ([]*Delivery, error) {
	op := operation{name: "Deliveries", action: "get deliveries", path: deliveriesListPath}
	payload := struct {
		auth
		DeliveryListParams
	}{c.auth(), params}
	return listRecords(ctx, c, op, "deliveries", params, payload, core.NewDelivery)
}

// DeliveriesByMessageID finds deliveries whose api_data equals messageID.
// params supplies server_composition, date and any further filters.
func (c *Client) DeliveriesByMessageID(ctx context.Context, params DeliveryListParams, messageID string) ([]*Delivery, error) {
	params.APIData = messageID
	params.SearchOption = map[string]string{"api_data": fullMatch}
	return c.Deliveries(ctx, params)
}

// DeliveriesByAddress finds deliveries sent to or from email. direction
// is DirectionTo or DirectionFrom.
func (c *Client) DeliveriesByAddress(ctx context.Context, params DeliveryListParams, direction, email string) ([]*Delivery, error) {
	switch direction {
	case DirectionTo:
		params.To = email
	case DirectionFrom:
		params.From = email
	default:
		return nil, core.NewValidationError("type", `type must be either "from" or "to"`)
	}
	params.SearchOption = map[string]string{direction: fullMatch}
	return c.Deliveries(ctx, params)
}

// DeliveriesByStatus finds deliveries with the given status.
func (c *Client) DeliveriesByStatus(ctx context.Context, params DeliveryListParams, status string) ([]*Delivery, error) {
	params.Status = status
	return c.Deliveries(ctx, params)
}
