package mailcloud

import (
	"context"
)

// API is the operation surface of Client. Code that only needs to call
// the API can depend on this interface and be tested with a fake.
type API interface {
	// TransactionEmail returns a new email bound to the client.
	TransactionEmail() *TransactionEmail

	Deliveries(ctx context.Context, params DeliveryListParams) ([]*Delivery, error)
	DeliveriesByMessageID(ctx context.Context, params DeliveryListParams, messageID string) ([]*Delivery, error)
	DeliveriesByAddress(ctx context.Context, params DeliveryListParams, direction, email string) ([]*Delivery, error)
	DeliveriesByStatus(ctx context.Context, params DeliveryListParams, status string) ([]*Delivery, error)

	Bounces(ctx context.Context, params BounceListParams) ([]*Bounce, error)
	Statistics(ctx context.Context, params StatisticListParams) ([]*Statistic, error)

	Auditlogs(ctx context.Context, params AuditlogListParams) ([]*Auditlog, error)
	AuditlogsDownload(ctx context.Context, params AuditlogDownloadParams) ([]byte, error)

	UnsubscribesDownload(ctx context.Context, params UnsubscribeDownloadParams) ([]byte, error)
	UnsubscribesCancel(ctx context.Context, params UnsubscribeCancelParams) (map[string]any, error)

	// Close closes the client. After calling Close, every call fails with
	// ErrClientClosed.
	Close() error
}

var _ API = (*Client)(nil)
