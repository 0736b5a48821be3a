package mailcloud

import (
	"context"

	"github.com/lattiq/mailcloud/internal/core"
)

// Statistics returns daily sending counters for one month. With
// params.Total set the API returns the monthly total instead.
func (c *Client) Statistics(ctx context.Context, params StatisticListParams) ([]*Statistic, error) {
	op := operation{name: "Statistics", action: "get statistics", path: statisticsListPath}
	payload := struct {
		auth
		StatisticListParams
	}{c.auth(), params}
	return listRecords(ctx, c, op, "statistics", params, payload, core.NewStatistic)
}
