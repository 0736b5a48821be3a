package mailcloud

import (
	"context"

	"github.com/lattiq/mailcloud/internal/core"
)

// Auditlogs lists login and operation logs. Login entries come first,
// followed by operation entries; each carries its Kind.
func (c *Client) Auditlogs(ctx context.Context, params AuditlogListParams) ([]*Auditlog, error) {
	op := operation{name: "Auditlogs", action: "get auditlogs", path: auditlogsListPath}
	payload := struct {
		auth
		AuditlogListParams
	}{c.auth(), params}

	var logs []*Auditlog
	err := c.run(ctx, op, params, payload, func(ctx context.Context, obj map[string]any) error {
		logins, err := decodeList(obj, "loginlogs", auditlogOf(core.AuditlogLogin))
		if err != nil {
			return err
		}
		operations, err := decodeList(obj, "operationlogs", auditlogOf(core.AuditlogOperation))
		if err != nil {
			return err
		}
		logs = append(logins, operations...)
		recordCount(ctx, len(logs))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func auditlogOf(kind AuditlogKind) func(map[string]any) (*Auditlog, error) {
	return func(raw map[string]any) (*Auditlog, error) {
		log, err := core.NewAuditlog(raw)
		if err != nil {
			return nil, err
		}
		log.Kind = kind
		return log, nil
	}
}

// AuditlogsDownload returns the audit log archive as the API sent it,
// normally a ZIP file.
func (c *Client) AuditlogsDownload(ctx context.Context, params AuditlogDownloadParams) ([]byte, error) {
	op := operation{name: "AuditlogsDownload", action: "download auditlogs", path: auditlogsDownloadPath}
	payload := struct {
		auth
		AuditlogDownloadParams
	}{c.auth(), params}
	return c.download(ctx, op, params, payload)
}
