package mailcloud

import (
	"context"
)

// UnsubscribesDownload returns the unsubscribe list archive as the API
// sent it, normally a ZIP file.
func (c *Client) UnsubscribesDownload(ctx context.Context, params UnsubscribeDownloadParams) ([]byte, error) {
	op := operation{name: "UnsubscribesDownload", action: "download unsubscribes", path: unsubscribesDownloadPath}
	payload := struct {
		auth
		UnsubscribeDownloadParams
	}{c.auth(), params}
	return c.download(ctx, op, params, payload)
}

// UnsubscribesCancel removes addresses from the unsubscribe list and
// returns the raw response object.
func (c *Client) UnsubscribesCancel(ctx context.Context, params UnsubscribeCancelParams) (map[string]any, error) {
	op := operation{name: "UnsubscribesCancel", action: "cancel unsubscribes", path: unsubscribesCancelPath}

	// email goes out as a string or an array, whichever the caller set.
	var email any = params.Email
	if len(params.Emails) > 0 {
		email = params.Emails
	}
	payload := struct {
		auth
		ServerComposition string `json:"server_composition"`
		Email             any    `json:"email"`
		FilterName        string `json:"filter_name,omitempty"`
	}{c.auth(), params.ServerComposition, email, params.FilterName}

	var result map[string]any
	err := c.run(ctx, op, params, payload, func(_ context.Context, obj map[string]any) error {
		result = obj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
