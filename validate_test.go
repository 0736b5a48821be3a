package mailcloud_test

import (
	"errors"
	"testing"

	"github.com/lattiq/mailcloud"
)

type validator interface {
	Validate() error
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  validator
		message string // empty means valid
	}{
		// Deliveries
		{"deliveries ok", mailcloud.DeliveryListParams{ServerComposition: "sandbox", Date: "2024-01-05"}, ""},
		{"deliveries no composition", mailcloud.DeliveryListParams{Date: "2024-01-05"}, "server_composition parameter is required"},
		{"deliveries no date", mailcloud.DeliveryListParams{ServerComposition: "sandbox"}, "date parameter is required"},
		{"deliveries bad date", mailcloud.DeliveryListParams{ServerComposition: "sandbox", Date: "2024/01/05"}, "date must be in yyyy-mm-dd format"},

		// Bounces
		{"bounces ok", mailcloud.BounceListParams{ServerComposition: "sandbox"}, ""},
		{"bounces no composition", mailcloud.BounceListParams{}, "server_composition parameter is required"},
		{"bounces bad start", mailcloud.BounceListParams{ServerComposition: "s", StartDate: "20240101"}, "start_date must be in yyyy-mm-dd format"},
		{"bounces bad end", mailcloud.BounceListParams{ServerComposition: "s", EndDate: "2024-1-1"}, "end_date must be in yyyy-mm-dd format"},
		{"bounces bad date", mailcloud.BounceListParams{ServerComposition: "s", Date: "yesterday"}, "date must be in yyyy-mm-dd format"},
		{"bounces reversed", mailcloud.BounceListParams{ServerComposition: "s", StartDate: "2024-02-01", EndDate: "2024-01-01"}, "start_date must be earlier than or equal to end_date"},
		{"bounces long range allowed", mailcloud.BounceListParams{ServerComposition: "s", StartDate: "2024-01-01", EndDate: "2024-06-01"}, ""},

		// Statistics
		{"statistics ok", mailcloud.StatisticListParams{Year: 2024, Month: 12}, ""},
		{"statistics no year", mailcloud.StatisticListParams{Month: 1}, "year parameter is required"},
		{"statistics no month", mailcloud.StatisticListParams{Year: 2024}, "month parameter is required"},
		{"statistics short year", mailcloud.StatisticListParams{Year: 24, Month: 1}, "year must be a 4-digit number"},
		{"statistics month 13", mailcloud.StatisticListParams{Year: 2024, Month: 13}, "month must be a number between 1 and 12"},
		{"statistics negative month", mailcloud.StatisticListParams{Year: 2024, Month: -1}, "month must be a number between 1 and 12"},

		// Auditlogs
		{"auditlogs ok", mailcloud.AuditlogListParams{Type: "login"}, ""},
		{"auditlogs no type", mailcloud.AuditlogListParams{}, "type parameter is required"},
		{"auditlogs bad type", mailcloud.AuditlogListParams{Type: "access"}, `type must be either "login" or "operation"`},
		{"auditlogs 31 days", mailcloud.AuditlogListParams{Type: "operation", StartDate: "2024-01-01", EndDate: "2024-02-01"}, ""},
		{"auditlogs 32 days", mailcloud.AuditlogListParams{Type: "operation", StartDate: "2024-01-01", EndDate: "2024-02-02"}, "search duration must be 31 days or less"},
		{"auditlogs reversed", mailcloud.AuditlogListParams{Type: "login", StartDate: "2024-01-02", EndDate: "2024-01-01"}, "start_date must be earlier than or equal to end_date"},
		{"auditlogs download 32 days", mailcloud.AuditlogDownloadParams{Type: "login", StartDate: "2024-03-01", EndDate: "2024-04-02"}, "search duration must be 31 days or less"},
		{"auditlogs download bad type", mailcloud.AuditlogDownloadParams{Type: "x"}, `type must be either "login" or "operation"`},

		// Unsubscribes
		{"unsubscribes download ok", mailcloud.UnsubscribeDownloadParams{ServerComposition: "s"}, ""},
		{"unsubscribes download no composition", mailcloud.UnsubscribeDownloadParams{}, "server_composition parameter is required"},
		{"unsubscribes download 32 days", mailcloud.UnsubscribeDownloadParams{ServerComposition: "s", StartDate: "2024-01-01", EndDate: "2024-02-02"}, "search duration must be 31 days or less"},
		{"unsubscribes cancel ok", mailcloud.UnsubscribeCancelParams{ServerComposition: "s", Email: "a@b.c"}, ""},
		{"unsubscribes cancel list ok", mailcloud.UnsubscribeCancelParams{ServerComposition: "s", Emails: []string{"a@b.c"}}, ""},
		{"unsubscribes cancel no email", mailcloud.UnsubscribeCancelParams{ServerComposition: "s"}, "email parameter is required"},
		{"unsubscribes cancel no composition", mailcloud.UnsubscribeCancelParams{Email: "a@b.c"}, "server_composition parameter is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.message == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.message)
			}
			if !errors.Is(err, &mailcloud.ValidationError{}) {
				t.Errorf("error %T is not a ValidationError", err)
			}
			if err.Error() != tt.message {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}
