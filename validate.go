package mailcloud

import (
	"regexp"
	"time"

	"github.com/lattiq/mailcloud/internal/core"
)

const (
	dateLayout = "2006-01-02"

	// maxSearchDays bounds audit log and unsubscribe date ranges.
	maxSearchDays = 31
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func required(field, value string) error {
	if value == "" {
		return core.RequiredError(field)
	}
	return nil
}

func formatError(field string) error {
	return core.NewValidationError(field, field+" must be in yyyy-mm-dd format")
}

// checkDate accepts an empty value; anything else must look like yyyy-mm-dd.
func checkDate(field, value string) error {
	if value != "" && !datePattern.MatchString(value) {
		return formatError(field)
	}
	return nil
}

// checkRange validates start_date and end_date. Both are optional; order
// and span are only checked when both are present. maxDays <= 0 disables
// the span check.
func checkRange(start, end string, maxDays int) error {
	if err := checkDate("start_date", start); err != nil {
		return err
	}
	if err := checkDate("end_date", end); err != nil {
		return err
	}
	if start == "" || end == "" {
		return nil
	}

	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return formatError("start_date")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return formatError("end_date")
	}

	if s.After(e) {
		return core.NewValidationError("start_date", "start_date must be earlier than or equal to end_date")
	}
	if maxDays > 0 && int(e.Sub(s).Hours()/24) > maxDays {
		return core.NewValidationError("end_date", "search duration must be 31 days or less")
	}
	return nil
}

func checkAuditlogType(t string) error {
	if err := required("type", t); err != nil {
		return err
	}
	if t != AuditlogTypeLogin && t != AuditlogTypeOperation {
		return core.NewValidationError("type", `type must be either "login" or "operation"`)
	}
	return nil
}

// Validate checks required fields and date formats.
func (p DeliveryListParams) Validate() error {
	if err := required("server_composition", p.ServerComposition); err != nil {
		return err
	}
	if err := required("date", p.Date); err != nil {
		return err
	}
	return checkDate("date", p.Date)
}

// Validate checks required fields, date formats and range order.
func (p BounceListParams) Validate() error {
	if err := required("server_composition", p.ServerComposition); err != nil {
		return err
	}
	if err := checkDate("date", p.Date); err != nil {
		return err
	}
	return checkRange(p.StartDate, p.EndDate, 0)
}

// Validate checks the year and month.
func (p StatisticListParams) Validate() error {
	if p.Year == 0 {
		return core.RequiredError("year")
	}
	if p.Month == 0 {
		return core.RequiredError("month")
	}
	if p.Year < 1000 || p.Year > 9999 {
		return core.NewValidationError("year", "year must be a 4-digit number")
	}
	if p.Month < 1 || p.Month > 12 {
		return core.NewValidationError("month", "month must be a number between 1 and 12")
	}
	return nil
}

// Validate checks the log type and date range.
func (p AuditlogListParams) Validate() error {
	if err := checkAuditlogType(p.Type); err != nil {
		return err
	}
	return checkRange(p.StartDate, p.EndDate, maxSearchDays)
}

// Validate checks the log type and date range.
func (p AuditlogDownloadParams) Validate() error {
	if err := checkAuditlogType(p.Type); err != nil {
		return err
	}
	return checkRange(p.StartDate, p.EndDate, maxSearchDays)
}

// Validate checks required fields and the date range.
func (p UnsubscribeDownloadParams) Validate() error {
	if err := required("server_composition", p.ServerComposition); err != nil {
		return err
	}
	return checkRange(p.StartDate, p.EndDate, maxSearchDays)
}

// Validate checks required fields.
func (p UnsubscribeCancelParams) Validate() error {
	if err := required("server_composition", p.ServerComposition); err != nil {
		return err
	}
	if p.Email == "" && len(p.Emails) == 0 {
		return core.RequiredError("email")
	}
	if p.Email != "" && len(p.Emails) > 0 {
		return core.NewValidationError("email", "email must be either a single address or a list, not both")
	}
	return nil
}
