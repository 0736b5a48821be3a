package mailcloud

// Parameter structs carry the whitelisted request fields of each
// operation. Optional fields are omitted from the request when unset.

// DeliveryListParams filters the delivery log of one day.
type DeliveryListParams struct {
	ServerComposition string            `json:"server_composition"`
	Date              string            `json:"date"`
	From              string            `json:"from,omitempty"`
	To                string            `json:"to,omitempty"`
	APIData           string            `json:"api_data,omitempty"`
	Status            string            `json:"status,omitempty"`
	Hour              *int              `json:"hour,omitempty"`
	Minute            *int              `json:"minute,omitempty"`
	P                 int               `json:"p,omitempty"`
	R                 int               `json:"r,omitempty"`
	SearchOption      map[string]string `json:"search_option,omitempty"`
}

// BounceListParams filters the bounce log.
type BounceListParams struct {
	ServerComposition string            `json:"server_composition"`
	From              string            `json:"from,omitempty"`
	To                string            `json:"to,omitempty"`
	APIData           string            `json:"api_data,omitempty"`
	Status            string            `json:"status,omitempty"`
	StartDate         string            `json:"start_date,omitempty"`
	EndDate           string            `json:"end_date,omitempty"`
	Date              string            `json:"date,omitempty"`
	Hour              *int              `json:"hour,omitempty"`
	Minute            *int              `json:"minute,omitempty"`
	P                 int               `json:"p,omitempty"`
	R                 int               `json:"r,omitempty"`
	SearchOption      map[string]string `json:"search_option,omitempty"`
}

// StatisticListParams selects one month of counters.
type StatisticListParams struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	ServerComposition string `json:"server_composition,omitempty"`
	Total             bool   `json:"total,omitempty"`
}

// Audit log types.
const (
	AuditlogTypeLogin     = "login"
	AuditlogTypeOperation = "operation"
)

// AuditlogListParams filters login or operation logs.
type AuditlogListParams struct {
	Type      string `json:"type"`
	Account   string `json:"account,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	P         int    `json:"p,omitempty"`
	R         int    `json:"r,omitempty"`
}

// AuditlogDownloadParams filters an audit log archive.
type AuditlogDownloadParams struct {
	Type      string `json:"type"`
	Account   string `json:"account,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// UnsubscribeDownloadParams filters an unsubscribe list archive.
type UnsubscribeDownloadParams struct {
	ServerComposition string `json:"server_composition"`
	Email             string `json:"email,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
	EndDate           string `json:"end_date,omitempty"`
	FilterName        string `json:"filter_name,omitempty"`
}

// UnsubscribeCancelParams removes addresses from the unsubscribe list.
// Set exactly one of Email and Emails.
type UnsubscribeCancelParams struct {
	ServerComposition string
	Email             string
	Emails            []string
	FilterName        string
}

// Int returns a pointer to n, for the optional Hour and Minute fields.
func Int(n int) *int {
	return &n
}
