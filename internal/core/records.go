package core

// Record names used in UnknownFieldError messages.
const (
	RecordDelivery    = "Delivery"
	RecordBounce      = "Bounce"
	RecordStatistic   = "Statistic"
	RecordAuditlog    = "Auditlog"
	RecordUnsubscribe = "Unsubscribe"
)

// Delivery is one entry of the deliveries list.
type Delivery struct {
	Created    string `json:"created"`
	ReturnPath string `json:"returnPath"`
	From       string `json:"from"`
	To         string `json:"to"`
	MessageID  string `json:"messageId"`
	Reason     string `json:"reason"`
	SenderIP   string `json:"senderIp"`
	SourceIP   string `json:"sourceIp"`
	Status     string `json:"status"`
	Subject    string `json:"subject"`
	APIData    string `json:"apiData"`
}

var deliveryFields = FieldTable[Delivery]{
	"created":    StringField(func(d *Delivery) *string { return &d.Created }),
	"returnpath": StringField(func(d *Delivery) *string { return &d.ReturnPath }),
	"from":       StringField(func(d *Delivery) *string { return &d.From }),
	"to":         StringField(func(d *Delivery) *string { return &d.To }),
	"messageid":  StringField(func(d *Delivery) *string { return &d.MessageID }),
	"reason":     StringField(func(d *Delivery) *string { return &d.Reason }),
	"senderip":   StringField(func(d *Delivery) *string { return &d.SenderIP }),
	"sourceip":   StringField(func(d *Delivery) *string { return &d.SourceIP }),
	"status":     StringField(func(d *Delivery) *string { return &d.Status }),
	"subject":    StringField(func(d *Delivery) *string { return &d.Subject }),
	"apidata":    StringField(func(d *Delivery) *string { return &d.APIData }),
}

// NewDelivery builds a Delivery from a raw API mapping.
func NewDelivery(raw map[string]any) (*Delivery, error) {
	return Decode(RecordDelivery, raw, deliveryFields)
}

// Set assigns a single field by name, case-insensitively.
func (d *Delivery) Set(field string, value any) error {
	return DecodeInto(d, RecordDelivery, map[string]any{field: value}, deliveryFields)
}

// Bounce is one entry of the bounces list.
type Bounce struct {
	Created    string `json:"created"`
	Status     string `json:"status"`
	From       string `json:"from"`
	To         string `json:"to"`
	MessageID  string `json:"messageId"`
	ReturnPath string `json:"returnPath"`
	Subject    string `json:"subject"`
	APIData    string `json:"apiData"`
	Reason     string `json:"reason"`
}

var bounceFields = FieldTable[Bounce]{
	"created":    StringField(func(b *Bounce) *string { return &b.Created }),
	"status":     StringField(func(b *Bounce) *string { return &b.Status }),
	"from":       StringField(func(b *Bounce) *string { return &b.From }),
	"to":         StringField(func(b *Bounce) *string { return &b.To }),
	"messageid":  StringField(func(b *Bounce) *string { return &b.MessageID }),
	"returnpath": StringField(func(b *Bounce) *string { return &b.ReturnPath }),
	"subject":    StringField(func(b *Bounce) *string { return &b.Subject }),
	"apidata":    StringField(func(b *Bounce) *string { return &b.APIData }),
	"reason":     StringField(func(b *Bounce) *string { return &b.Reason }),
}

// NewBounce builds a Bounce from a raw API mapping.
func NewBounce(raw map[string]any) (*Bounce, error) {
	return Decode(RecordBounce, raw, bounceFields)
}

// Set assigns a single field by name, case-insensitively.
func (b *Bounce) Set(field string, value any) error {
	return DecodeInto(b, RecordBounce, map[string]any{field: value}, bounceFields)
}

// Statistic is one day (or the monthly total) of sending counters.
type Statistic struct {
	Date      string `json:"date"`
	Queued    int    `json:"queued"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Blocked   int    `json:"blocked"`
	Valid     int    `json:"valid"`
}

var statisticFields = FieldTable[Statistic]{
	"date":      StringField(func(s *Statistic) *string { return &s.Date }),
	"queued":    IntField(func(s *Statistic) *int { return &s.Queued }),
	"succeeded": IntField(func(s *Statistic) *int { return &s.Succeeded }),
	"failed":    IntField(func(s *Statistic) *int { return &s.Failed }),
	"blocked":   IntField(func(s *Statistic) *int { return &s.Blocked }),
	"valid":     IntField(func(s *Statistic) *int { return &s.Valid }),
}

// NewStatistic builds a Statistic from a raw API mapping.
func NewStatistic(raw map[string]any) (*Statistic, error) {
	return Decode(RecordStatistic, raw, statisticFields)
}

// Set assigns a single field by name, case-insensitively.
func (s *Statistic) Set(field string, value any) error {
	return DecodeInto(s, RecordStatistic, map[string]any{field: value}, statisticFields)
}

// AuditlogKind tells which response array an audit log entry came from.
type AuditlogKind string

const (
	// AuditlogLogin marks entries of the loginlogs array.
	AuditlogLogin AuditlogKind = "login"

	// AuditlogOperation marks entries of the operationlogs array.
	AuditlogOperation AuditlogKind = "operation"
)

// Auditlog holds either a login log or an operation log entry. Only the
// fields of its own kind are populated.
type Auditlog struct {
	Kind    AuditlogKind `json:"kind,omitempty"`
	Created string       `json:"created"`
	Account string       `json:"account"`

	// Login log fields.
	IPAddress string `json:"ipaddress,omitempty"`
	Code      string `json:"code,omitempty"`
	Result    string `json:"result,omitempty"`
	Reason    string `json:"reason,omitempty"`

	// Operation log fields.
	Name      string `json:"name,omitempty"`
	Function  string `json:"function,omitempty"`
	Operation string `json:"operation,omitempty"`
}

var auditlogFields = FieldTable[Auditlog]{
	"created":   StringField(func(a *Auditlog) *string { return &a.Created }),
	"account":   StringField(func(a *Auditlog) *string { return &a.Account }),
	"ipaddress": StringField(func(a *Auditlog) *string { return &a.IPAddress }),
	"code":      StringField(func(a *Auditlog) *string { return &a.Code }),
	"result":    StringField(func(a *Auditlog) *string { return &a.Result }),
	"reason":    StringField(func(a *Auditlog) *string { return &a.Reason }),
	"name":      StringField(func(a *Auditlog) *string { return &a.Name }),
	"function":  StringField(func(a *Auditlog) *string { return &a.Function }),
	"operation": StringField(func(a *Auditlog) *string { return &a.Operation }),
}

// NewAuditlog builds an Auditlog from a raw API mapping.
func NewAuditlog(raw map[string]any) (*Auditlog, error) {
	return Decode(RecordAuditlog, raw, auditlogFields)
}

// Set assigns a single field by name, case-insensitively.
func (a *Auditlog) Set(field string, value any) error {
	return DecodeInto(a, RecordAuditlog, map[string]any{field: value}, auditlogFields)
}

// IsLogin reports whether the entry is a login log.
func (a *Auditlog) IsLogin() bool {
	return a.Kind == AuditlogLogin
}

// Unsubscribe is one entry of the unsubscribe list.
type Unsubscribe struct {
	Created    string `json:"created"`
	Email      string `json:"email"`
	FilterName string `json:"filtername"`
}

var unsubscribeFields = FieldTable[Unsubscribe]{
	"created":    StringField(func(u *Unsubscribe) *string { return &u.Created }),
	"email":      StringField(func(u *Unsubscribe) *string { return &u.Email }),
	"filtername": StringField(func(u *Unsubscribe) *string { return &u.FilterName }),
}

// NewUnsubscribe builds an Unsubscribe from a raw API mapping.
func NewUnsubscribe(raw map[string]any) (*Unsubscribe, error) {
	return Decode(RecordUnsubscribe, raw, unsubscribeFields)
}

// Set assigns a single field by name, case-insensitively.
func (u *Unsubscribe) Set(field string, value any) error {
	return DecodeInto(u, RecordUnsubscribe, map[string]any{field: value}, unsubscribeFields)
}
