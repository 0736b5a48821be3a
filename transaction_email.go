package mailcloud

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lattiq/mailcloud/internal/core"
	"github.com/lattiq/mailcloud/internal/transport"
)

// MaxAttachments is the most files one email may carry.
const MaxAttachments = 10

// DefaultCharset is the charset of new emails.
const DefaultCharset = "UTF-8"

// TransactionEmail is a single outgoing email. Build it with the setters
// or by assigning fields, then call Send. A TransactionEmail is not safe
// for concurrent use.
type TransactionEmail struct {
	client *Client

	To      []EmailAddress
	From    *EmailAddress
	ReplyTo *EmailAddress
	Subject string
	Text    string
	HTML    string
	Charset string
	EnvFrom string

	// Headers are extra message headers, sent sorted by name.
	Headers map[string]string

	CC  []string
	BCC []string

	// Attachments are file paths. With any present the email is sent as
	// multipart/form-data instead of JSON.
	Attachments []string

	// SubDomain selects the sending environment host.
	SubDomain string

	// ID is the message id assigned by the API after a successful Send.
	ID string
}

// TransactionEmail returns a new email bound to the client.
func (c *Client) TransactionEmail() *TransactionEmail {
	return &TransactionEmail{
		client:    c,
		Charset:   DefaultCharset,
		SubDomain: c.config.SubDomain,
	}
}

// AddTo appends a recipient. substitutions may be nil.
func (e *TransactionEmail) AddTo(address, name string, substitutions map[string]string) *TransactionEmail {
	e.To = append(e.To, core.NewEmailAddress(address, name, substitutions))
	return e
}

// SetFrom sets the sender.
func (e *TransactionEmail) SetFrom(address, name string) *TransactionEmail {
	from := core.NewEmailAddress(address, name, nil)
	e.From = &from
	return e
}

// SetReplyTo sets the reply-to address.
func (e *TransactionEmail) SetReplyTo(address, name string) *TransactionEmail {
	replyTo := core.NewEmailAddress(address, name, nil)
	e.ReplyTo = &replyTo
	return e
}

// SetSubject sets the subject line.
func (e *TransactionEmail) SetSubject(subject string) *TransactionEmail {
	e.Subject = subject
	return e
}

// SetText sets the plain-text body.
func (e *TransactionEmail) SetText(text string) *TransactionEmail {
	e.Text = text
	return e
}

// SetHTML sets the HTML body.
func (e *TransactionEmail) SetHTML(html string) *TransactionEmail {
	e.HTML = html
	return e
}

// SetCharset sets the body character set.
func (e *TransactionEmail) SetCharset(charset string) *TransactionEmail {
	e.Charset = charset
	return e
}

// SetEnvFrom sets the envelope sender (return path).
func (e *TransactionEmail) SetEnvFrom(envFrom string) *TransactionEmail {
	e.EnvFrom = envFrom
	return e
}

// AddCC appends a carbon-copy address.
func (e *TransactionEmail) AddCC(address string) *TransactionEmail {
	e.CC = append(e.CC, address)
	return e
}

// AddBCC appends a blind carbon-copy address.
func (e *TransactionEmail) AddBCC(address string) *TransactionEmail {
	e.BCC = append(e.BCC, address)
	return e
}

// SetHeader sets an extra message header, replacing any previous value.
func (e *TransactionEmail) SetHeader(name, value string) *TransactionEmail {
	if e.Headers == nil {
		e.Headers = make(map[string]string)
	}
	e.Headers[name] = value
	return e
}

// AddAttachment appends a file path.
func (e *TransactionEmail) AddAttachment(path string) *TransactionEmail {
	e.Attachments = append(e.Attachments, path)
	return e
}

// SetSubDomain overrides the client's default sub-domain for this email.
func (e *TransactionEmail) SetSubDomain(subDomain string) *TransactionEmail {
	e.SubDomain = subDomain
	return e
}

// Validate checks the email without touching the network. Attachment
// files are opened and closed again to confirm they are readable.
func (e *TransactionEmail) Validate() error {
	if len(e.To) == 0 {
		return core.NewValidationError("to", "At least one recipient is required")
	}
	if e.From == nil || e.From.Address == "" {
		return core.NewValidationError("from", "Sender is required")
	}
	if e.Subject == "" {
		return core.NewValidationError("subject", "Subject is required")
	}
	if e.Text == "" && e.HTML == "" {
		return core.NewValidationError("text", "Either text or html content is required")
	}

	if len(e.Attachments) > MaxAttachments {
		return core.NewValidationError("attachments", "Maximum 10 attachments are allowed")
	}
	for _, path := range e.Attachments {
		if err := checkReadable(path); err != nil {
			return err
		}
	}

	for _, to := range e.To {
		if err := to.Validate(); err != nil {
			return err
		}
	}
	if err := e.From.Validate(); err != nil {
		return err
	}
	if e.ReplyTo != nil {
		if err := e.ReplyTo.Validate(); err != nil {
			return err
		}
	}

	if !subDomainPattern.MatchString(e.SubDomain) {
		return core.NewValidationError("sub_domain", "sub_domain must be a valid host label: "+e.SubDomain)
	}
	return nil
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.NewValidationError("attachments", "Attachment file not found: "+path)
	}
	if err != nil || info.IsDir() {
		return core.NewValidationError("attachments", "Attachment file is not readable: "+path)
	}

	f, err := os.Open(path)
	if err != nil {
		return core.NewValidationError("attachments", "Attachment file is not readable: "+path)
	}
	return f.Close()
}

// Send validates and sends the email. On success ID holds the message id.
func (e *TransactionEmail) Send(ctx context.Context) error {
	c := e.client
	ctx, span, err := c.begin(ctx, "Send")
	defer span.End()
	if err != nil {
		return err
	}

	span.SetAttributes(
		attribute.String("mailcloud.sub_domain", e.SubDomain),
		attribute.Int("mailcloud.recipients", len(e.To)),
		attribute.Int("mailcloud.attachments", len(e.Attachments)),
	)

	if err := e.Validate(); err != nil {
		return fail(span, err, "validation failed")
	}

	payload, err := e.payload(c.auth())
	if err != nil {
		return fail(span, err, "encoding failed")
	}

	var body transport.Body = transport.JSONBody(payload)
	if len(e.Attachments) > 0 {
		form := transport.NewForm()
		for _, f := range payload.fields() {
			form.Set(f[0], f[1])
		}
		for _, path := range e.Attachments {
			form.AddFile(path)
		}
		body = form
	}

	obj, err := c.postJSON(ctx, "send email", c.sendURL(e.SubDomain), body)
	if err != nil {
		return fail(span, err, "send failed")
	}

	id := text(obj["id"])
	if id == "" {
		raw, _ := core.MarshalJSON(obj)
		return fail(span, unexpected(raw), "missing message id")
	}
	e.ID = id

	span.SetAttributes(attribute.String("mailcloud.message_id", id))
	span.SetStatus(codes.Ok, "email sent successfully")
	return nil
}

// sendPayload is the send request in wire order. Address and list fields
// are JSON documents embedded as strings.
type sendPayload struct {
	APIUser string `json:"api_user"`
	APIKey  string `json:"api_key"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
	Charset string `json:"charset"`
	EnvFrom string `json:"envfrom"`
	To      string `json:"to"`
	From    string `json:"from"`
	ReplyTo string `json:"replyto,omitempty"`
	CC      string `json:"cc,omitempty"`
	BCC     string `json:"bcc,omitempty"`
	Headers string `json:"headers,omitempty"`
}

// fields returns the payload as ordered name/value pairs for a form.
func (p sendPayload) fields() [][2]string {
	return [][2]string{
		{"api_user", p.APIUser},
		{"api_key", p.APIKey},
		{"subject", p.Subject},
		{"text", p.Text},
		{"html", p.HTML},
		{"charset", p.Charset},
		{"envfrom", p.EnvFrom},
		{"to", p.To},
		{"from", p.From},
		{"replyto", p.ReplyTo},
		{"cc", p.CC},
		{"bcc", p.BCC},
		{"headers", p.Headers},
	}
}

type addressOnly struct {
	Address string `json:"address"`
}

type header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (e *TransactionEmail) payload(a auth) (sendPayload, error) {
	p := sendPayload{
		APIUser: a.APIUser,
		APIKey:  a.APIKey,
		Subject: e.Subject,
		Text:    e.Text,
		HTML:    e.HTML,
		Charset: e.Charset,
		EnvFrom: e.EnvFrom,
	}

	var err error
	if p.To, err = core.MarshalJSONString(e.To); err != nil {
		return p, fmt.Errorf("failed to encode to: %w", err)
	}
	if p.From, err = e.From.JSON(); err != nil {
		return p, fmt.Errorf("failed to encode from: %w", err)
	}
	if e.ReplyTo != nil {
		if p.ReplyTo, err = e.ReplyTo.JSON(); err != nil {
			return p, fmt.Errorf("failed to encode replyto: %w", err)
		}
	}
	if p.CC, err = addressList(e.CC); err != nil {
		return p, fmt.Errorf("failed to encode cc: %w", err)
	}
	if p.BCC, err = addressList(e.BCC); err != nil {
		return p, fmt.Errorf("failed to encode bcc: %w", err)
	}

	if len(e.Headers) > 0 {
		names := make([]string, 0, len(e.Headers))
		for name := range e.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		headers := make([]header, len(names))
		for i, name := range names {
			headers[i] = header{Name: name, Value: e.Headers[name]}
		}
		if p.Headers, err = core.MarshalJSONString(headers); err != nil {
			return p, fmt.Errorf("failed to encode headers: %w", err)
		}
	}
	return p, nil
}

// addressList encodes addresses as [{"address": ...}], or "" when empty.
func addressList(addresses []string) (string, error) {
	if len(addresses) == 0 {
		return "", nil
	}
	list := make([]addressOnly, len(addresses))
	for i, address := range addresses {
		list[i] = addressOnly{Address: address}
	}
	return core.MarshalJSONString(list)
}
