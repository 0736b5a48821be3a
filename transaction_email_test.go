package mailcloud_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lattiq/mailcloud"
	"github.com/lattiq/mailcloud/mailcloudtest"
)

func newEmail(client *mailcloud.Client) *mailcloud.TransactionEmail {
	return client.TransactionEmail().
		AddTo("user@example.com", "User", map[string]string{"customer": "User"}).
		SetFrom("info@example.com", "Example").
		SetSubject("Welcome").
		SetText("Hello ((#customer#))")
}

func TestTransactionEmail_SendJSON(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)
	server.Handle(mailcloudtest.SendPath, http.StatusOK, map[string]string{"id": "<abc@smtps.jp>"})

	email := newEmail(client).
		SetHTML("<p>Hello & welcome</p>").
		SetReplyTo("reply@example.com", "").
		AddCC("cc@example.com").
		AddBCC("bcc@example.com").
		SetHeader("X-B", "2").
		SetHeader("X-A", "1")

	if err := email.Send(context.Background()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if email.ID != "<abc@smtps.jp>" {
		t.Errorf("ID = %q", email.ID)
	}

	req, _ := server.LastRequest()
	if req.Multipart() {
		t.Fatal("email without attachments sent as multipart")
	}
	if req.SubDomain != "sandbox" {
		t.Errorf("SubDomain = %q, want sandbox", req.SubDomain)
	}

	want := map[string]string{
		"api_user": mailcloudtest.APIUser,
		"api_key":  mailcloudtest.APIKey,
		"subject":  "Welcome",
		"text":     "Hello ((#customer#))",
		"html":     "<p>Hello & welcome</p>",
		"charset":  "UTF-8",
		"envfrom":  "",
		"to":       `[{"address":"user@example.com","name":"User","customer":"User"}]`,
		"from":     `{"address":"info@example.com","name":"Example"}`,
		"replyto":  `{"address":"reply@example.com","name":""}`,
		"cc":       `[{"address":"cc@example.com"}]`,
		"bcc":      `[{"address":"bcc@example.com"}]`,
		"headers":  `[{"name":"X-A","value":"1"},{"name":"X-B","value":"2"}]`,
	}
	for field, w := range want {
		got, ok := req.Fields[field]
		if !ok {
			t.Errorf("field %s missing", field)
			continue
		}
		if got != w {
			t.Errorf("%s = %q, want %q", field, got, w)
		}
	}
}

func TestTransactionEmail_OmitsOptionalFields(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)

	if err := newEmail(client).Send(context.Background()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	req, _ := server.LastRequest()
	for _, field := range []string{"replyto", "cc", "bcc", "headers"} {
		if _, ok := req.Fields[field]; ok {
			t.Errorf("unset %s was sent", field)
		}
	}
	if !strings.HasPrefix(req.String("to"), `[{"address":"user@example.com"`) {
		t.Errorf("to = %q", req.String("to"))
	}
}

func TestTransactionEmail_SendMultipart(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "report.csv")
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(txtPath, []byte("plain notes"), 0o600); err != nil {
		t.Fatal(err)
	}

	email := newEmail(client).AddAttachment(csvPath).AddAttachment(txtPath)
	if err := email.Send(context.Background()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if email.ID == "" {
		t.Error("ID not set")
	}

	req, _ := server.LastRequest()
	if !req.Multipart() {
		t.Fatalf("Content-Type = %q, want multipart/form-data", req.ContentType)
	}

	wantParts := []string{"api_user", "api_key", "subject", "text", "charset", "to", "from", "attachments", "attachment1", "attachment2"}
	if !reflect.DeepEqual(req.Parts, wantParts) {
		t.Errorf("Parts = %v, want %v", req.Parts, wantParts)
	}
	if req.String("attachments") != "2" {
		t.Errorf("attachments = %q, want 2", req.String("attachments"))
	}
	if req.String("to") != `[{"address":"user@example.com","name":"User","customer":"User"}]` {
		t.Errorf("to = %q", req.String("to"))
	}

	if len(req.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(req.Files))
	}
	if req.Files[0].Filename != "report.csv" || string(req.Files[0].Data) != "a,b\n1,2\n" {
		t.Errorf("Files[0] = %+v", req.Files[0])
	}
	if !strings.HasPrefix(req.Files[1].ContentType, "text/plain") {
		t.Errorf("Files[1].ContentType = %q", req.Files[1].ContentType)
	}
}

func TestTransactionEmail_SubDomain(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t, mailcloud.WithSubDomain("te"))
	ctx := context.Background()

	if err := newEmail(client).Send(ctx); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if req, _ := server.LastRequest(); req.SubDomain != "te" {
		t.Errorf("SubDomain = %q, want client default te", req.SubDomain)
	}

	if err := newEmail(client).SetSubDomain("other").Send(ctx); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if req, _ := server.LastRequest(); req.SubDomain != "other" {
		t.Errorf("SubDomain = %q, want per-email other", req.SubDomain)
	}

	// A per-email sub-domain never leaks into later emails.
	if email := client.TransactionEmail(); email.SubDomain != "te" {
		t.Errorf("new email SubDomain = %q", email.SubDomain)
	}
}

func TestTransactionEmail_Validate(t *testing.T) {
	client, err := mailcloud.New("user", "key")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	missing := filepath.Join(t.TempDir(), "missing.pdf")
	dir := t.TempDir()
	tooMany := newEmail(client)
	for i := 0; i < mailcloud.MaxAttachments+1; i++ {
		tooMany.AddAttachment(fmt.Sprintf("file%d.txt", i))
	}

	tests := []struct {
		name    string
		email   *mailcloud.TransactionEmail
		field   string
		message string
	}{
		{"no recipient", client.TransactionEmail().SetFrom("f@example.com", "").SetSubject("s").SetText("t"), "to", "At least one recipient is required"},
		{"no sender", client.TransactionEmail().AddTo("a@example.com", "", nil).SetSubject("s").SetText("t"), "from", "Sender is required"},
		{"no subject", client.TransactionEmail().AddTo("a@example.com", "", nil).SetFrom("f@example.com", "").SetText("t"), "subject", "Subject is required"},
		{"no body", client.TransactionEmail().AddTo("a@example.com", "", nil).SetFrom("f@example.com", "").SetSubject("s"), "text", "Either text or html content is required"},
		{"too many attachments", tooMany, "attachments", "Maximum 10 attachments are allowed"},
		{"missing attachment", newEmail(client).AddAttachment(missing), "attachments", "Attachment file not found: " + missing},
		{"directory attachment", newEmail(client).AddAttachment(dir), "attachments", "Attachment file is not readable: " + dir},
		{"reserved substitution", newEmail(client).AddTo("b@example.com", "", map[string]string{"address": "x"}), "substitutions", ""},
		{"bad sub-domain", newEmail(client).SetSubDomain("a/b"), "sub_domain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.email.Validate()
			var ve *mailcloud.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if tt.message != "" && ve.Message != tt.message {
				t.Errorf("Message = %q, want %q", ve.Message, tt.message)
			}
		})
	}

	if err := newEmail(client).SetHTML("<b>x</b>").SetText("").Validate(); err != nil {
		t.Errorf("html-only email Validate() error = %v", err)
	}
}

func TestTransactionEmail_SendRejectsInvalidLocally(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)

	err := client.TransactionEmail().SetSubject("s").Send(context.Background())
	if !mailcloud.IsValidationError(err) {
		t.Fatalf("Send() error = %v, want ValidationError", err)
	}
	if len(server.Requests()) != 0 {
		t.Error("invalid email reached the server")
	}
}

func TestTransactionEmail_MissingID(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)
	server.Handle(mailcloudtest.SendPath, http.StatusOK, map[string]any{"status": "queued"})

	email := newEmail(client)
	err := email.Send(context.Background())
	if !errors.Is(err, mailcloud.ErrUnexpectedResponse) {
		t.Fatalf("Send() error = %v, want ErrUnexpectedResponse", err)
	}
	if email.ID != "" {
		t.Errorf("ID = %q, want empty", email.ID)
	}
}

func TestTransactionEmail_APIError(t *testing.T) {
	server := mailcloudtest.New(t)
	client := server.NewClient(t)
	server.Handle(mailcloudtest.SendPath, http.StatusBadRequest, map[string]any{
		"errors": []map[string]string{{"code": "03-004", "field": "to", "message": "to is invalid"}},
	})

	err := newEmail(client).Send(context.Background())
	apiErr, ok := mailcloud.AsAPIError(err)
	if !ok {
		t.Fatalf("Send() error = %v, want APIError", err)
	}
	if apiErr.Code() != "03-004" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("APIError = %+v", apiErr)
	}
	raw, _ := json.Marshal(apiErr.RawResponse)
	if !strings.Contains(string(raw), "03-004") {
		t.Errorf("RawResponse = %s", raw)
	}
}
