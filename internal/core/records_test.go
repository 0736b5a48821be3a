package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// casings returns the name as given plus lower, upper and swapped-first-letter forms.
func casings(name string) []string {
	first := name[:1]
	swapped := strings.ToUpper(first)
	if swapped == first {
		swapped = strings.ToLower(first)
	}
	return []string{name, strings.ToLower(name), strings.ToUpper(name), swapped + name[1:]}
}

func TestDelivery_AllFieldsAnyCasing(t *testing.T) {
	fields := map[string]func(*Delivery) string{
		"created":    func(d *Delivery) string { return d.Created },
		"returnPath": func(d *Delivery) string { return d.ReturnPath },
		"from":       func(d *Delivery) string { return d.From },
		"to":         func(d *Delivery) string { return d.To },
		"messageId":  func(d *Delivery) string { return d.MessageID },
		"reason":     func(d *Delivery) string { return d.Reason },
		"senderIp":   func(d *Delivery) string { return d.SenderIP },
		"sourceIp":   func(d *Delivery) string { return d.SourceIP },
		"status":     func(d *Delivery) string { return d.Status },
		"subject":    func(d *Delivery) string { return d.Subject },
		"apiData":    func(d *Delivery) string { return d.APIData },
	}

	for name, get := range fields {
		for _, key := range casings(name) {
			t.Run(key, func(t *testing.T) {
				d, err := NewDelivery(map[string]any{key: "value-" + name})
				if err != nil {
					t.Fatalf("NewDelivery() error = %v", err)
				}
				if got := get(d); got != "value-"+name {
					t.Errorf("%s = %q, want %q", name, got, "value-"+name)
				}
			})
		}
	}
}

func TestBounce_AllFieldsAnyCasing(t *testing.T) {
	fields := map[string]func(*Bounce) string{
		"created":    func(b *Bounce) string { return b.Created },
		"status":     func(b *Bounce) string { return b.Status },
		"from":       func(b *Bounce) string { return b.From },
		"to":         func(b *Bounce) string { return b.To },
		"messageId":  func(b *Bounce) string { return b.MessageID },
		"returnPath": func(b *Bounce) string { return b.ReturnPath },
		"subject":    func(b *Bounce) string { return b.Subject },
		"apiData":    func(b *Bounce) string { return b.APIData },
		"reason":     func(b *Bounce) string { return b.Reason },
	}

	for name, get := range fields {
		for _, key := range casings(name) {
			b, err := NewBounce(map[string]any{key: "v"})
			if err != nil {
				t.Fatalf("NewBounce(%s) error = %v", key, err)
			}
			if get(b) != "v" {
				t.Errorf("NewBounce(%s): field not set", key)
			}
		}
	}
}

func TestAuditlog_AllFieldsAnyCasing(t *testing.T) {
	fields := map[string]func(*Auditlog) string{
		"created":   func(a *Auditlog) string { return a.Created },
		"account":   func(a *Auditlog) string { return a.Account },
		"ipaddress": func(a *Auditlog) string { return a.IPAddress },
		"code":      func(a *Auditlog) string { return a.Code },
		"result":    func(a *Auditlog) string { return a.Result },
		"reason":    func(a *Auditlog) string { return a.Reason },
		"name":      func(a *Auditlog) string { return a.Name },
		"function":  func(a *Auditlog) string { return a.Function },
		"operation": func(a *Auditlog) string { return a.Operation },
	}

	for name, get := range fields {
		for _, key := range casings(name) {
			a, err := NewAuditlog(map[string]any{key: "v"})
			if err != nil {
				t.Fatalf("NewAuditlog(%s) error = %v", key, err)
			}
			if get(a) != "v" {
				t.Errorf("NewAuditlog(%s): field not set", key)
			}
		}
	}
}

func TestUnsubscribe_AllFieldsAnyCasing(t *testing.T) {
	for _, key := range append(casings("created"), append(casings("email"), casings("filterName")...)...) {
		u, err := NewUnsubscribe(map[string]any{key: "v"})
		if err != nil {
			t.Fatalf("NewUnsubscribe(%s) error = %v", key, err)
		}
		if u.Created != "v" && u.Email != "v" && u.FilterName != "v" {
			t.Errorf("NewUnsubscribe(%s): field not set", key)
		}
	}
}

func TestStatistic_Counters(t *testing.T) {
	raw := map[string]any{
		"Date":      "2024-01-05",
		"QUEUED":    json.Number("10"),
		"succeeded": float64(8),
		"failed":    "1",
		"blocked":   1,
		"valid":     nil,
	}
	s, err := NewStatistic(raw)
	if err != nil {
		t.Fatalf("NewStatistic() error = %v", err)
	}
	if s.Date != "2024-01-05" || s.Queued != 10 || s.Succeeded != 8 || s.Failed != 1 || s.Blocked != 1 || s.Valid != 0 {
		t.Errorf("statistic = %+v", s)
	}
}

func TestStatistic_BadCounter(t *testing.T) {
	for _, value := range []any{"many", "1.5", "Inf", float64(2.5), true} {
		t.Run(fmt.Sprint(value), func(t *testing.T) {
			_, err := NewStatistic(map[string]any{"queued": value})
			var fve *FieldValueError
			if !errors.As(err, &fve) {
				t.Fatalf("err = %v, want FieldValueError", err)
			}
			if fve.Field != "queued" || fve.Record != RecordStatistic {
				t.Errorf("FieldValueError = %+v", fve)
			}
		})
	}
}

func TestStatistic_LenientCounterStrings(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{" 7 ", 7},
		{"1.0", 1},
		{"3e2", 300},
		{"-4", -4},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s, err := NewStatistic(map[string]any{"queued": tt.value})
			if err != nil {
				t.Fatalf("NewStatistic() error = %v", err)
			}
			if s.Queued != tt.want {
				t.Errorf("Queued = %d, want %d", s.Queued, tt.want)
			}
		})
	}
}

func TestDecode_LowerCasesWithoutFolding(t *testing.T) {
	// U+017F folds to "s" but does not lower-case to it.
	for _, key := range []string{"\u017ftatus", "STATU\u017f"} {
		t.Run(key, func(t *testing.T) {
			_, err := NewBounce(map[string]any{key: "2"})
			var ufe *UnknownFieldError
			if !errors.As(err, &ufe) {
				t.Fatalf("err = %v, want UnknownFieldError", err)
			}
			if ufe.Field != key {
				t.Errorf("Field = %q, want %q", ufe.Field, key)
			}
		})
	}
}

func TestDecode_DuplicateKeysDeterministic(t *testing.T) {
	raw := map[string]any{"Status": "1", "status": "2", "STATUS": "3"}
	for i := 0; i < 200; i++ {
		b, err := NewBounce(raw)
		if err != nil {
			t.Fatalf("NewBounce() error = %v", err)
		}
		// Sorted order is STATUS, Status, status.
		if b.Status != "2" {
			t.Fatalf("iteration %d: Status = %q, want %q", i, b.Status, "2")
		}
	}
}

func TestUnknownField(t *testing.T) {
	tests := []struct {
		name   string
		decode func(map[string]any) error
		record string
	}{
		{"delivery", func(m map[string]any) error { _, err := NewDelivery(m); return err }, RecordDelivery},
		{"bounce", func(m map[string]any) error { _, err := NewBounce(m); return err }, RecordBounce},
		{"statistic", func(m map[string]any) error { _, err := NewStatistic(m); return err }, RecordStatistic},
		{"auditlog", func(m map[string]any) error { _, err := NewAuditlog(m); return err }, RecordAuditlog},
		{"unsubscribe", func(m map[string]any) error { _, err := NewUnsubscribe(m); return err }, RecordUnsubscribe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(map[string]any{"return_path_v2": "x"})
			var ufe *UnknownFieldError
			if !errors.As(err, &ufe) {
				t.Fatalf("err = %v, want UnknownFieldError", err)
			}
			if ufe.Field != "return_path_v2" || ufe.Record != tt.record {
				t.Errorf("UnknownFieldError = %+v", ufe)
			}
			want := "Invalid property: return_path_v2 in " + tt.record
			if ufe.Error() != want {
				t.Errorf("Error() = %q, want %q", ufe.Error(), want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	var b Bounce
	if err := b.Set("STATUS", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if b.Status != "2" {
		t.Errorf("Status = %q", b.Status)
	}
	if err := b.Set("nope", "x"); err == nil {
		t.Error("Set(nope) error = nil, want UnknownFieldError")
	}
}

func TestStringCoercion(t *testing.T) {
	d, err := NewDelivery(map[string]any{
		"status":  json.Number("2"),
		"reason":  float64(550),
		"subject": true,
		"apidata": nil,
	})
	if err != nil {
		t.Fatalf("NewDelivery() error = %v", err)
	}
	if d.Status != "2" || d.Reason != "550" || d.Subject != "true" || d.APIData != "" {
		t.Errorf("delivery = %+v", d)
	}

	if _, err := NewDelivery(map[string]any{"status": []any{"x"}}); err == nil {
		t.Error("array value accepted for string field")
	}
}
