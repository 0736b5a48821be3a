package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEmailAddress_JSON(t *testing.T) {
	a := NewEmailAddress("a@b.com", "N", map[string]string{"k": "v"})
	s, err := a.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if s != `{"address":"a@b.com","name":"N","k":"v"}` {
		t.Errorf("JSON() = %s", s)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(decoded) != 3 || decoded["address"] != "a@b.com" || decoded["name"] != "N" || decoded["k"] != "v" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestEmailAddress_NoEscaping(t *testing.T) {
	a := NewEmailAddress("user@example.com", "テストユーザー", map[string]string{
		"url":  "https://example.com/path",
		"html": "<b>&</b>",
	})
	s, err := a.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	for _, bad := range []string{`\u`, `\/`} {
		if strings.Contains(s, bad) {
			t.Errorf("JSON() = %s contains %s", s, bad)
		}
	}
	for _, want := range []string{"テストユーザー", "https://example.com/path", "<b>&</b>"} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON() = %s missing %s", s, want)
		}
	}
}

func TestEmailAddress_SubstitutionOrder(t *testing.T) {
	a := NewEmailAddress("x@y.z", "", map[string]string{"zeta": "1", "alpha": "2", "mid": "3"})
	s, err := a.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if s != `{"address":"x@y.z","name":"","alpha":"2","mid":"3","zeta":"1"}` {
		t.Errorf("JSON() = %s", s)
	}
}

func TestEmailAddress_ReservedKey(t *testing.T) {
	for _, key := range []string{"address", "name"} {
		a := NewEmailAddress("x@y.z", "X", map[string]string{key: "override"})
		if err := a.Validate(); !errors.Is(err, &ValidationError{}) {
			t.Errorf("Validate(%s) = %v, want ValidationError", key, err)
		}
		if _, err := a.JSON(); err == nil {
			t.Errorf("JSON(%s) error = nil", key)
		}
	}
}

func TestMarshalJSONString_Slice(t *testing.T) {
	s, err := MarshalJSONString([]EmailAddress{
		NewEmailAddress("a@b.c", "A", nil),
		NewEmailAddress("d@e.f", "D", map[string]string{"n": "1"}),
	})
	if err != nil {
		t.Fatalf("MarshalJSONString() error = %v", err)
	}
	want := `[{"address":"a@b.c","name":"A"},{"address":"d@e.f","name":"D","n":"1"}]`
	if s != want {
		t.Errorf("got %s, want %s", s, want)
	}
}
