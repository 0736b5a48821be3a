package core

import (
	"bytes"
	"sort"
)

// EmailAddress is a recipient, sender or reply-to address. Substitutions
// are merged into the address's JSON object and interpolated by the
// provider into ((#key#)) placeholders.
type EmailAddress struct {
	Address       string
	Name          string
	Substitutions map[string]string
}

// NewEmailAddress creates an address with optional substitutions.
func NewEmailAddress(address, name string, substitutions map[string]string) EmailAddress {
	return EmailAddress{Address: address, Name: name, Substitutions: substitutions}
}

// Validate rejects substitution keys that would overwrite address or name.
func (a EmailAddress) Validate() error {
	for key := range a.Substitutions {
		if key == "address" || key == "name" {
			return NewValidationError("substitutions",
				"substitution key "+key+" collides with a reserved address field")
		}
	}
	return nil
}

// MarshalJSON emits address and name first, then the substitutions in
// key order.
func (a EmailAddress) MarshalJSON() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "address", a.Address); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "name", a.Name); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(a.Substitutions))
	for key := range a.Substitutions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		buf.WriteByte(',')
		if err := writeMember(&buf, key, a.Substitutions[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON returns the wire form of the address.
func (a EmailAddress) JSON() (string, error) {
	return MarshalJSONString(a)
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	k, err := MarshalJSON(key)
	if err != nil {
		return err
	}
	v, err := MarshalJSON(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
