package core

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v the way the API expects it: literal UTF-8 and
// literal "/", with no HTML escaping and no trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalJSONString is MarshalJSON returning a string.
func MarshalJSONString(v any) (string, error) {
	b, err := MarshalJSON(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
