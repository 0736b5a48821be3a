package core

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// errWrongType is returned by setters; Decode turns it into a FieldValueError.
var errWrongType = errors.New("wrong type")

// Setter stores one coerced value on a record.
type Setter[T any] func(rec *T, value any) error

// FieldTable maps lower-cased field names to setters. Tables are built
// once per record type and never mutated.
type FieldTable[T any] map[string]Setter[T]

// Decode builds a record from a raw API mapping. Keys are matched
// case-insensitively; a key absent from the table fails the whole record.
func Decode[T any](record string, raw map[string]any, table FieldTable[T]) (*T, error) {
	rec := new(T)
	if err := DecodeInto(rec, record, raw, table); err != nil {
		return nil, err
	}
	return rec, nil
}

// DecodeInto is Decode onto an existing record. Keys are applied in
// sorted order, so when two keys name the same field the later one wins.
func DecodeInto[T any](rec *T, record string, raw map[string]any, table FieldTable[T]) error {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lower := cases.Lower(language.Und)
	for _, key := range keys {
		set, ok := table[lower.String(key)]
		if !ok {
			return &UnknownFieldError{Field: key, Record: record}
		}
		value := raw[key]
		if err := set(rec, value); err != nil {
			return &FieldValueError{Field: key, Record: record, Value: value}
		}
	}
	return nil
}

// StringField returns a setter for a string-typed field.
func StringField[T any](field func(*T) *string) Setter[T] {
	return func(rec *T, value any) error {
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		*field(rec) = s
		return nil
	}
}

// IntField returns a setter for a counter field.
func IntField[T any](field func(*T) *int) Setter[T] {
	return func(rec *T, value any) error {
		n, err := coerceInt(value)
		if err != nil {
			return err
		}
		*field(rec) = n
		return nil
	}
}

func coerceString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", errWrongType
	}
}

func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, errWrongType
		}
		return int(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return coerceInt(f)
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(v); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		return coerceInt(f)
	default:
		return 0, errWrongType
	}
}
