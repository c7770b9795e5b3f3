package payload

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// FieldError reports the payload field that failed to decode
type FieldError struct {
	Key    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("payload: field %q %s", e.Key, e.Reason)
}

// Fields a decoded event payload. Chain events carry loosely typed
// json: amounts arrive as strings, flags as numbers or bools, so
// every getter coerces before it fails.
type Fields map[string]interface{}

// Unmarshal decodes raw event data into Fields
func Unmarshal(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f Fields) String(key string) (string, error) {
	v, ok := f[key]
	if !ok {
		return "", &FieldError{Key: key, Reason: "missing"}
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &FieldError{Key: key, Reason: "is not a string"}
	}
	return s, nil
}

// Decimal reads an amount field. On chain amounts are json strings to
// survive 128 bit integers.
func (f Fields) Decimal(key string) (decimal.Decimal, error) {
	s, err := f.String(key)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &FieldError{Key: key, Reason: "is not a number"}
	}
	return d, nil
}

func (f Fields) Int64(key string) (int64, error) {
	v, ok := f[key]
	if !ok {
		return 0, &FieldError{Key: key, Reason: "missing"}
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, &FieldError{Key: key, Reason: "is not an integer"}
	}
	return n, nil
}

func (f Fields) Bool(key string) (bool, error) {
	v, ok := f[key]
	if !ok {
		return false, &FieldError{Key: key, Reason: "missing"}
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &FieldError{Key: key, Reason: "is not a bool"}
	}
	return b, nil
}

func (f Fields) Object(key string) (Fields, error) {
	v, ok := f[key]
	if !ok {
		return nil, &FieldError{Key: key, Reason: "missing"}
	}

	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, &FieldError{Key: key, Reason: "is not an object"}
	}
	return Fields(m), nil
}

func (f Fields) Array(key string) ([]Fields, error) {
	v, ok := f[key]
	if !ok {
		return nil, &FieldError{Key: key, Reason: "missing"}
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, &FieldError{Key: key, Reason: "is not an array"}
	}

	out := make([]Fields, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, &FieldError{Key: key, Reason: "holds a non object element"}
		}
		out = append(out, Fields(m))
	}
	return out, nil
}
