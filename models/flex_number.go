package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexNumber is a numeric document field that may have been written as a JSON
// number, a numeric string or something else entirely by one of the clients.
// The raw value is kept so that re-encoding a document never changes it.
type FlexNumber struct {
	raw json.RawMessage
}

// NewFlexNumber builds a FlexNumber holding a plain JSON number.
func NewFlexNumber(v float64) *FlexNumber {
	return &FlexNumber{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// NewFlexNumberRaw builds a FlexNumber from an arbitrary JSON literal.
func NewFlexNumberRaw(raw string) *FlexNumber {
	return &FlexNumber{raw: json.RawMessage(raw)}
}

// UnmarshalJSON keeps the raw literal; coercion happens in Float.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// MarshalJSON writes the literal back untouched.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if len(n.raw) == 0 {
		return []byte("null"), nil
	}
	return n.raw, nil
}

// Float coerces the stored literal to a number. Numbers and numeric strings
// convert, an empty string is 0, everything else (including non-finite values)
// yields NaN.
func (n *FlexNumber) Float() float64 {
	if n == nil {
		return math.NaN()
	}
	raw := bytes.TrimSpace(n.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return math.NaN()
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return math.NaN()
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
	} else {
		s = string(raw)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN()
	}
	return f
}

// IsNull reports whether the field is missing or an explicit JSON null.
func (n *FlexNumber) IsNull() bool {
	return n == nil || len(bytes.TrimSpace(n.raw)) == 0 || bytes.Equal(bytes.TrimSpace(n.raw), []byte("null"))
}
