package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fee is a tuition amount as typed by the user. Forms send it either as a
// number or as free text ("32만원", "280,000"); only the digits are kept.
// The value is not unit-normalized here.
type Fee int64

// ParseFee keeps the digits of s. Text without digits parses to zero.
func ParseFee(s string) (Fee, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: fee %q out of range", ErrInvalidInput, s)
	}
	return Fee(n), nil
}

func (f *Fee) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseFee(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: fee must be a number or string", ErrInvalidInput)
	}
	if n < 0 {
		return fmt.Errorf("%w: fee must not be negative", ErrInvalidInput)
	}
	if n != math.Trunc(n) || n >= math.MaxInt64 {
		return fmt.Errorf("%w: fee must be a whole number of won, got %v", ErrInvalidInput, n)
	}
	*f = Fee(n)
	return nil
}
