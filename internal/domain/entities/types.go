package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ID is the surrogate key of orders and team members.
// It is written as a JSON number but also read from numeric strings,
// which older documents used for team members.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	i, err := strconv.ParseInt(trimQuotes(data), 10, 64)
	if err == nil {
		*id = ID(i)
		return nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("invalid id %s: out of range", data)
	}

	n, err := decodeNumber(data)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	if n != math.Trunc(n) {
		return fmt.Errorf("invalid id %s: not an integer", data)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which no int64 can hold
	if n >= float64(math.MaxInt64) || n < float64(math.MinInt64) {
		return fmt.Errorf("invalid id %s: out of range", data)
	}
	*id = ID(int64(n))
	return nil
}

// ParseID parses a decimal id as found in URL paths
func ParseID(s string) (ID, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(i), nil
}

// Years is a non-negative amount of experience.
// The admin form posts it as free text, so strings like "5" or "5+ years"
// decode to their leading number.
type Years float64

func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid experience %s: %w", data, err)
		}
		if lead := leadingNumber.FindString(s); lead != "" {
			data = []byte(lead)
		}
	}

	n, err := decodeNumber(data)
	if err != nil {
		return fmt.Errorf("invalid experience %s: %w", data, err)
	}
	*y = Years(n)
	return nil
}

var leadingNumber = regexp.MustCompile(`^\s*[0-9]+(\.[0-9]+)?`)

// decodeNumber accepts a JSON number, a numeric string, an empty string or null
func decodeNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func trimQuotes(data []byte) string {
	return strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
}
