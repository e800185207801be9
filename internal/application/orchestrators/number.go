package orchestrators

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when a numeric field holds something that is not a finite number.
var ErrInvalidNumber = errors.New("invalid number")

// Number is a numeric form field that accepts JSON numbers and numeric strings.
// null and "" leave it unset.
type Number struct {
	Value float64
	Set   bool
}

// Num builds a set Number.
func Num(v float64) Number {
	return Number{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return n.parse(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || !finite(f) {
		return ErrInvalidNumber
	}
	*n = Num(f)
	return nil
}

// MarshalJSON implements json.Marshaler; unset numbers encode as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// ParseNumber reads a form value. Empty input is unset.
func ParseNumber(s string) (Number, error) {
	var n Number
	err := n.parse(s)
	return n, err
}

func (n *Number) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = Number{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return ErrInvalidNumber
	}
	*n = Num(f)
	return nil
}

// Present reports whether the field was given a non-zero value.
// Zero counts as missing for required fields.
func (n Number) Present() bool {
	return n.Set && n.Value != 0
}

// Float returns the value, or 0 when unset.
func (n Number) Float() float64 {
	return n.Value
}

// Int truncates the value toward zero.
func (n Number) Int() int {
	return int(n.Value)
}

// finite rejects NaN and the infinities that ParseFloat accepts as "NaN", "Inf" and "infinity".
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
