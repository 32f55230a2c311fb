package services

import (
	"bytes"
	"math"
	"strconv"
)

// Number is a float64 that also accepts quoted numeric strings in JSON, since
// form payloads submit rates as strings. A value that parses as neither is
// stored as NaN so validation can report it against the offending field
// instead of failing the whole decode.
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*n = Number(math.NaN())
		return nil
	}
	*n = Number(value)
	return nil
}

// IsValid reports whether the decoded value was numeric
func (n Number) IsValid() bool {
	return !math.IsNaN(float64(n))
}
