package marketdata

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// number decodes a JSON number that may also arrive quoted, as null, or as "NA".
type number struct {
	Value float64
	Valid bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s, ok := unquoteNumber(b)
	if !ok {
		*n = number{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = number{}
		return nil
	}
	*n = number{Value: v, Valid: true}
	return nil
}

func (n number) ptr() *float64 {
	if !n.Valid {
		return nil
	}
	return floatPtr(n.Value)
}

// positive treats zero as missing, for fields where providers use 0 for unknown.
func (n number) positive() *float64 {
	if !n.Valid || n.Value == 0 {
		return nil
	}
	return floatPtr(n.Value)
}

// bigNumber decodes an exact decimal with the same leniency as number.
type bigNumber struct {
	Value decimal.Decimal
	Valid bool
}

func (n *bigNumber) UnmarshalJSON(b []byte) error {
	s, ok := unquoteNumber(b)
	if !ok {
		*n = bigNumber{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		*n = bigNumber{}
		return nil
	}
	*n = bigNumber{Value: d, Valid: true}
	return nil
}

func (n bigNumber) ptr() *decimal.Decimal {
	if !n.Valid || n.Value.IsZero() {
		return nil
	}
	d := n.Value
	return &d
}

func unquoteNumber(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", false
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "NA" || s == "N/A" || s == "None" {
		return "", false
	}
	return s, true
}
