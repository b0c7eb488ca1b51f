// Package money holds decimal amounts that go on the wire as JSON numbers,
// e.g. 44.95 rather than "44.95". Decoding accepts both forms.
package money

import (
	"github.com/shopspring/decimal"
)

type Amount struct {
	decimal.Decimal
}

var Zero = Amount{} //nolint:gochecknoglobals

func New(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func NewFromInt(value int64) Amount {
	return New(decimal.NewFromInt(value))
}

func NewFromString(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Zero, err //nolint:wrapcheck
	}

	return New(d), nil
}

// RequireFromString panics on malformed input. Meant for constants and tests.
func RequireFromString(value string) Amount {
	return New(decimal.RequireFromString(value))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a Amount) Add(other Amount) Amount {
	return New(a.Decimal.Add(other.Decimal))
}

func (a Amount) MulInt(n int64) Amount {
	return New(a.Mul(decimal.NewFromInt(n)))
}

func (a Amount) Equal(other Amount) bool {
	return a.Decimal.Equal(other.Decimal)
}
