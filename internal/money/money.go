// Package money provides exact two-decimal currency amounts.
//
// Amounts are stored as int64 cents so that summation across millions of
// simulated hands is exact. Conversion from external representations
// (strings, floats, config values) goes through shopspring/decimal and is
// rejected unless the value has at most two decimal places.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotCurrency is returned when a value has more than two decimal places
// or cannot be parsed at all.
var ErrNotCurrency = errors.New("not a valid currency amount")

// Amount is a currency value in cents.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromCents returns the amount for a whole number of cents.
func FromCents(c int64) Amount {
	return Amount(c)
}

// FromDollars returns the amount for a whole number of dollars.
func FromDollars(d int64) Amount {
	return Amount(d * 100)
}

// Parse converts a decimal string such as "12.50" into an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotCurrency, s)
	}
	return fromDecimal(d)
}

// FromFloat converts a float into an Amount. Values that are not exactly
// representable with two decimal places are rejected.
func FromFloat(f float64) (Amount, error) {
	return fromDecimal(decimal.NewFromFloat(f))
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func fromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("%w: %s has more than two decimal places", ErrNotCurrency, d.String())
	}
	return Amount(d.Shift(2).IntPart()), nil
}

// Decimal returns the amount as a decimal in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Cents returns the raw cent count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Float64 returns the amount in currency units. Only for statistics and display.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// MulRatio multiplies by a payout ratio and rounds to the nearest cent,
// halves away from zero.
func (a Amount) MulRatio(ratio float64) Amount {
	d := decimal.NewFromInt(int64(a)).Mul(decimal.NewFromFloat(ratio))
	return Amount(d.Round(0).IntPart())
}

// Half returns half the amount rounded to the nearest cent.
func (a Amount) Half() Amount {
	return a.MulRatio(0.5)
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// String formats the amount with exactly two decimals, e.g. "-12.50".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalText encodes the amount as its decimal string.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a decimal string.
func (a *Amount) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
