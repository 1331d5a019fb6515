package domain

import (
	"errors"
	"fmt"
	"math"
)

// PLN is the default currency of the reference configuration.
const PLN = "PLN"

var (
	ErrNegativeAmount   = errors.New("money amount cannot be negative")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money is a monetary amount stored in minor units (cents) to avoid
// float precision issues. The zero value is 0 with an empty currency;
// construct via the factory functions instead.
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, fmt.Errorf("%w: %d", ErrNegativeAmount, cents)
	}
	return Money{cents: cents, currency: currency}, nil
}

// MoneyFromDecimal converts a decimal amount (e.g. 39.99) to minor units,
// rounding to the nearest cent.
func MoneyFromDecimal(amount float64, currency string) (Money, error) {
	return NewMoney(int64(math.Round(amount*100)), currency)
}

func Zero(currency string) Money {
	return Money{cents: 0, currency: currency}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }

func (m Money) Decimal() float64 {
	return float64(m.cents) / 100
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// Subtract floors at zero; shipping costs never go negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	cents := m.cents - other.cents
	if cents < 0 {
		cents = 0
	}
	return Money{cents: cents, currency: m.currency}, nil
}

func (m Money) Multiply(factor int64) Money {
	return Money{cents: m.cents * factor, currency: m.currency}
}

// Percentage returns the given percentage of the amount, rounded to the
// nearest minor unit (half away from zero). The result floors at zero,
// like Subtract: a negative percent (a discount configured above 100%)
// cannot construct a negative amount.
func (m Money) Percentage(percent int) Money {
	cents := (m.cents*int64(percent) + 50) / 100
	if cents < 0 {
		cents = 0
	}
	return Money{cents: cents, currency: m.currency}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.cents > other.cents, nil
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.cents >= other.cents, nil
}

func (m Money) LessThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.cents < other.cents, nil
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

func (m Money) Format() string {
	return fmt.Sprintf("%.2f %s", m.Decimal(), m.currency)
}

func (m Money) String() string {
	return m.Format()
}

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
