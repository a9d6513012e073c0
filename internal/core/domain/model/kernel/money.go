package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a non-negative monetary amount expressed in the smallest currency
// unit. It is an immutable value object; arithmetic returns new values and
// never produces a negative amount. Unlike UUID, the zero value is valid and
// represents a zero amount, so no constructor guard is needed.
type Money struct {
	amount int64
}

// NewMoney creates a Money from an amount in the smallest currency unit.
// Returns an error for negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// MustMoney creates a Money and panics on a negative amount. Intended for
// constants and tests where the amount is known to be valid.
func MustMoney(amount int64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of both amounts.
// Returns an error when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d minus %d is negative", m.amount, other.amount))
	}
	return Money{amount: m.amount - other.amount}, nil
}

// Mul returns the amount multiplied by a non-negative factor.
// Negative factors clamp to zero rather than producing a negative amount.
func (m Money) Mul(n int) Money {
	if n < 0 {
		return Money{}
	}
	return Money{amount: m.amount * int64(n)}
}

// IsGreaterOrEqual reports whether m is at least other.
func (m Money) IsGreaterOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// IsEqual reports whether both amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
