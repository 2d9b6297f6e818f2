package kernel

import (
	"errors"
	"fmt"

	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// MoneyScale is the number of fractional digits an amount may carry.
const MoneyScale = 2

// MaxStoredAmount bounds amounts persisted on orders and line items,
// numeric(14,2) in the order store. It is exclusive.
var MaxStoredAmount = decimal.New(1, 12)

// Money is a non-negative amount with at most MoneyScale fractional digits.
// Arithmetic is exact.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "inf")
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyScale))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// ValidateStorable reports amounts too large for an order or line item
// column. param names the offending field.
func (m Money) ValidateStorable(param string) error {
	if m.amount.GreaterThanOrEqual(MaxStoredAmount) {
		return errs.NewValueIsOutOfRangeError(param, m.String(), 0, MaxStoredAmount.Sub(decimal.New(1, -MoneyScale)).StringFixed(MoneyScale))
	}
	return nil
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
