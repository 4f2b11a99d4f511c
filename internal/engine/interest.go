package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accrue simple interest accrued on debt between mark and now.
// interest = debt * rate/100 * elapsed_seconds / seconds_per_year, rounded
// down; zero when now is not after mark or debt is zero.
func Accrue(debt, interestRate decimal.Decimal, mark, now time.Time) decimal.Decimal {
	if debt.LessThanOrEqual(decimal.Zero) || !now.After(mark) {
		return decimal.Zero
	}

	elapsed := decimal.NewFromInt(int64(now.Sub(mark) / time.Second))
	return debt.Mul(interestRate).Div(Hundred).Mul(elapsed).Div(SecondsPerYear).Truncate(MaxPrecision)
}
