package engine

import (
	"github.com/shopspring/decimal"
)

// Cost native currency cost of amount tokens at the registry price and the
// oracle rate. cost = amount * price_usd / rate, rounded down. Buy and sell
// use the same formula, so a buy followed by a sell at an unchanged rate
// round-trips within one truncation step.
func Cost(amount, priceUSD, rate decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return amount.Mul(priceUSD).Div(rate).Truncate(MaxPrecision)
}
