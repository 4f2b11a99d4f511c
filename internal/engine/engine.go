package engine

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear interest accrual period length
	SecondsPerYear = decimal.NewFromInt(365 * 24 * 3600)
	// Hundred percent divisor for whole percent parameters
	Hundred = decimal.NewFromInt(100)
	// MaxPrecision max precision kept on derived amounts
	MaxPrecision int32 = 8
)

// CollateralValue native currency value of collateral tokens.
// value = collateral * price_usd / rate, rounded down.
func CollateralValue(collateral, priceUSD, rate decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return collateral.Mul(priceUSD).Div(rate).Truncate(MaxPrecision)
}

// CollateralTokens inverse of CollateralValue: tokens worth value native units
func CollateralTokens(value, priceUSD, rate decimal.Decimal) decimal.Decimal {
	if priceUSD.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return value.Mul(rate).Div(priceUSD).Truncate(MaxPrecision)
}

// MaxDebt borrow ceiling of a collateral holding.
// max_debt = collateral_value * max_ltv / 100
func MaxDebt(collateral, priceUSD, rate, maxLTV decimal.Decimal) decimal.Decimal {
	return CollateralValue(collateral, priceUSD, rate).Mul(maxLTV).Div(Hundred).Truncate(MaxPrecision)
}

// MaxWithdraw max collateral redeemable while the debt stays within max ltv.
// The collateral locked by debt is debt/(max_ltv/100) worth of tokens.
func MaxWithdraw(collateral, debt, priceUSD, rate, maxLTV decimal.Decimal) decimal.Decimal {
	if debt.LessThanOrEqual(decimal.Zero) {
		return collateral
	}
	if maxLTV.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	lockedValue := debt.Mul(Hundred).Div(maxLTV)
	locked := CollateralTokens(lockedValue, priceUSD, rate)
	if locked.GreaterThanOrEqual(collateral) {
		return decimal.Zero
	}

	return collateral.Sub(locked).Truncate(MaxPrecision)
}

// Liquidatable reports whether debt reached the liquidation threshold of the
// collateral value
func Liquidatable(collateral, debt, priceUSD, rate, liqThreshold decimal.Decimal) bool {
	if debt.LessThanOrEqual(decimal.Zero) {
		return false
	}

	limit := CollateralValue(collateral, priceUSD, rate).Mul(liqThreshold).Div(Hundred)
	return debt.GreaterThanOrEqual(limit.Truncate(MaxPrecision))
}

// Seizure liquidation outcome in collateral token units
type Seizure struct {
	// tokens covering the outstanding debt, kept by the protocol treasury
	DebtTokens decimal.Decimal
	// protocol fee tokens, kept by the protocol treasury
	ProtocolFeeTokens decimal.Decimal
	// liquidator incentive tokens
	SenderFeeTokens decimal.Decimal
}

// Total all seized tokens
func (s Seizure) Total() decimal.Decimal {
	return s.DebtTokens.Add(s.ProtocolFeeTokens).Add(s.SenderFeeTokens)
}

// Seize computes the collateral seized to cover debt plus both liquidation
// fees. Every part is capped so the total never exceeds the available
// collateral. The sender fee is served first so the liquidator keeps an
// incentive even when the collateral cannot cover the debt, then the debt
// share, then the protocol fee.
func Seize(collateral, debt, priceUSD, rate, feeProtocol, feeSender decimal.Decimal) Seizure {
	debtTokens := CollateralTokens(debt, priceUSD, rate)
	protocolTokens := debtTokens.Mul(feeProtocol).Div(Hundred).Truncate(MaxPrecision)
	senderTokens := debtTokens.Mul(feeSender).Div(Hundred).Truncate(MaxPrecision)

	remain := collateral
	take := func(want decimal.Decimal) decimal.Decimal {
		if want.GreaterThan(remain) {
			want = remain
		}
		remain = remain.Sub(want)
		return want
	}

	seizure := Seizure{SenderFeeTokens: take(senderTokens)}
	seizure.DebtTokens = take(debtTokens)
	seizure.ProtocolFeeTokens = take(protocolTokens)
	return seizure
}
