package engine

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCollateralValue(t *testing.T) {
	// 2000 tokens at 10000 usd each, 200000 usd per native unit => 100 native
	v := CollateralValue(decimal.NewFromInt(2000), decimal.NewFromInt(10000), decimal.NewFromInt(200000))
	assert.True(t, v.Equal(decimal.NewFromInt(100)))

	assert.True(t, CollateralValue(decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero).IsZero())
}

func TestCollateralTokensRoundTrip(t *testing.T) {
	price := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(200000)

	tokens := decimal.NewFromInt(12345)
	value := CollateralValue(tokens, price, rate)
	back := CollateralTokens(value, price, rate)

	diff := tokens.Sub(back).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.New(1, -MaxPrecision+1)), "round trip diff %s", diff)
}

func TestMaxDebt(t *testing.T) {
	// 10000 tokens, price 10000, rate 200000 => value 500, ltv 80% => 400
	maxDebt := MaxDebt(decimal.NewFromInt(10000), decimal.NewFromInt(10000), decimal.NewFromInt(200000), decimal.NewFromInt(80))
	assert.True(t, maxDebt.Equal(decimal.NewFromInt(400)))
}

func TestMaxWithdraw(t *testing.T) {
	price := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(200000)
	ltv := decimal.NewFromInt(80)

	t.Run("no debt frees everything", func(t *testing.T) {
		max := MaxWithdraw(decimal.NewFromInt(10000), decimal.Zero, price, rate, ltv)
		assert.True(t, max.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("debt locks collateral", func(t *testing.T) {
		// debt 100 native locks 100/0.8 = 125 native worth = 2500 tokens
		max := MaxWithdraw(decimal.NewFromInt(10000), decimal.NewFromInt(100), price, rate, ltv)
		assert.True(t, max.Equal(decimal.NewFromInt(7500)), "got %s", max)
	})

	t.Run("fully locked", func(t *testing.T) {
		max := MaxWithdraw(decimal.NewFromInt(100), decimal.NewFromInt(100), price, rate, ltv)
		assert.True(t, max.IsZero())
	})
}

// remaining collateral after any allowed withdraw still covers the debt at
// max ltv, over random collateral/debt/price triples
func TestMaxWithdrawKeepsDebtCovered(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ltv := decimal.NewFromInt(80)

	for i := 0; i < 1000; i++ {
		collateral := decimal.NewFromInt(r.Int63n(1000000) + 1)
		price := decimal.NewFromInt(r.Int63n(100000) + 1)
		rate := decimal.NewFromInt(r.Int63n(500000) + 1)

		maxDebt := MaxDebt(collateral, price, rate, ltv)
		debt := maxDebt.Mul(decimal.NewFromFloat(r.Float64())).Truncate(MaxPrecision)

		max := MaxWithdraw(collateral, debt, price, rate, ltv)
		assert.True(t, max.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, max.LessThanOrEqual(collateral))

		remaining := collateral.Sub(max)
		ceiling := MaxDebt(remaining, price, rate, ltv)
		// one truncation step of slack on each conversion
		slack := price.Div(rate).Add(decimal.NewFromInt(2)).Mul(decimal.New(1, -MaxPrecision))
		assert.True(t, debt.LessThanOrEqual(ceiling.Add(slack)),
			"debt %s over ceiling %s (collateral %s withdraw %s)", debt, ceiling, collateral, max)
	}
}

func TestLiquidatable(t *testing.T) {
	price := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(200000)
	threshold := decimal.NewFromInt(75)

	collateral := decimal.NewFromInt(10000) // 500 native worth, threshold at 375

	assert.False(t, Liquidatable(collateral, decimal.Zero, price, rate, threshold))
	assert.False(t, Liquidatable(collateral, decimal.NewFromInt(374), price, rate, threshold))
	assert.True(t, Liquidatable(collateral, decimal.NewFromInt(375), price, rate, threshold))
	assert.True(t, Liquidatable(collateral, decimal.NewFromInt(500), price, rate, threshold))
}

func TestSeize(t *testing.T) {
	price := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(200000)

	t.Run("covered", func(t *testing.T) {
		// debt 375 native = 7500 tokens, fees 5% + 10%
		s := Seize(decimal.NewFromInt(10000), decimal.NewFromInt(375), price, rate, decimal.NewFromInt(5), decimal.NewFromInt(10))
		assert.True(t, s.DebtTokens.Equal(decimal.NewFromInt(7500)))
		assert.True(t, s.ProtocolFeeTokens.Equal(decimal.NewFromInt(375)))
		assert.True(t, s.SenderFeeTokens.Equal(decimal.NewFromInt(750)))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(8625)))
	})

	t.Run("capped at collateral", func(t *testing.T) {
		// sender fee is served before the debt share, the protocol fee
		// absorbs the shortfall
		s := Seize(decimal.NewFromInt(7600), decimal.NewFromInt(375), price, rate, decimal.NewFromInt(5), decimal.NewFromInt(10))
		assert.True(t, s.SenderFeeTokens.Equal(decimal.NewFromInt(750)))
		assert.True(t, s.DebtTokens.Equal(decimal.NewFromInt(6850)))
		assert.True(t, s.ProtocolFeeTokens.IsZero())
		assert.True(t, s.Total().Equal(decimal.NewFromInt(7600)))
	})

	t.Run("underwater", func(t *testing.T) {
		// debt 400 at crashed price 5000 needs 16000 tokens, collateral has
		// 10000: the liquidator still gets the full incentive
		s := Seize(decimal.NewFromInt(10000), decimal.NewFromInt(400), decimal.NewFromInt(5000), rate, decimal.NewFromInt(5), decimal.NewFromInt(10))
		assert.True(t, s.SenderFeeTokens.Equal(decimal.NewFromInt(1600)))
		assert.True(t, s.DebtTokens.Equal(decimal.NewFromInt(8400)))
		assert.True(t, s.ProtocolFeeTokens.IsZero())
		assert.True(t, s.Total().Equal(decimal.NewFromInt(10000)))
	})
}

func TestCost(t *testing.T) {
	// scenario from the public sale: 2000 tokens at 10000 usd, rate 200000
	cost := Cost(decimal.NewFromInt(2000), decimal.NewFromInt(10000), decimal.NewFromInt(200000))
	assert.True(t, cost.Equal(decimal.NewFromInt(100)))

	assert.True(t, Cost(decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero).IsZero())
}
