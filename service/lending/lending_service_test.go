package lending

import (
	"context"
	"testing"
	"time"

	"fractional/core"
	"fractional/internal/memstore"
	assetservice "fractional/service/asset"
	"fractional/service/oracle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	assets    *memstore.AssetStore
	protocols *memstore.ProtocolStore
	positions *memstore.PositionStore
	tokens    *memstore.TokenStore
	wallets   *memstore.WalletStore

	assetz   core.IAssetService
	lendingz core.ILendingService

	tokenID  string
	treasury string
}

const (
	userID     = "user-1"
	liquidator = "liquidator-1"
)

// one asset at 10000 usd, oracle rate 200000 usd per native unit, so one
// token is worth 0.05 native units. 10000 tokens minted to userID, protocol
// treasury seeded with 1000 native units.
func setup(t *testing.T) *fixture {
	ctx := context.Background()

	f := &fixture{
		assets:    memstore.NewAssetStore(),
		protocols: memstore.NewProtocolStore(),
		positions: memstore.NewPositionStore(),
		tokens:    memstore.NewTokenStore(),
		wallets:   memstore.NewWalletStore(),
	}

	pricez := oracle.New(core.PriceOracle{FixedRate: decimal.NewFromInt(200000)})
	f.assetz = assetservice.New(f.assets, f.tokens)
	f.lendingz = New(f.protocols, f.positions, f.assets, f.tokens, f.wallets, pricez)

	asset, err := f.assetz.CreateAsset(ctx, nil, decimal.NewFromInt(10000), "Property 1", "PROP1", decimal.NewFromInt(10000), userID)
	require.Nil(t, err)
	f.tokenID = asset.TokenID

	_, err = f.lendingz.CreateProtocol(ctx, nil, &core.Protocol{
		TokenID:                f.tokenID,
		MaxLTV:                 decimal.NewFromInt(80),
		LiquidationThreshold:   decimal.NewFromInt(85),
		LiquidationFeeProtocol: decimal.NewFromInt(5),
		LiquidationFeeSender:   decimal.NewFromInt(10),
		BorrowThreshold:        decimal.NewFromInt(10),
		InterestRate:           decimal.NewFromInt(10),
	})
	require.Nil(t, err)

	f.treasury = core.ProtocolTreasuryUserID(f.tokenID)
	require.Nil(t, f.wallets.Deposit(ctx, nil, f.treasury, decimal.NewFromInt(1000)))

	return f
}

func (f *fixture) approve(t *testing.T, amount int64) {
	err := f.tokens.Approve(context.Background(), nil, f.tokenID, userID, f.treasury, decimal.NewFromInt(amount))
	require.Nil(t, err)
}

func TestCreateProtocolValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := map[string]*core.Protocol{
		"empty token": {},
		"zero ltv": {
			TokenID:              "token",
			LiquidationThreshold: decimal.NewFromInt(85),
		},
		"threshold below ltv": {
			TokenID:              "token",
			MaxLTV:               decimal.NewFromInt(80),
			LiquidationThreshold: decimal.NewFromInt(75),
		},
		"negative interest": {
			TokenID:              "token",
			MaxLTV:               decimal.NewFromInt(80),
			LiquidationThreshold: decimal.NewFromInt(85),
			InterestRate:         decimal.NewFromInt(-1),
		},
	}

	for name, protocol := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.lendingz.CreateProtocol(ctx, nil, protocol)
			assert.Equal(t, core.ErrInvalidArgument, err)
		})
	}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("zero amount", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.Zero)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("unknown protocol", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Deposit(ctx, nil, "missing", userID, decimal.NewFromInt(10))
		assert.Equal(t, core.ErrProtocolNotFound, err)
	})

	t.Run("no allowance", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10))
		assert.Equal(t, core.ErrInsufficientAllowance, err)
	})

	t.Run("no balance", func(t *testing.T) {
		f := setup(t)
		err := f.tokens.Approve(ctx, nil, f.tokenID, "stranger", f.treasury, decimal.NewFromInt(10))
		require.Nil(t, err)

		_, err = f.lendingz.Deposit(ctx, nil, f.tokenID, "stranger", decimal.NewFromInt(10))
		assert.Equal(t, core.ErrInsufficientBalance, err)
	})

	t.Run("moves tokens into custody", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)

		position, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)
		assert.True(t, position.Collateral.Equal(decimal.NewFromInt(10000)))
		assert.True(t, position.Debt.IsZero())
		assert.WithinDuration(t, time.Now(), position.LastInterestAt, time.Minute)

		balance, _ := f.tokens.BalanceOf(ctx, f.tokenID, userID)
		assert.True(t, balance.IsZero())

		custody, _ := f.tokens.BalanceOf(ctx, f.tokenID, f.treasury)
		assert.True(t, custody.Equal(decimal.NewFromInt(10000)))
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("more than collateral", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)

		_, err = f.lendingz.Withdraw(ctx, nil, f.tokenID, userID, decimal.NewFromInt(101))
		assert.Equal(t, core.ErrInsufficientCollateral, err)
	})

	t.Run("free collateral comes back", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)

		position, err := f.lendingz.Withdraw(ctx, nil, f.tokenID, userID, decimal.NewFromInt(7000))
		require.Nil(t, err)
		assert.True(t, position.Collateral.Equal(decimal.NewFromInt(3000)))

		balance, _ := f.tokens.BalanceOf(ctx, f.tokenID, userID)
		assert.True(t, balance.Equal(decimal.NewFromInt(7000)))
	})

	t.Run("locked by debt", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)

		// collateral worth 500 native, max ltv 80% => ceiling 400
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)

		// debt 100 locks 2500 tokens, 7500 stay free
		_, err = f.lendingz.Withdraw(ctx, nil, f.tokenID, userID, decimal.NewFromInt(7501))
		assert.Equal(t, core.ErrWithdrawExceedsLimit, err)

		position, err := f.lendingz.Withdraw(ctx, nil, f.tokenID, userID, decimal.NewFromInt(7000))
		require.Nil(t, err)
		assert.True(t, position.Collateral.Equal(decimal.NewFromInt(3000)))
	})
}

func TestBorrow(t *testing.T) {
	ctx := context.Background()

	t.Run("zero amount", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.Zero)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("below threshold", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(9))
		assert.Equal(t, core.ErrBelowBorrowThreshold, err)
	})

	t.Run("no collateral", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		assert.Equal(t, core.ErrInsufficientCollateral, err)
	})

	t.Run("within ceiling", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)

		position, err := f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)
		assert.True(t, position.Debt.GreaterThanOrEqual(decimal.NewFromInt(100)))
		assert.WithinDuration(t, time.Now(), position.LastInterestAt, time.Minute)

		balance, _ := f.wallets.Balance(ctx, userID)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("over ceiling", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)

		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(401))
		assert.Equal(t, core.ErrInsufficientCollateral, err)

		// exactly at the ceiling is allowed
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(400))
		assert.Nil(t, err)
	})
}

func TestRepay(t *testing.T) {
	ctx := context.Background()

	t.Run("zero amount", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Repay(ctx, nil, f.tokenID, userID, decimal.Zero)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)

		_, err = f.lendingz.Repay(ctx, nil, f.tokenID, userID, decimal.NewFromInt(500))
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("pays down and clears", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)

		position, err := f.lendingz.Repay(ctx, nil, f.tokenID, userID, decimal.NewFromInt(40))
		require.Nil(t, err)
		assert.True(t, position.Debt.Equal(decimal.NewFromInt(60)))

		position, err = f.lendingz.Repay(ctx, nil, f.tokenID, userID, decimal.NewFromInt(60))
		require.Nil(t, err)
		assert.True(t, position.Debt.IsZero())
		assert.True(t, position.Collateral.GreaterThan(decimal.Zero))
	})
}

func TestInterestAccrual(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.approve(t, 10000)

	_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
	require.Nil(t, err)
	_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
	require.Nil(t, err)

	// rewind the interest mark one year, the next operation folds 10% in
	position, err := f.positions.Find(ctx, 1, userID)
	require.Nil(t, err)
	position.LastInterestAt = position.LastInterestAt.Add(-365 * 24 * time.Hour)
	require.Nil(t, f.positions.Update(ctx, nil, position))

	position, err = f.lendingz.Repay(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10))
	require.Nil(t, err)
	assert.True(t, position.Debt.GreaterThanOrEqual(decimal.NewFromInt(99)), "debt %s", position.Debt)
	assert.True(t, position.Debt.LessThan(decimal.NewFromInt(101)), "debt %s", position.Debt)
	assert.WithinDuration(t, time.Now(), position.LastInterestAt, time.Minute)
}

func TestLiquidate(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy position", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(100))
		require.Nil(t, err)

		_, err = f.lendingz.Liquidate(ctx, nil, f.tokenID, liquidator, userID)
		assert.Equal(t, core.ErrNotLiquidatable, err)
	})

	t.Run("empty position", func(t *testing.T) {
		f := setup(t)
		_, err := f.lendingz.Liquidate(ctx, nil, f.tokenID, liquidator, userID)
		assert.Equal(t, core.ErrNotLiquidatable, err)
	})

	t.Run("underwater position is seized", func(t *testing.T) {
		f := setup(t)
		f.approve(t, 10000)
		_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
		require.Nil(t, err)
		_, err = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(400))
		require.Nil(t, err)

		// price crashes 50%: collateral value 250, debt 400 over threshold
		require.Nil(t, f.assetz.UpdatePrice(ctx, nil, f.tokenID, decimal.NewFromInt(5000)))

		position, err := f.lendingz.Liquidate(ctx, nil, f.tokenID, liquidator, userID)
		require.Nil(t, err)
		assert.True(t, position.Debt.IsZero())
		assert.True(t, position.Collateral.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, position.Collateral.LessThan(decimal.NewFromInt(10000)))

		reward, _ := f.tokens.BalanceOf(ctx, f.tokenID, liquidator)
		assert.True(t, reward.GreaterThan(decimal.Zero))
	})
}

// borrowing can never push the debt beyond the collateral ceiling, whatever
// the request sequence
func TestBorrowCeilingInvariant(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.approve(t, 10000)

	_, err := f.lendingz.Deposit(ctx, nil, f.tokenID, userID, decimal.NewFromInt(10000))
	require.Nil(t, err)

	amounts := []int64{50, 400, 100, 399, 10, 200, 41}
	for _, amount := range amounts {
		_, _ = f.lendingz.Borrow(ctx, nil, f.tokenID, userID, decimal.NewFromInt(amount))

		position, err := f.positions.Find(ctx, 1, userID)
		require.Nil(t, err)
		assert.True(t, position.Debt.LessThanOrEqual(decimal.NewFromInt(400)),
			"debt %s after borrow %d", position.Debt, amount)
		assert.True(t, position.Collateral.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, position.Debt.GreaterThanOrEqual(decimal.Zero))
	}
}
