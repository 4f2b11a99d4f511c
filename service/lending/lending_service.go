package lending

import (
	"context"
	"time"

	"fractional/core"
	"fractional/internal/engine"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type lendingService struct {
	protocolStore core.IProtocolStore
	positionStore core.IPositionStore
	assetStore    core.IAssetStore
	tokenStore    core.ITokenStore
	walletStore   core.IWalletStore
	priceService  core.IPriceOracleService
}

// New new lending service
func New(
	protocolStore core.IProtocolStore,
	positionStore core.IPositionStore,
	assetStore core.IAssetStore,
	tokenStore core.ITokenStore,
	walletStore core.IWalletStore,
	priceSrv core.IPriceOracleService,
) core.ILendingService {
	return &lendingService{
		protocolStore: protocolStore,
		positionStore: positionStore,
		assetStore:    assetStore,
		tokenStore:    tokenStore,
		walletStore:   walletStore,
		priceService:  priceSrv,
	}
}

func (s *lendingService) CreateProtocol(ctx context.Context, tx *db.DB, protocol *core.Protocol) (*core.Protocol, error) {
	if protocol.TokenID == "" {
		return nil, core.ErrInvalidArgument
	}

	hundred := decimal.NewFromInt(100)
	if protocol.MaxLTV.LessThanOrEqual(decimal.Zero) || protocol.MaxLTV.GreaterThan(hundred) {
		return nil, core.ErrInvalidArgument
	}

	// a loan may become liquidatable only at or beyond the borrow ceiling
	if protocol.LiquidationThreshold.LessThan(protocol.MaxLTV) {
		return nil, core.ErrInvalidArgument
	}

	if protocol.LiquidationFeeProtocol.LessThan(decimal.Zero) ||
		protocol.LiquidationFeeSender.LessThan(decimal.Zero) ||
		protocol.BorrowThreshold.LessThan(decimal.Zero) ||
		protocol.InterestRate.LessThan(decimal.Zero) {
		return nil, core.ErrInvalidArgument
	}

	if err := s.protocolStore.Create(ctx, tx, protocol); err != nil {
		return nil, err
	}

	return protocol, nil
}

func (s *lendingService) Deposit(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*core.Position, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	protocol, position, err := s.loadPosition(ctx, tokenID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.accrue(position, protocol, now)

	if err := s.tokenStore.TransferFrom(ctx, tx, tokenID, userID, protocol.TreasuryUserID(), protocol.TreasuryUserID(), amount); err != nil {
		return nil, err
	}

	position.Collateral = position.Collateral.Add(amount)
	if err := s.savePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "lending").
		Infoln("deposit", amount, "collateral:", position.Collateral)

	return position, nil
}

func (s *lendingService) Withdraw(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*core.Position, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	protocol, position, err := s.loadPosition(ctx, tokenID, userID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(position.Collateral) {
		return nil, core.ErrInsufficientCollateral
	}

	now := time.Now()
	s.accrue(position, protocol, now)

	priceUSD, rate, err := s.quote(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	max := engine.MaxWithdraw(position.Collateral, position.Debt, priceUSD, rate, protocol.MaxLTV)
	if amount.GreaterThan(max) {
		return nil, core.ErrWithdrawExceedsLimit
	}

	if err := s.tokenStore.Transfer(ctx, tx, tokenID, protocol.TreasuryUserID(), userID, amount); err != nil {
		return nil, err
	}

	position.Collateral = position.Collateral.Sub(amount)
	if err := s.savePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (s *lendingService) Borrow(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*core.Position, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	protocol, position, err := s.loadPosition(ctx, tokenID, userID)
	if err != nil {
		return nil, err
	}

	if amount.LessThan(protocol.BorrowThreshold) {
		return nil, core.ErrBelowBorrowThreshold
	}

	now := time.Now()
	s.accrue(position, protocol, now)

	priceUSD, rate, err := s.quote(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	maxDebt := engine.MaxDebt(position.Collateral, priceUSD, rate, protocol.MaxLTV)
	if position.Debt.Add(amount).GreaterThan(maxDebt) {
		return nil, core.ErrInsufficientCollateral
	}

	// disburse from the protocol treasury escrow
	if err := s.walletStore.Transfer(ctx, tx, protocol.TreasuryUserID(), userID, amount); err != nil {
		return nil, err
	}

	position.Debt = position.Debt.Add(amount)
	if err := s.savePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "lending").
		Infoln("borrow", amount, "debt:", position.Debt)

	return position, nil
}

// Repay pays debt back into the treasury escrow. Paying more than the
// outstanding debt is rejected with ErrInvalidAmount rather than refunded.
func (s *lendingService) Repay(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*core.Position, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	protocol, position, err := s.loadPosition(ctx, tokenID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.accrue(position, protocol, now)

	if amount.GreaterThan(position.Debt) {
		return nil, core.ErrInvalidAmount
	}

	if err := s.walletStore.Transfer(ctx, tx, userID, protocol.TreasuryUserID(), amount); err != nil {
		return nil, err
	}

	position.Debt = position.Debt.Sub(amount)
	if err := s.savePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (s *lendingService) Liquidate(ctx context.Context, tx *db.DB, tokenID, liquidator, account string) (*core.Position, error) {
	protocol, position, err := s.loadPosition(ctx, tokenID, account)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.accrue(position, protocol, now)

	priceUSD, rate, err := s.quote(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	if !engine.Liquidatable(position.Collateral, position.Debt, priceUSD, rate, protocol.LiquidationThreshold) {
		return nil, core.ErrNotLiquidatable
	}

	seizure := engine.Seize(position.Collateral, position.Debt, priceUSD, rate, protocol.LiquidationFeeProtocol, protocol.LiquidationFeeSender)

	// debt cover and protocol fee stay in treasury custody, now unencumbered.
	// only the liquidator incentive moves.
	if seizure.SenderFeeTokens.GreaterThan(decimal.Zero) {
		if err := s.tokenStore.Transfer(ctx, tx, tokenID, protocol.TreasuryUserID(), liquidator, seizure.SenderFeeTokens); err != nil {
			return nil, err
		}
	}

	position.Collateral = position.Collateral.Sub(seizure.Total())
	position.Debt = decimal.Zero
	if err := s.savePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "lending").
		Infoln("liquidate", account, "seized:", seizure.Total())

	return position, nil
}

// AccrueInterest folds the pending interest into the debt and persists the
// position. Positions without debt only get a fresh mark in memory and are
// left untouched in the store.
func (s *lendingService) AccrueInterest(ctx context.Context, tx *db.DB, position *core.Position) error {
	protocol, err := s.protocolStore.Find(ctx, position.ProtocolID)
	if gorm.IsRecordNotFoundError(err) {
		return core.ErrProtocolNotFound
	}
	if err != nil {
		return err
	}

	if position.Debt.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	s.accrue(position, protocol, time.Now())
	return s.positionStore.Update(ctx, tx, position)
}

func (s *lendingService) MaxWithdraw(ctx context.Context, tokenID, userID string) (decimal.Decimal, error) {
	protocol, position, err := s.loadPosition(ctx, tokenID, userID)
	if err != nil {
		return decimal.Zero, err
	}

	priceUSD, rate, err := s.quote(ctx, tokenID)
	if err != nil {
		return decimal.Zero, err
	}

	debt := position.Debt.Add(engine.Accrue(position.Debt, protocol.InterestRate, position.LastInterestAt, time.Now()))
	return engine.MaxWithdraw(position.Collateral, debt, priceUSD, rate, protocol.MaxLTV), nil
}

// accrue folds the interest since the last mark into the debt and stamps the
// mark, zero debt included
func (s *lendingService) accrue(position *core.Position, protocol *core.Protocol, now time.Time) {
	interest := engine.Accrue(position.Debt, protocol.InterestRate, position.LastInterestAt, now)
	position.Debt = position.Debt.Add(interest)
	position.LastInterestAt = now
}

func (s *lendingService) loadPosition(ctx context.Context, tokenID, userID string) (*core.Protocol, *core.Position, error) {
	protocol, err := s.protocolStore.FindByToken(ctx, tokenID)
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil, core.ErrProtocolNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	position, err := s.positionStore.Find(ctx, protocol.ID, userID)
	if gorm.IsRecordNotFoundError(err) {
		position = &core.Position{
			ProtocolID:     protocol.ID,
			UserID:         userID,
			Collateral:     decimal.Zero,
			Debt:           decimal.Zero,
			LastInterestAt: time.Now(),
		}
		return protocol, position, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return protocol, position, nil
}

func (s *lendingService) savePosition(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return s.positionStore.Save(ctx, tx, position)
	}

	return s.positionStore.Update(ctx, tx, position)
}

func (s *lendingService) quote(ctx context.Context, tokenID string) (decimal.Decimal, decimal.Decimal, error) {
	asset, err := s.assetStore.Find(ctx, tokenID)
	if gorm.IsRecordNotFoundError(err) {
		return decimal.Zero, decimal.Zero, core.ErrAssetNotFound
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	rate, err := s.priceService.LatestRate(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return asset.PriceUSD, rate, nil
}
