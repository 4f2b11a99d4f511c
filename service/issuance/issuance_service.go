package issuance

import (
	"context"

	"fractional/core"
	"fractional/internal/engine"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type issuanceService struct {
	minFunding     decimal.Decimal
	saleStore      core.ISaleStore
	tokenStore     core.ITokenStore
	walletStore    core.IWalletStore
	assetService   core.IAssetService
	lendingService core.ILendingService
	priceService   core.IPriceOracleService
}

// New new issuance controller service
func New(
	minFunding decimal.Decimal,
	saleStore core.ISaleStore,
	tokenStore core.ITokenStore,
	walletStore core.IWalletStore,
	assetSrv core.IAssetService,
	lendingSrv core.ILendingService,
	priceSrv core.IPriceOracleService,
) core.IIssuanceService {
	return &issuanceService{
		minFunding:     minFunding,
		saleStore:      saleStore,
		tokenStore:     tokenStore,
		walletStore:    walletStore,
		assetService:   assetSrv,
		lendingService: lendingSrv,
		priceService:   priceSrv,
	}
}

func (s *issuanceService) CreateAssetAndProtocol(ctx context.Context, tx *db.DB, creator string, req *core.CreateProtocolReq) (*core.Sale, error) {
	// the funding floor holds even when the configured minimum is zero
	if req.Funding.LessThanOrEqual(decimal.Zero) || req.Funding.LessThan(s.minFunding) {
		return nil, core.ErrInsufficientFunding
	}

	// supply is minted straight into controller custody
	asset, err := s.assetService.CreateAsset(ctx, tx, req.Supply, req.Name, req.Symbol, req.PriceUSD, core.ControllerUserID)
	if err != nil {
		return nil, err
	}

	protocol, err := s.lendingService.CreateProtocol(ctx, tx, &core.Protocol{
		TokenID:                asset.TokenID,
		MaxLTV:                 req.MaxLTV,
		LiquidationThreshold:   req.LiquidationThreshold,
		LiquidationFeeProtocol: req.LiqFeeProtocol,
		LiquidationFeeSender:   req.LiqFeeSender,
		BorrowThreshold:        req.BorrowThreshold,
		InterestRate:           req.InterestRate,
	})
	if err != nil {
		return nil, err
	}

	// seed funding moves into the treasury escrow in the same transaction, so
	// a failed creation never strands the creator funds
	if err := s.walletStore.Transfer(ctx, tx, creator, protocol.TreasuryUserID(), req.Funding); err != nil {
		return nil, err
	}

	sale := &core.Sale{
		TokenID:     asset.TokenID,
		HeldSupply:  req.Supply,
		FundsRaised: decimal.Zero,
		SeedFunds:   req.Funding,
		Creator:     creator,
		SeedClaimed: false,
	}

	if err := s.saleStore.Create(ctx, tx, sale); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "issuance").
		Infoln("created asset", asset.TokenID, "protocol", protocol.ID)

	return sale, nil
}

func (s *issuanceService) BuyTokens(ctx context.Context, tx *db.DB, tokenID, buyer string, amount, payment decimal.Decimal) (*core.Sale, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	sale, err := s.GetSale(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(sale.HeldSupply) {
		return nil, core.ErrInsufficientBalance
	}

	cost, err := s.cost(ctx, tokenID, amount)
	if err != nil {
		return nil, err
	}

	if payment.LessThan(cost) {
		return nil, core.ErrInsufficientFunding
	}

	// only the cost is pulled, the overpayment never leaves the buyer
	if err := s.walletStore.Transfer(ctx, tx, buyer, core.ControllerUserID, cost); err != nil {
		return nil, err
	}

	if err := s.tokenStore.Transfer(ctx, tx, tokenID, core.ControllerUserID, buyer, amount); err != nil {
		return nil, err
	}

	sale.HeldSupply = sale.HeldSupply.Sub(amount)
	sale.FundsRaised = sale.FundsRaised.Add(cost)
	if err := s.saleStore.Update(ctx, tx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *issuanceService) SellTokens(ctx context.Context, tx *db.DB, tokenID, seller string, amount, expectedProceeds decimal.Decimal) (*core.Sale, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	sale, err := s.GetSale(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	proceeds, err := s.cost(ctx, tokenID, amount)
	if err != nil {
		return nil, err
	}

	if proceeds.LessThan(expectedProceeds) {
		return nil, core.ErrInsufficientFunding
	}

	if err := s.tokenStore.TransferFrom(ctx, tx, tokenID, seller, core.ControllerUserID, core.ControllerUserID, amount); err != nil {
		return nil, err
	}

	// fails with ErrInsufficientBalance when the controller cannot cover the
	// payout
	if err := s.walletStore.Transfer(ctx, tx, core.ControllerUserID, seller, proceeds); err != nil {
		return nil, err
	}

	sale.HeldSupply = sale.HeldSupply.Add(amount)
	if proceeds.GreaterThan(sale.FundsRaised) {
		sale.FundsRaised = decimal.Zero
	} else {
		sale.FundsRaised = sale.FundsRaised.Sub(proceeds)
	}
	if err := s.saleStore.Update(ctx, tx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *issuanceService) ClaimTokenSales(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error) {
	sale, err := s.GetSale(ctx, tokenID)
	if err != nil {
		return decimal.Zero, err
	}

	if sale.Creator != caller {
		return decimal.Zero, core.ErrNotCreator
	}

	claimed := sale.FundsRaised
	if claimed.GreaterThan(decimal.Zero) {
		if err := s.walletStore.Transfer(ctx, tx, core.ControllerUserID, caller, claimed); err != nil {
			return decimal.Zero, err
		}
	}

	sale.FundsRaised = decimal.Zero
	if err := s.saleStore.Update(ctx, tx, sale); err != nil {
		return decimal.Zero, err
	}

	return claimed, nil
}

func (s *issuanceService) ClaimInitialValue(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error) {
	sale, err := s.GetSale(ctx, tokenID)
	if err != nil {
		return decimal.Zero, err
	}

	if sale.Creator != caller {
		return decimal.Zero, core.ErrNotCreator
	}

	if sale.SeedClaimed || sale.HeldSupply.GreaterThan(decimal.Zero) {
		return decimal.Zero, core.ErrNotClaimable
	}

	if err := s.walletStore.Transfer(ctx, tx, core.ProtocolTreasuryUserID(tokenID), caller, sale.SeedFunds); err != nil {
		return decimal.Zero, err
	}

	sale.SeedClaimed = true
	if err := s.saleStore.Update(ctx, tx, sale); err != nil {
		return decimal.Zero, err
	}

	return sale.SeedFunds, nil
}

func (s *issuanceService) GetSale(ctx context.Context, tokenID string) (*core.Sale, error) {
	sale, err := s.saleStore.Find(ctx, tokenID)
	if gorm.IsRecordNotFoundError(err) {
		return nil, core.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *issuanceService) cost(ctx context.Context, tokenID string, amount decimal.Decimal) (decimal.Decimal, error) {
	asset, err := s.assetService.GetAsset(ctx, tokenID)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := s.priceService.LatestRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return engine.Cost(amount, asset.PriceUSD, rate), nil
}
