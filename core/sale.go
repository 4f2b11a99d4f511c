package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Sale escrowed public sale state of one asset
type Sale struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID string `sql:"size:36;unique_index:sale_token_idx" json:"token_id"`
	// 未售出的托管量
	HeldSupply decimal.Decimal `sql:"type:decimal(20,8)" json:"held_supply"`
	// native currency raised from public buys, claimable by the creator
	FundsRaised decimal.Decimal `sql:"type:decimal(20,8)" json:"funds_raised"`
	// seed funding escrowed until the full supply is sold
	SeedFunds   decimal.Decimal `sql:"type:decimal(20,8)" json:"seed_funds"`
	Creator     string          `sql:"size:36;index:creator_idx" json:"creator"`
	SeedClaimed bool            `sql:"default:false" json:"seed_claimed"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ISaleStore sale store interface
type ISaleStore interface {
	Create(ctx context.Context, tx *db.DB, sale *Sale) error
	Find(ctx context.Context, tokenID string) (*Sale, error)
	FindByCreator(ctx context.Context, creator string) ([]*Sale, error)
	Update(ctx context.Context, tx *db.DB, sale *Sale) error
}

// CreateProtocolReq all parameters of one atomic asset + protocol creation
type CreateProtocolReq struct {
	Supply               decimal.Decimal `json:"supply"`
	Name                 string          `json:"name"`
	Symbol               string          `json:"symbol"`
	PriceUSD             decimal.Decimal `json:"price_usd"`
	MaxLTV               decimal.Decimal `json:"max_ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	LiqFeeProtocol       decimal.Decimal `json:"liq_fee_protocol"`
	LiqFeeSender         decimal.Decimal `json:"liq_fee_sender"`
	BorrowThreshold      decimal.Decimal `json:"borrow_threshold"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	Funding              decimal.Decimal `json:"funding"`
}

// IIssuanceService top level orchestrator: mints assets, provisions their
// credit line, runs the public sale and gates the creator claims
type IIssuanceService interface {
	// CreateAssetAndProtocol atomically creates the asset record, mints the
	// supply into controller custody, provisions the bound lending protocol
	// and escrows the seed funding. Either every step commits or none does.
	CreateAssetAndProtocol(ctx context.Context, tx *db.DB, creator string, req *CreateProtocolReq) (*Sale, error)
	BuyTokens(ctx context.Context, tx *db.DB, tokenID, buyer string, amount, payment decimal.Decimal) (*Sale, error)
	SellTokens(ctx context.Context, tx *db.DB, tokenID, seller string, amount, expectedProceeds decimal.Decimal) (*Sale, error)
	ClaimTokenSales(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error)
	ClaimInitialValue(ctx context.Context, tx *db.DB, tokenID, caller string) (decimal.Decimal, error)
	GetSale(ctx context.Context, tokenID string) (*Sale, error)
}
