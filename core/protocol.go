package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// Protocol lending & borrowing protocol bound to one asset token.
//
// Rate parameters are whole percents (80 means 80%), fixed at creation.
type Protocol struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID string `sql:"size:36;unique_index:protocol_token_idx" json:"token_id"`
	// 最大抵押率
	MaxLTV decimal.Decimal `sql:"type:decimal(20,8)" json:"max_ltv"`
	// 清算阈值, >= max_ltv
	LiquidationThreshold   decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	LiquidationFeeProtocol decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_fee_protocol"`
	LiquidationFeeSender   decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_fee_sender"`
	// 最小借款额
	BorrowThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"borrow_threshold"`
	// interest per year, whole percents
	InterestRate decimal.Decimal `sql:"type:decimal(20,8)" json:"interest_rate"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ProtocolTreasuryUserID account holding a protocol treasury: the seed fund
// escrow in native currency and the collateral custody in asset tokens.
// Derived deterministically from the token id.
func ProtocolTreasuryUserID(tokenID string) string {
	return uuid.Modify(tokenID, "protocol_treasury")
}

// TreasuryUserID wallet account holding the protocol treasury
func (p *Protocol) TreasuryUserID() string {
	return ProtocolTreasuryUserID(p.TokenID)
}

// IProtocolStore protocol store interface
type IProtocolStore interface {
	Create(ctx context.Context, tx *db.DB, protocol *Protocol) error
	Find(ctx context.Context, id uint64) (*Protocol, error)
	FindByToken(ctx context.Context, tokenID string) (*Protocol, error)
	All(ctx context.Context) ([]*Protocol, error)
}

// ILendingService lending engine interface, one protocol per asset token.
//
// Every mutating call accrues interest on the position first and stamps the
// interest mark, zero debt included.
type ILendingService interface {
	CreateProtocol(ctx context.Context, tx *db.DB, protocol *Protocol) (*Protocol, error)
	Deposit(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*Position, error)
	Withdraw(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*Position, error)
	Borrow(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*Position, error)
	Repay(ctx context.Context, tx *db.DB, tokenID, userID string, amount decimal.Decimal) (*Position, error)
	Liquidate(ctx context.Context, tx *db.DB, tokenID, liquidator, account string) (*Position, error)
	// AccrueInterest folds the pending interest of one position into its debt
	// and persists it. Used by the interest sweep worker.
	AccrueInterest(ctx context.Context, tx *db.DB, position *Position) error
	// MaxWithdraw max collateral redeemable while existing debt stays within
	// max ltv at the current oracle price
	MaxWithdraw(ctx context.Context, tokenID, userID string) (decimal.Decimal, error)
}
