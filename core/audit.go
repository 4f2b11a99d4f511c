package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// audit operations
const (
	OpCreateAssetAndProtocol = "create_asset_and_protocol"
	OpUpdatePrice            = "update_price"
	OpBuyTokens              = "buy_tokens"
	OpSellTokens             = "sell_tokens"
	OpClaimTokenSales        = "claim_token_sales"
	OpClaimInitialValue      = "claim_initial_value"
	OpDeposit                = "deposit"
	OpWithdraw               = "withdraw"
	OpBorrow                 = "borrow"
	OpRepay                  = "repay"
	OpLiquidate              = "liquidate"
)

// Audit structured record of one state changing operation, appended after the
// operation committed or aborted
type Audit struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Operation string    `sql:"size:64;index:operation_idx" json:"operation"`
	Actor     string    `sql:"size:64;index:actor_idx" json:"actor"`
	TokenID   string    `sql:"size:36;index:audit_token_idx" json:"token_id,omitempty"`
	Amounts   string    `sql:"type:varchar(512)" json:"amounts,omitempty"`
	Outcome   string    `sql:"size:128" json:"outcome"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IAuditStore audit store interface
type IAuditStore interface {
	Append(ctx context.Context, tx *db.DB, audit *Audit) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Audit, error)
}
