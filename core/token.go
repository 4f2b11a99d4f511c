package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TokenBalance fungible token balance row
type TokenBalance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID   string          `sql:"size:36;unique_index:token_user_idx" json:"token_id"`
	UserID    string          `sql:"size:36;unique_index:token_user_idx" json:"user_id"`
	Amount    decimal.Decimal `sql:"type:decimal(24,8)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TokenAllowance spender allowance row
type TokenAllowance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID   string          `sql:"size:36;unique_index:token_owner_spender_idx" json:"token_id"`
	Owner     string          `sql:"size:36;unique_index:token_owner_spender_idx" json:"owner"`
	Spender   string          `sql:"size:36;unique_index:token_owner_spender_idx" json:"spender"`
	Amount    decimal.Decimal `sql:"type:decimal(24,8)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITokenStore transferable balance ledger with allowances.
//
// Standard semantics: transfers fail with ErrInsufficientBalance, delegated
// transfers additionally with ErrInsufficientAllowance. Minting happens once
// per token at asset creation.
type ITokenStore interface {
	MintTo(ctx context.Context, tx *db.DB, tokenID, owner string, amount decimal.Decimal) error
	Transfer(ctx context.Context, tx *db.DB, tokenID, from, to string, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, tx *db.DB, tokenID, owner, spender, to string, amount decimal.Decimal) error
	Approve(ctx context.Context, tx *db.DB, tokenID, owner, spender string, amount decimal.Decimal) error
	Allowance(ctx context.Context, tokenID, owner, spender string) (decimal.Decimal, error)
	BalanceOf(ctx context.Context, tokenID, userID string) (decimal.Decimal, error)
}
