package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ControllerUserID wallet account holding controller custody: unsold supply
// payments and escrowed sale proceeds
const ControllerUserID = "issuance-controller"

// WalletAccount native currency account row
type WalletAccount struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:64;unique_index:wallet_user_idx" json:"user_id"`
	Balance   decimal.Decimal `sql:"type:decimal(24,8)" json:"balance"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IWalletStore native currency ledger.
//
// Transfer fails with ErrInsufficientBalance when from cannot cover amount.
// Deposit credits an account out of thin air and exists for funding test and
// admin accounts; the protocol flows only ever move existing balances.
type IWalletStore interface {
	Deposit(ctx context.Context, tx *db.DB, userID string, amount decimal.Decimal) error
	Transfer(ctx context.Context, tx *db.DB, from, to string, amount decimal.Decimal) error
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}
