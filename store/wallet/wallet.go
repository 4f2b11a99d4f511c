package wallet

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type walletStore struct {
	db *db.DB
}

// New new wallet store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.WalletAccount{})
		if err := tx.AutoMigrate(core.WalletAccount{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func account(tx *db.DB, userID string) (*core.WalletAccount, error) {
	var acc core.WalletAccount
	err := tx.Update().Where("user_id=?", userID).First(&acc).Error
	if gorm.IsRecordNotFoundError(err) {
		return &core.WalletAccount{UserID: userID, Balance: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func save(tx *db.DB, acc *core.WalletAccount) error {
	if acc.ID == 0 {
		return tx.Update().Create(acc).Error
	}

	return tx.Update().Model(core.WalletAccount{}).Where("id=?", acc.ID).
		Update("balance", acc.Balance).Error
}

func (s *walletStore) Deposit(ctx context.Context, tx *db.DB, userID string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	acc, err := account(tx, userID)
	if err != nil {
		return err
	}

	acc.Balance = acc.Balance.Add(amount)
	return save(tx, acc)
}

func (s *walletStore) Transfer(ctx context.Context, tx *db.DB, from, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	fromAcc, err := account(tx, from)
	if err != nil {
		return err
	}

	if fromAcc.Balance.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	toAcc, err := account(tx, to)
	if err != nil {
		return err
	}

	fromAcc.Balance = fromAcc.Balance.Sub(amount)
	toAcc.Balance = toAcc.Balance.Add(amount)

	if err := save(tx, fromAcc); err != nil {
		return err
	}

	return save(tx, toAcc)
}

func (s *walletStore) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var acc core.WalletAccount
	err := s.db.View().Where("user_id=?", userID).First(&acc).Error
	if gorm.IsRecordNotFoundError(err) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return acc.Balance, nil
}
