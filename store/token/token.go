package token

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type tokenStore struct {
	db *db.DB
}

// New new token ledger store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().AutoMigrate(core.TokenBalance{}).Error; err != nil {
			return err
		}

		if err := db.Update().AutoMigrate(core.TokenAllowance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func balanceOf(tx *db.DB, tokenID, userID string) (*core.TokenBalance, error) {
	var balance core.TokenBalance
	err := tx.Update().Where("token_id=? and user_id=?", tokenID, userID).First(&balance).Error
	if gorm.IsRecordNotFoundError(err) {
		return &core.TokenBalance{TokenID: tokenID, UserID: userID, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func saveBalance(tx *db.DB, balance *core.TokenBalance) error {
	if balance.ID == 0 {
		return tx.Update().Create(balance).Error
	}

	return tx.Update().Model(core.TokenBalance{}).Where("id=?", balance.ID).
		Update("amount", balance.Amount).Error
}

func (s *tokenStore) MintTo(ctx context.Context, tx *db.DB, tokenID, owner string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	balance, err := balanceOf(tx, tokenID, owner)
	if err != nil {
		return err
	}

	balance.Amount = balance.Amount.Add(amount)
	return saveBalance(tx, balance)
}

func (s *tokenStore) Transfer(ctx context.Context, tx *db.DB, tokenID, from, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	fromBalance, err := balanceOf(tx, tokenID, from)
	if err != nil {
		return err
	}

	if fromBalance.Amount.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	toBalance, err := balanceOf(tx, tokenID, to)
	if err != nil {
		return err
	}

	fromBalance.Amount = fromBalance.Amount.Sub(amount)
	toBalance.Amount = toBalance.Amount.Add(amount)

	if err := saveBalance(tx, fromBalance); err != nil {
		return err
	}

	return saveBalance(tx, toBalance)
}

func (s *tokenStore) TransferFrom(ctx context.Context, tx *db.DB, tokenID, owner, spender, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	var allowance core.TokenAllowance
	err := tx.Update().Where("token_id=? and owner=? and spender=?", tokenID, owner, spender).First(&allowance).Error
	if gorm.IsRecordNotFoundError(err) || (err == nil && allowance.Amount.LessThan(amount)) {
		return core.ErrInsufficientAllowance
	}
	if err != nil {
		return err
	}

	if err := s.Transfer(ctx, tx, tokenID, owner, to, amount); err != nil {
		return err
	}

	allowance.Amount = allowance.Amount.Sub(amount)
	return tx.Update().Model(core.TokenAllowance{}).Where("id=?", allowance.ID).
		Update("amount", allowance.Amount).Error
}

func (s *tokenStore) Approve(ctx context.Context, tx *db.DB, tokenID, owner, spender string, amount decimal.Decimal) error {
	if amount.LessThan(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	var allowance core.TokenAllowance
	err := tx.Update().Where("token_id=? and owner=? and spender=?", tokenID, owner, spender).First(&allowance).Error
	if gorm.IsRecordNotFoundError(err) {
		allowance = core.TokenAllowance{TokenID: tokenID, Owner: owner, Spender: spender, Amount: amount}
		return tx.Update().Create(&allowance).Error
	}
	if err != nil {
		return err
	}

	return tx.Update().Model(core.TokenAllowance{}).Where("id=?", allowance.ID).
		Update("amount", amount).Error
}

func (s *tokenStore) Allowance(ctx context.Context, tokenID, owner, spender string) (decimal.Decimal, error) {
	var allowance core.TokenAllowance
	err := s.db.View().Where("token_id=? and owner=? and spender=?", tokenID, owner, spender).First(&allowance).Error
	if gorm.IsRecordNotFoundError(err) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return allowance.Amount, nil
}

func (s *tokenStore) BalanceOf(ctx context.Context, tokenID, userID string) (decimal.Decimal, error) {
	var balance core.TokenBalance
	err := s.db.View().Where("token_id=? and user_id=?", tokenID, userID).First(&balance).Error
	if gorm.IsRecordNotFoundError(err) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return balance.Amount, nil
}
