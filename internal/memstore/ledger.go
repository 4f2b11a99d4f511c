package memstore

import (
	"context"
	"sync"

	"fractional/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type balanceKey struct {
	tokenID string
	userID  string
}

type allowanceKey struct {
	tokenID string
	owner   string
	spender string
}

// TokenStore in-memory core.ITokenStore
type TokenStore struct {
	mu         sync.Mutex
	balances   map[balanceKey]decimal.Decimal
	allowances map[allowanceKey]decimal.Decimal
}

// NewTokenStore new in-memory token ledger
func NewTokenStore() *TokenStore {
	return &TokenStore{
		balances:   map[balanceKey]decimal.Decimal{},
		allowances: map[allowanceKey]decimal.Decimal{},
	}
}

func (s *TokenStore) MintTo(ctx context.Context, tx *db.DB, tokenID, owner string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := balanceKey{tokenID, owner}
	s.balances[key] = s.balances[key].Add(amount)
	return nil
}

func (s *TokenStore) Transfer(ctx context.Context, tx *db.DB, tokenID, from, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transfer(tokenID, from, to, amount)
}

func (s *TokenStore) transfer(tokenID, from, to string, amount decimal.Decimal) error {
	fromKey := balanceKey{tokenID, from}
	if s.balances[fromKey].LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	toKey := balanceKey{tokenID, to}
	s.balances[fromKey] = s.balances[fromKey].Sub(amount)
	s.balances[toKey] = s.balances[toKey].Add(amount)
	return nil
}

func (s *TokenStore) TransferFrom(ctx context.Context, tx *db.DB, tokenID, owner, spender, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := allowanceKey{tokenID, owner, spender}
	if s.allowances[key].LessThan(amount) {
		return core.ErrInsufficientAllowance
	}

	if err := s.transfer(tokenID, owner, to, amount); err != nil {
		return err
	}

	s.allowances[key] = s.allowances[key].Sub(amount)
	return nil
}

func (s *TokenStore) Approve(ctx context.Context, tx *db.DB, tokenID, owner, spender string, amount decimal.Decimal) error {
	if amount.LessThan(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.allowances[allowanceKey{tokenID, owner, spender}] = amount
	return nil
}

func (s *TokenStore) Allowance(ctx context.Context, tokenID, owner, spender string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allowances[allowanceKey{tokenID, owner, spender}], nil
}

func (s *TokenStore) BalanceOf(ctx context.Context, tokenID, userID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[balanceKey{tokenID, userID}], nil
}

// WalletStore in-memory core.IWalletStore
type WalletStore struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

// NewWalletStore new in-memory native currency ledger
func NewWalletStore() *WalletStore {
	return &WalletStore{balances: map[string]decimal.Decimal{}}
}

func (s *WalletStore) Deposit(ctx context.Context, tx *db.DB, userID string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userID] = s.balances[userID].Add(amount)
	return nil
}

func (s *WalletStore) Transfer(ctx context.Context, tx *db.DB, from, to string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[from].LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	s.balances[from] = s.balances[from].Sub(amount)
	s.balances[to] = s.balances[to].Add(amount)
	return nil
}

func (s *WalletStore) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[userID], nil
}

var _ core.ITokenStore = (*TokenStore)(nil)
var _ core.IWalletStore = (*WalletStore)(nil)
