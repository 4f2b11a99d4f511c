package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrInvalidArgument malformed or zero argument
	ErrInvalidArgument ErrorCode = 100002

	// ErrAssetNotFound no asset record
	ErrAssetNotFound ErrorCode = 100100
	// ErrProtocolNotFound no lending protocol
	ErrProtocolNotFound ErrorCode = 100101
	// ErrSaleNotFound no sale record
	ErrSaleNotFound ErrorCode = 100102

	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100200
	// ErrInsufficientFunding payment below the required amount
	ErrInsufficientFunding ErrorCode = 100201
	// ErrInsufficientBalance token transfer exceeds balance
	ErrInsufficientBalance ErrorCode = 100202
	// ErrInsufficientAllowance token transfer exceeds allowance
	ErrInsufficientAllowance ErrorCode = 100203
	// ErrInsufficientCollateral borrow exceeds the collateral ceiling
	ErrInsufficientCollateral ErrorCode = 100204
	// ErrWithdrawExceedsLimit withdraw would break the loan-to-value limit
	ErrWithdrawExceedsLimit ErrorCode = 100205
	// ErrBelowBorrowThreshold borrow below the protocol minimum
	ErrBelowBorrowThreshold ErrorCode = 100206
	// ErrNotLiquidatable position is still within the liquidation threshold
	ErrNotLiquidatable ErrorCode = 100207

	// ErrNotCreator caller is not the asset creator
	ErrNotCreator ErrorCode = 100300
	// ErrNotClaimable seed funds are not claimable yet
	ErrNotClaimable ErrorCode = 100301
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Msg human readable message of the error code
func (e ErrorCode) Msg() string {
	switch e {
	case ErrOperationForbidden:
		return "operation forbidden"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrAssetNotFound:
		return "asset not found"
	case ErrProtocolNotFound:
		return "protocol not found"
	case ErrSaleNotFound:
		return "sale not found"
	case ErrInvalidAmount:
		return "amount must be > 0"
	case ErrInsufficientFunding:
		return "not enough funding"
	case ErrInsufficientBalance:
		return "transfer amount exceeds balance"
	case ErrInsufficientAllowance:
		return "insufficient allowance"
	case ErrInsufficientCollateral:
		return "not enough collateral"
	case ErrWithdrawExceedsLimit:
		return "withdraw exceeds the collateral limit"
	case ErrBelowBorrowThreshold:
		return "borrow below the minimum threshold"
	case ErrNotLiquidatable:
		return "position is not liquidatable"
	case ErrNotCreator:
		return "caller is not the creator"
	case ErrNotClaimable:
		return "not claimable"
	default:
		return "unknown error"
	}
}
