package domain

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrOrderNotJoinable   = errors.New("order is not joinable")
	ErrSelfMatch          = errors.New("cannot match your own order")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrMenuNotFound       = errors.New("menu not found in store")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrForbidden          = errors.New("forbidden")
	ErrCartStoreMismatch  = errors.New("cart items must come from a single store")
	ErrBelowMinimumOrder  = errors.New("total is below store minimum order")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidSplitType   = errors.New("invalid split type")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidID          = errors.New("invalid id")
)
