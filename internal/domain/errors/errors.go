package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotVerified         = errors.New("user not verified")
	ErrBanned              = errors.New("user banned")
	ErrUnderReview         = errors.New("user under review")
	ErrCountryNotSet       = errors.New("country not set")
	ErrInvalidDenomination = errors.New("invalid denomination")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRedemptionPaused    = errors.New("redemption paused")
	ErrInvalidVoucherType  = errors.New("invalid voucher type")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrCodeRequired        = errors.New("voucher code required")
	ErrConflict            = errors.New("state conflict")
)
