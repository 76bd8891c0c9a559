package model

import "time"

// WithdrawalStatus describes the lifecycle of a withdrawal request.
// Processing is the only non-terminal state.
type WithdrawalStatus string

const (
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusSuccess    WithdrawalStatus = "success"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusSuccess || s == WithdrawalStatusRejected
}

// VoucherType enumerates the gift voucher providers a withdrawal can target.
type VoucherType string

const (
	VoucherTypeAmazon     VoucherType = "amazon"
	VoucherTypeGooglePlay VoucherType = "google_play"
	VoucherTypePaytm      VoucherType = "paytm"
)

// ValidVoucherType reports whether v is a recognized voucher type.
func ValidVoucherType(v VoucherType) bool {
	switch v {
	case VoucherTypeAmazon, VoucherTypeGooglePlay, VoucherTypePaytm:
		return true
	}
	return false
}

// WithdrawRequest is a user's intent to redeem points for a voucher.
// Code is filled only when the request reaches success.
type WithdrawRequest struct {
	ID          int64
	UserID      int64
	Points      int64
	Payout      float64
	VoucherType VoucherType
	Code        string
	Status      WithdrawalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PendingWithdrawal is a processing request joined with the owner's standing,
// as scanned by the reconciliation matcher.
type PendingWithdrawal struct {
	WithdrawRequest
	OwnerStanding Standing
}
