package dto

import "time"

// WithdrawSubmitRequest describes a withdrawal submission payload.
type WithdrawSubmitRequest struct {
	Points      int64  `json:"points"`
	VoucherType string `json:"voucher_type"`
}

// WithdrawalResponse describes a withdrawal request entry.
type WithdrawalResponse struct {
	ID          int64     `json:"id"`
	Points      int64     `json:"points"`
	Payout      float64   `json:"payout"`
	VoucherType string    `json:"voucher_type"`
	Code        string    `json:"code,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PendingWithdrawalResponse is the admin view of a processing request.
type PendingWithdrawalResponse struct {
	WithdrawalResponse
	UserID        int64  `json:"user_id"`
	OwnerStanding string `json:"owner_standing"`
}
