package model

import "time"

// RedeemCode is a single gift voucher code held in inventory.
// A used code stays associated with exactly one withdrawal forever.
type RedeemCode struct {
	ID          int64
	Code        string
	Points      int64
	VoucherType VoucherType
	Used        bool
	CreatedAt   time.Time
	UsedAt      *time.Time
}

// NewCode describes a code submitted through the admin bulk-add flow.
type NewCode struct {
	Code        string
	Points      int64
	VoucherType VoucherType
}
