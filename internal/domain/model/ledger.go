package model

import "time"

// EarnReason tags the source of a point balance mutation.
type EarnReason string

const (
	ReasonSignupBonus EarnReason = "signup_bonus"
	ReasonTask        EarnReason = "task"
	ReasonScratchCard EarnReason = "scratch_card"
	ReasonReferral    EarnReason = "referral"
	ReasonWithdrawal  EarnReason = "withdrawal"
)

// PointEvent records one signed balance mutation. Every change to
// User.Points writes exactly one event in the same transaction.
type PointEvent struct {
	ID        int64
	UserID    int64
	Points    int64
	Reason    EarnReason
	Reference string
	CreatedAt time.Time
}

// BalanceSummary aggregates a user's current points and lifetime withdrawals.
type BalanceSummary struct {
	Points    int64
	Withdrawn int64
}
