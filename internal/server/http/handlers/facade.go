package handlers

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, country, referrer string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	MarkVerified(ctx context.Context, userID int64) error
}

// BalanceFacade provides ledger read operations.
type BalanceFacade interface {
	Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error)
	PointHistory(ctx context.Context, userID int64) ([]model.PointEvent, error)
}

// EarnFacade provides point earning operations.
type EarnFacade interface {
	Tasks(ctx context.Context) ([]model.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (int64, error)
	Scratch(ctx context.Context, userID int64) (int64, error)
}

// WithdrawalFacade provides redemption operations exposed via HTTP.
type WithdrawalFacade interface {
	SubmitWithdrawal(ctx context.Context, userID, points int64, voucherType model.VoucherType) (*model.WithdrawRequest, error)
	Withdrawals(ctx context.Context, userID int64) ([]model.WithdrawRequest, error)
}

// AdminFacade provides operator actions.
type AdminFacade interface {
	ResolveWithdrawals(ctx context.Context, items []usecase.Resolution) []usecase.ResolutionResult
	PendingWithdrawals(ctx context.Context) ([]model.PendingWithdrawal, error)
	AddCodes(ctx context.Context, codes []model.NewCode) (int, error)
	SetStanding(ctx context.Context, userID int64, standing model.Standing) error
	SetRedemptionPaused(ctx context.Context, paused bool) error
	CreateTask(ctx context.Context, title string, reward int64) (*model.Task, error)
}

// RewardsFacade aggregates the full set of operations used across handlers.
type RewardsFacade interface {
	AuthFacade
	BalanceFacade
	EarnFacade
	WithdrawalFacade
	AdminFacade
}
