package facade

import (
	"context"
	"sync"

	"github.com/perkmart/perkmart/internal/domain/model"
	testhelpers "github.com/perkmart/perkmart/internal/test"
	"github.com/perkmart/perkmart/internal/usecase"
)

// BalanceFacadeStub simulates ledger read operations.
type BalanceFacadeStub struct {
	BalanceFn func(context.Context, int64) (*model.BalanceSummary, error)
	HistoryFn func(context.Context, int64) ([]model.PointEvent, error)
}

// Balance returns stored summary or default data.
func (s BalanceFacadeStub) Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.BalanceSummary{Points: 1000, Withdrawn: 500}, nil
}

// PointHistory returns preconfigured events.
func (s BalanceFacadeStub) PointHistory(ctx context.Context, userID int64) ([]model.PointEvent, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.PointEvent{{Points: 1000, Reason: model.ReasonSignupBonus}}, nil
}

// EarnFacadeStub simulates point earning operations.
type EarnFacadeStub struct {
	TasksFn    func(context.Context) ([]model.Task, error)
	CompleteFn func(context.Context, int64, int64) (int64, error)
	ScratchFn  func(context.Context, int64) (int64, error)
}

// Tasks returns the configured active task list.
func (s EarnFacadeStub) Tasks(ctx context.Context) ([]model.Task, error) {
	if s.TasksFn != nil {
		return s.TasksFn(ctx)
	}
	return []model.Task{{ID: 1, Title: "task", Reward: 100, Active: true}}, nil
}

// CompleteTask returns the configured reward.
func (s EarnFacadeStub) CompleteTask(ctx context.Context, userID, taskID int64) (int64, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, userID, taskID)
	}
	return 100, nil
}

// Scratch returns the configured scratch reward.
func (s EarnFacadeStub) Scratch(ctx context.Context, userID int64) (int64, error) {
	if s.ScratchFn != nil {
		return s.ScratchFn(ctx, userID)
	}
	return 42, nil
}

// WithdrawalFacadeStub simulates redemption operations.
type WithdrawalFacadeStub struct {
	SubmitFn func(context.Context, int64, int64, model.VoucherType) (*model.WithdrawRequest, error)
	ListFn   func(context.Context, int64) ([]model.WithdrawRequest, error)
}

// SubmitWithdrawal executes configured submission handler.
func (s WithdrawalFacadeStub) SubmitWithdrawal(ctx context.Context, userID, points int64, voucherType model.VoucherType) (*model.WithdrawRequest, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, points, voucherType)
	}
	return &model.WithdrawRequest{ID: 1, UserID: userID, Points: points, VoucherType: voucherType, Status: model.WithdrawalStatusProcessing}, nil
}

// Withdrawals returns preconfigured history.
func (s WithdrawalFacadeStub) Withdrawals(ctx context.Context, userID int64) ([]model.WithdrawRequest, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.WithdrawRequest{{ID: 1, UserID: userID, Points: 10000, Status: model.WithdrawalStatusProcessing}}, nil
}

// AdminFacadeStub simulates operator actions.
type AdminFacadeStub struct {
	ResolveFn    func(context.Context, []usecase.Resolution) []usecase.ResolutionResult
	PendingFn    func(context.Context) ([]model.PendingWithdrawal, error)
	AddCodesFn   func(context.Context, []model.NewCode) (int, error)
	StandingFn   func(context.Context, int64, model.Standing) error
	PauseFn      func(context.Context, bool) error
	CreateTaskFn func(context.Context, string, int64) (*model.Task, error)
}

// ResolveWithdrawals applies the configured handler or approves everything.
func (s AdminFacadeStub) ResolveWithdrawals(ctx context.Context, items []usecase.Resolution) []usecase.ResolutionResult {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, items)
	}
	results := make([]usecase.ResolutionResult, 0, len(items))
	for _, it := range items {
		results = append(results, usecase.ResolutionResult{RequestID: it.RequestID, Outcome: usecase.OutcomeApplied})
	}
	return results
}

// PendingWithdrawals returns the configured queue.
func (s AdminFacadeStub) PendingWithdrawals(ctx context.Context) ([]model.PendingWithdrawal, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx)
	}
	return nil, nil
}

// AddCodes reports all submitted codes as added.
func (s AdminFacadeStub) AddCodes(ctx context.Context, codes []model.NewCode) (int, error) {
	if s.AddCodesFn != nil {
		return s.AddCodesFn(ctx, codes)
	}
	return len(codes), nil
}

// SetStanding executes configured handler.
func (s AdminFacadeStub) SetStanding(ctx context.Context, userID int64, standing model.Standing) error {
	if s.StandingFn != nil {
		return s.StandingFn(ctx, userID, standing)
	}
	return nil
}

// SetRedemptionPaused executes configured handler.
func (s AdminFacadeStub) SetRedemptionPaused(ctx context.Context, paused bool) error {
	if s.PauseFn != nil {
		return s.PauseFn(ctx, paused)
	}
	return nil
}

// CreateTask returns a task built from the arguments.
func (s AdminFacadeStub) CreateTask(ctx context.Context, title string, reward int64) (*model.Task, error) {
	if s.CreateTaskFn != nil {
		return s.CreateTaskFn(ctx, title, reward)
	}
	return &model.Task{ID: 1, Title: title, Reward: reward, Active: true}, nil
}

// RewardsFacadeStub aggregates facade dependencies for HTTP layer tests.
type RewardsFacadeStub struct {
	testhelpers.AuthFacadeStub
	BalanceFacadeStub
	EarnFacadeStub
	WithdrawalFacadeStub
	AdminFacadeStub
}

// ReconcilerStub mimics worker interactions with the matcher use case.
type ReconcilerStub struct {
	MatchFn func(context.Context) (usecase.MatchReport, error)

	mu    sync.Mutex
	calls int
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerStub) Unlock() { s.mu.Unlock() }

// Calls reports how many passes ran.
func (s *ReconcilerStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MatchPending counts invocations and delegates to the override.
func (s *ReconcilerStub) MatchPending(ctx context.Context) (usecase.MatchReport, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.MatchFn != nil {
		return s.MatchFn(ctx)
	}
	return usecase.MatchReport{}, nil
}
