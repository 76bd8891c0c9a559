package app

import (
	"context"
	"errors"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/usecase"
)

// RewardsFacade is the single application surface consumed by the HTTP layer
// and the reconciliation worker.
type RewardsFacade struct {
	auth        *usecase.AuthUseCase
	balance     *usecase.BalanceUseCase
	earn        *usecase.EarnUseCase
	withdrawals *usecase.WithdrawalUseCase
	matcher     *usecase.MatcherUseCase
	admin       *usecase.AdminUseCase
}

func NewRewardsFacade(
	auth *usecase.AuthUseCase,
	balance *usecase.BalanceUseCase,
	earn *usecase.EarnUseCase,
	withdrawals *usecase.WithdrawalUseCase,
	matcher *usecase.MatcherUseCase,
	admin *usecase.AdminUseCase,
) *RewardsFacade {
	return &RewardsFacade{
		auth:        auth,
		balance:     balance,
		earn:        earn,
		withdrawals: withdrawals,
		matcher:     matcher,
		admin:       admin,
	}
}

func (f *RewardsFacade) Register(ctx context.Context, login, password, country, referrer string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, country, referrer)
	return token, err
}

func (f *RewardsFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *RewardsFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *RewardsFacade) MarkVerified(ctx context.Context, userID int64) error {
	return f.auth.MarkVerified(ctx, userID)
}

func (f *RewardsFacade) Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	summary, err := f.balance.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.BalanceSummary{}, nil
		}
		return nil, err
	}
	return summary, nil
}

func (f *RewardsFacade) PointHistory(ctx context.Context, userID int64) ([]model.PointEvent, error) {
	return f.balance.History(ctx, userID)
}

func (f *RewardsFacade) Tasks(ctx context.Context) ([]model.Task, error) {
	return f.earn.Tasks(ctx)
}

func (f *RewardsFacade) CompleteTask(ctx context.Context, userID, taskID int64) (int64, error) {
	return f.earn.CompleteTask(ctx, userID, taskID)
}

func (f *RewardsFacade) Scratch(ctx context.Context, userID int64) (int64, error) {
	return f.earn.Scratch(ctx, userID)
}

func (f *RewardsFacade) SubmitWithdrawal(ctx context.Context, userID, points int64, voucherType model.VoucherType) (*model.WithdrawRequest, error) {
	return f.withdrawals.Submit(ctx, userID, points, voucherType)
}

func (f *RewardsFacade) Withdrawals(ctx context.Context, userID int64) ([]model.WithdrawRequest, error) {
	return f.withdrawals.History(ctx, userID)
}

func (f *RewardsFacade) MatchPending(ctx context.Context) (usecase.MatchReport, error) {
	return f.matcher.MatchPending(ctx)
}

func (f *RewardsFacade) ResolveWithdrawals(ctx context.Context, items []usecase.Resolution) []usecase.ResolutionResult {
	return f.admin.ResolveBatch(ctx, items)
}

func (f *RewardsFacade) PendingWithdrawals(ctx context.Context) ([]model.PendingWithdrawal, error) {
	return f.admin.PendingWithdrawals(ctx)
}

func (f *RewardsFacade) AddCodes(ctx context.Context, codes []model.NewCode) (int, error) {
	return f.admin.AddCodes(ctx, codes)
}

func (f *RewardsFacade) SetStanding(ctx context.Context, userID int64, standing model.Standing) error {
	return f.admin.SetStanding(ctx, userID, standing)
}

func (f *RewardsFacade) SetRedemptionPaused(ctx context.Context, paused bool) error {
	return f.admin.SetRedemptionPaused(ctx, paused)
}

func (f *RewardsFacade) CreateTask(ctx context.Context, title string, reward int64) (*model.Task, error) {
	return f.admin.CreateTask(ctx, title, reward)
}
