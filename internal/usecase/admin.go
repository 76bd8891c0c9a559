package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// Resolution is one operator decision on a withdrawal request.
type Resolution struct {
	RequestID int64
	Status    model.WithdrawalStatus
	Code      string
}

// ResolutionOutcome classifies the handling of a single batch item.
type ResolutionOutcome string

const (
	OutcomeApplied ResolutionOutcome = "applied"
	OutcomeSkipped ResolutionOutcome = "skipped"
	OutcomeFailed  ResolutionOutcome = "failed"
)

// ResolutionResult reports the outcome of one batch item.
type ResolutionResult struct {
	RequestID int64
	Outcome   ResolutionOutcome
	Reason    string
}

// AdminUseCase implements operator actions: the bulk resolution gate, code
// inventory management, user standing transitions and operational flags.
type AdminUseCase struct {
	users       repository.UserRepository
	withdrawals repository.WithdrawalRepository
	codes       repository.RedeemCodeRepository
	tasks       repository.TaskRepository
	settings    repository.SettingsRepository
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository, withdrawals repository.WithdrawalRepository, codes repository.RedeemCodeRepository, tasks repository.TaskRepository, settings repository.SettingsRepository) *AdminUseCase {
	return &AdminUseCase{
		users:       users,
		withdrawals: withdrawals,
		codes:       codes,
		tasks:       tasks,
		settings:    settings,
	}
}

// ResolveBatch applies operator decisions item by item. Requests already in
// a terminal state are skipped, a success decision without an operator
// supplied code fails that item, and no single failure aborts the batch.
func (u *AdminUseCase) ResolveBatch(ctx context.Context, items []Resolution) []ResolutionResult {
	results := make([]ResolutionResult, 0, len(items))
	for _, item := range items {
		results = append(results, u.resolve(ctx, item))
	}
	return results
}

func (u *AdminUseCase) resolve(ctx context.Context, item Resolution) ResolutionResult {
	result := ResolutionResult{RequestID: item.RequestID}

	if !item.Status.Terminal() {
		result.Outcome = OutcomeFailed
		result.Reason = "target status must be terminal"
		return result
	}

	req, err := u.withdrawals.GetByID(ctx, item.RequestID)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = err.Error()
		return result
	}
	if req.Status.Terminal() {
		result.Outcome = OutcomeSkipped
		result.Reason = "already " + string(req.Status)
		return result
	}

	code := ""
	if item.Status == model.WithdrawalStatusSuccess {
		if item.Code == "" {
			result.Outcome = OutcomeFailed
			result.Reason = domainErrors.ErrCodeRequired.Error()
			return result
		}
		code = item.Code
	}

	if err := u.withdrawals.Resolve(ctx, item.RequestID, item.Status, code); err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			// Resolved by another actor between the read and the update.
			result.Outcome = OutcomeSkipped
			result.Reason = "already resolved"
			return result
		}
		result.Outcome = OutcomeFailed
		result.Reason = err.Error()
		return result
	}

	result.Outcome = OutcomeApplied
	return result
}

// PendingWithdrawals lists processing requests for the admin console.
func (u *AdminUseCase) PendingWithdrawals(ctx context.Context) ([]model.PendingWithdrawal, error) {
	return u.withdrawals.ListPending(ctx)
}

// AddCodes bulk-adds voucher codes to the inventory. Items without a code
// string get a generated one; duplicates are silently skipped by insertion.
// Returns the number of codes actually added.
func (u *AdminUseCase) AddCodes(ctx context.Context, codes []model.NewCode) (int, error) {
	prepared := make([]model.NewCode, 0, len(codes))
	for _, c := range codes {
		if c.Points <= 0 {
			return 0, domainErrors.ErrInvalidAmount
		}
		if !model.ValidVoucherType(c.VoucherType) {
			return 0, domainErrors.ErrInvalidVoucherType
		}
		if c.Code == "" {
			c.Code = uuid.NewString()
		}
		prepared = append(prepared, c)
	}
	if len(prepared) == 0 {
		return 0, nil
	}
	return u.codes.BulkAdd(ctx, prepared)
}

// SetStanding transitions a user between normal, under_review and banned.
func (u *AdminUseCase) SetStanding(ctx context.Context, userID int64, standing model.Standing) error {
	if !model.ValidStanding(standing) {
		return domainErrors.ErrConflict
	}
	return u.users.SetStanding(ctx, userID, standing)
}

// SetRedemptionPaused toggles the global redemption pause flag.
func (u *AdminUseCase) SetRedemptionPaused(ctx context.Context, paused bool) error {
	return u.settings.SetRedemptionPaused(ctx, paused)
}

// CreateTask publishes a new earning task.
func (u *AdminUseCase) CreateTask(ctx context.Context, title string, reward int64) (*model.Task, error) {
	if title == "" || reward <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.tasks.Create(ctx, title, reward)
}
