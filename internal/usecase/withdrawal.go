package usecase

import (
	"context"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// WithdrawalUseCase validates and creates withdrawal requests.
type WithdrawalUseCase struct {
	users         repository.UserRepository
	withdrawals   repository.WithdrawalRepository
	settings      repository.SettingsRepository
	pointsPerUnit int64
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(users repository.UserRepository, withdrawals repository.WithdrawalRepository, settings repository.SettingsRepository, pointsPerUnit int64) *WithdrawalUseCase {
	if pointsPerUnit <= 0 {
		pointsPerUnit = 1
	}
	return &WithdrawalUseCase{
		users:         users,
		withdrawals:   withdrawals,
		settings:      settings,
		pointsPerUnit: pointsPerUnit,
	}
}

// Submit validates the request and, on success, deducts the user's balance
// and creates a processing withdrawal in one transaction. Validation rules
// run in a fixed order and the first violated rule is reported; callers
// depend on which error surfaces first.
func (u *WithdrawalUseCase) Submit(ctx context.Context, userID, points int64, voucherType model.VoucherType) (*model.WithdrawRequest, error) {
	if points <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !usr.Verified {
		return nil, domainErrors.ErrNotVerified
	}
	if usr.Standing == model.StandingBanned {
		return nil, domainErrors.ErrBanned
	}
	if usr.Standing == model.StandingUnderReview {
		return nil, domainErrors.ErrUnderReview
	}
	if usr.Country == "" {
		return nil, domainErrors.ErrCountryNotSet
	}
	if !model.ValidDenomination(usr.Country, points) {
		return nil, domainErrors.ErrInvalidDenomination
	}
	// Advisory read so the balance rule reports in order; the guarded
	// deduction below re-checks atomically.
	if usr.Points < points {
		return nil, domainErrors.ErrInsufficientBalance
	}

	paused, err := u.settings.RedemptionPaused(ctx)
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, domainErrors.ErrRedemptionPaused
	}
	if !model.ValidVoucherType(voucherType) {
		return nil, domainErrors.ErrInvalidVoucherType
	}

	payout := float64(points) / float64(u.pointsPerUnit)
	return u.withdrawals.Submit(ctx, userID, points, payout, voucherType)
}

// History returns the user's withdrawal requests, newest first.
func (u *WithdrawalUseCase) History(ctx context.Context, userID int64) ([]model.WithdrawRequest, error) {
	return u.withdrawals.ListByUser(ctx, userID)
}
