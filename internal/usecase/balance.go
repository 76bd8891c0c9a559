package usecase

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// BalanceUseCase exposes read access to the points ledger.
type BalanceUseCase struct {
	ledger repository.LedgerRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(ledger repository.LedgerRepository) *BalanceUseCase {
	return &BalanceUseCase{ledger: ledger}
}

// Summary returns current points and lifetime withdrawn total for user.
func (u *BalanceUseCase) Summary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	return u.ledger.Summary(ctx, userID)
}

// History returns the user's point events, newest first.
func (u *BalanceUseCase) History(ctx context.Context, userID int64) ([]model.PointEvent, error) {
	return u.ledger.Events(ctx, userID)
}
