package repository

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
)

// LedgerRepository mutates and reads point balances. Every credit adds a
// point event in the same transaction as the balance update.
type LedgerRepository interface {
	Credit(ctx context.Context, userID, points int64, reason model.EarnReason, reference string) error
	Summary(ctx context.Context, userID int64) (*model.BalanceSummary, error)
	Events(ctx context.Context, userID int64) ([]model.PointEvent, error)
}
