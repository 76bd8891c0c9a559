package repository

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
)

// RedeemCodeRepository manages the voucher code inventory.
type RedeemCodeRepository interface {
	BulkAdd(ctx context.Context, codes []model.NewCode) (added int, err error)
	ListUnused(ctx context.Context) ([]model.RedeemCode, error)
}
