package repository

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
)

// WithdrawalRepository manages withdrawal requests and their terminal
// transitions. Submit deducts the balance and creates the request in one
// transaction; AssignCode and Resolve are guarded so terminal requests and
// used codes are never touched twice.
type WithdrawalRepository interface {
	Submit(ctx context.Context, userID, points int64, payout float64, voucherType model.VoucherType) (*model.WithdrawRequest, error)
	GetByID(ctx context.Context, id int64) (*model.WithdrawRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.WithdrawRequest, error)
	ListPending(ctx context.Context) ([]model.PendingWithdrawal, error)
	AssignCode(ctx context.Context, requestID, codeID int64, code string) error
	Resolve(ctx context.Context, requestID int64, status model.WithdrawalStatus, code string) error
}
