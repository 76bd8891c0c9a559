package usecase

import (
	"context"
	"log/slog"

	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// MatchReport summarizes one reconciliation pass.
type MatchReport struct {
	Scanned  int
	Deferred int
	Matched  int
	Failed   int
}

// MatcherUseCase pairs pending withdrawals with unused codes of the same
// face value, first come first served per amount bucket.
type MatcherUseCase struct {
	withdrawals repository.WithdrawalRepository
	codes       repository.RedeemCodeRepository
	logger      *slog.Logger
}

// NewMatcherUseCase constructs MatcherUseCase.
func NewMatcherUseCase(withdrawals repository.WithdrawalRepository, codes repository.RedeemCodeRepository, logger *slog.Logger) *MatcherUseCase {
	return &MatcherUseCase{withdrawals: withdrawals, codes: codes, logger: logger}
}

// MatchPending runs one reconciliation pass. Requests owned by users under
// review are deferred to manual handling. Each request/code pair commits
// independently: a failed pair is logged and skipped, never aborting the
// scan, and a request without a matching code simply stays pending.
// Running the pass again with no new state is a no-op.
func (u *MatcherUseCase) MatchPending(ctx context.Context) (MatchReport, error) {
	var report MatchReport

	pending, err := u.withdrawals.ListPending(ctx)
	if err != nil {
		return report, err
	}
	report.Scanned = len(pending)

	candidates := pending[:0:0]
	for _, p := range pending {
		if p.OwnerStanding == model.StandingUnderReview {
			report.Deferred++
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return report, nil
	}

	unused, err := u.codes.ListUnused(ctx)
	if err != nil {
		return report, err
	}
	if len(unused) == 0 {
		return report, nil
	}

	// FIFO buckets keyed by face value; fetch order is insertion order.
	buckets := make(map[int64][]model.RedeemCode, len(unused))
	for _, c := range unused {
		buckets[c.Points] = append(buckets[c.Points], c)
	}

	for _, req := range candidates {
		bucket := buckets[req.Points]
		if len(bucket) == 0 {
			continue
		}
		code := bucket[0]

		if err := u.withdrawals.AssignCode(ctx, req.ID, code.ID, code.Code); err != nil {
			report.Failed++
			u.logger.Error("code assignment failed",
				slog.Int64("request_id", req.ID),
				slog.Int64("code_id", code.ID),
				slog.String("error", err.Error()),
			)
			// The code's state is unknown to us now; drop it from the
			// bucket and let the next pass rescan.
			buckets[req.Points] = bucket[1:]
			continue
		}

		buckets[req.Points] = bucket[1:]
		report.Matched++
	}

	return report, nil
}
