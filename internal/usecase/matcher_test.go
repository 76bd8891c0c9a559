package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/perkmart/perkmart/internal/domain/model"
	testhelpers "github.com/perkmart/perkmart/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingRequest(id, points int64, standing model.Standing) model.PendingWithdrawal {
	return model.PendingWithdrawal{
		WithdrawRequest: model.WithdrawRequest{
			ID:     id,
			UserID: id + 100,
			Points: points,
			Status: model.WithdrawalStatusProcessing,
		},
		OwnerStanding: standing,
	}
}

func TestMatcherPairsByFaceValueFIFO(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Pending: []model.PendingWithdrawal{
			pendingRequest(1, 10000, model.StandingNormal),
			pendingRequest(2, 20000, model.StandingNormal),
			pendingRequest(3, 10000, model.StandingNormal),
		},
	}
	codes := &testhelpers.RedeemCodeRepositoryStub{
		Unused: []model.RedeemCode{
			{ID: 11, Code: "A", Points: 10000},
			{ID: 12, Code: "B", Points: 10000},
			{ID: 13, Code: "C", Points: 20000},
		},
	}
	uc := NewMatcherUseCase(withdrawals, codes, discardLogger())

	report, err := uc.MatchPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 3 || report.Matched != 3 || report.Deferred != 0 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	want := []testhelpers.AssignedCode{
		{RequestID: 1, CodeID: 11, Code: "A"},
		{RequestID: 2, CodeID: 13, Code: "C"},
		{RequestID: 3, CodeID: 12, Code: "B"},
	}
	if len(withdrawals.Assigned) != len(want) {
		t.Fatalf("expected %d assignments, got %d", len(want), len(withdrawals.Assigned))
	}
	for i, a := range withdrawals.Assigned {
		if a != want[i] {
			t.Fatalf("assignment %d: expected %+v, got %+v", i, want[i], a)
		}
	}
}

func TestMatcherNoMatchingFaceValueStaysPending(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Pending: []model.PendingWithdrawal{pendingRequest(1, 30000, model.StandingNormal)},
	}
	codes := &testhelpers.RedeemCodeRepositoryStub{
		Unused: []model.RedeemCode{{ID: 11, Code: "A", Points: 10000}},
	}
	uc := NewMatcherUseCase(withdrawals, codes, discardLogger())

	report, err := uc.MatchPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 0 || len(withdrawals.Assigned) != 0 {
		t.Fatalf("expected no assignments, got %+v", withdrawals.Assigned)
	}
}

func TestMatcherDefersUnderReviewOwners(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Pending: []model.PendingWithdrawal{
			pendingRequest(1, 10000, model.StandingUnderReview),
			pendingRequest(2, 10000, model.StandingNormal),
		},
	}
	codes := &testhelpers.RedeemCodeRepositoryStub{
		Unused: []model.RedeemCode{{ID: 11, Code: "A", Points: 10000}},
	}
	uc := NewMatcherUseCase(withdrawals, codes, discardLogger())

	report, err := uc.MatchPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Deferred != 1 || report.Matched != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(withdrawals.Assigned) != 1 || withdrawals.Assigned[0].RequestID != 2 {
		t.Fatalf("expected only request 2 matched, got %+v", withdrawals.Assigned)
	}
}

func TestMatcherFailedPairDoesNotAbortScan(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Pending: []model.PendingWithdrawal{
			pendingRequest(1, 10000, model.StandingNormal),
			pendingRequest(2, 10000, model.StandingNormal),
		},
	}
	var assigned []testhelpers.AssignedCode
	withdrawals.AssignCodeFn = func(ctx context.Context, requestID, codeID int64, code string) error {
		if requestID == 1 {
			return errors.New("connection reset")
		}
		assigned = append(assigned, testhelpers.AssignedCode{RequestID: requestID, CodeID: codeID, Code: code})
		return nil
	}
	codes := &testhelpers.RedeemCodeRepositoryStub{
		Unused: []model.RedeemCode{
			{ID: 11, Code: "A", Points: 10000},
			{ID: 12, Code: "B", Points: 10000},
		},
	}
	uc := NewMatcherUseCase(withdrawals, codes, discardLogger())

	report, err := uc.MatchPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed != 1 || report.Matched != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	// The code from the failed pair must not be reused within this pass.
	if len(assigned) != 1 || assigned[0].CodeID != 12 {
		t.Fatalf("expected request 2 paired with code 12, got %+v", assigned)
	}
}

func TestMatcherIdempotentWhenNothingPending(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{}
	codes := &testhelpers.RedeemCodeRepositoryStub{
		Unused: []model.RedeemCode{{ID: 11, Code: "A", Points: 10000}},
	}
	uc := NewMatcherUseCase(withdrawals, codes, discardLogger())

	for i := 0; i < 3; i++ {
		report, err := uc.MatchPending(context.Background())
		if err != nil {
			t.Fatalf("pass %d returned error: %v", i, err)
		}
		if report.Matched != 0 || report.Scanned != 0 {
			t.Fatalf("pass %d produced work: %+v", i, report)
		}
	}
	if len(withdrawals.Assigned) != 0 {
		t.Fatalf("expected no assignments, got %+v", withdrawals.Assigned)
	}
}

func TestMatcherPropagatesListErrors(t *testing.T) {
	listErr := errors.New("db down")
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		ListPendingFn: func(context.Context) ([]model.PendingWithdrawal, error) {
			return nil, listErr
		},
	}
	uc := NewMatcherUseCase(withdrawals, &testhelpers.RedeemCodeRepositoryStub{}, discardLogger())

	if _, err := uc.MatchPending(context.Background()); !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}
