package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	testhelpers "github.com/perkmart/perkmart/internal/test"
)

func eligibleUser(points int64) *model.User {
	return &model.User{
		ID:       1,
		Login:    "user",
		Verified: true,
		Standing: model.StandingNormal,
		Country:  model.CountryIndia,
		Points:   points,
	}
}

func newTestWithdrawalUseCase(usr *model.User, withdrawals *testhelpers.WithdrawalRepositoryStub, settings *testhelpers.SettingsRepositoryStub) *WithdrawalUseCase {
	users := testhelpers.NewUserRepositoryStub()
	if usr != nil {
		users.Add(usr)
	}
	if withdrawals == nil {
		withdrawals = &testhelpers.WithdrawalRepositoryStub{}
	}
	if settings == nil {
		settings = &testhelpers.SettingsRepositoryStub{}
	}
	return NewWithdrawalUseCase(users, withdrawals, settings, 1000)
}

func TestWithdrawalSubmitValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		user    *model.User
		points  int64
		voucher model.VoucherType
		paused  bool
		want    error
	}{
		{
			name:    "non-positive amount rejected before user lookup",
			user:    nil,
			points:  0,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrInvalidAmount,
		},
		{
			name:    "unknown user",
			user:    nil,
			points:  10000,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrNotFound,
		},
		{
			name:    "unverified before standing",
			user:    &model.User{ID: 1, Login: "user", Standing: model.StandingBanned},
			points:  10000,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrNotVerified,
		},
		{
			name:    "banned before under review checks",
			user:    &model.User{ID: 1, Login: "user", Verified: true, Standing: model.StandingBanned},
			points:  10000,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrBanned,
		},
		{
			name:    "under review",
			user:    &model.User{ID: 1, Login: "user", Verified: true, Standing: model.StandingUnderReview},
			points:  10000,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrUnderReview,
		},
		{
			name:    "missing country before denomination",
			user:    &model.User{ID: 1, Login: "user", Verified: true, Standing: model.StandingNormal, Points: 999999},
			points:  12345,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrCountryNotSet,
		},
		{
			name:    "denomination not in country table",
			user:    eligibleUser(999999),
			points:  12345,
			voucher: model.VoucherTypeAmazon,
			want:    domainErrors.ErrInvalidDenomination,
		},
		{
			name:    "balance checked before pause flag",
			user:    eligibleUser(5000),
			points:  10000,
			voucher: model.VoucherTypeAmazon,
			paused:  true,
			want:    domainErrors.ErrInsufficientBalance,
		},
		{
			name:    "pause flag before voucher type",
			user:    eligibleUser(50000),
			points:  10000,
			voucher: "steam",
			paused:  true,
			want:    domainErrors.ErrRedemptionPaused,
		},
		{
			name:    "unknown voucher type last",
			user:    eligibleUser(50000),
			points:  10000,
			voucher: "steam",
			want:    domainErrors.ErrInvalidVoucherType,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withdrawals := &testhelpers.WithdrawalRepositoryStub{
				SubmitFn: func(context.Context, int64, int64, float64, model.VoucherType) (*model.WithdrawRequest, error) {
					t.Fatal("submit should not be called on validation errors")
					return nil, nil
				},
			}
			uc := newTestWithdrawalUseCase(tc.user, withdrawals, &testhelpers.SettingsRepositoryStub{Paused: tc.paused})

			_, err := uc.Submit(context.Background(), 1, tc.points, tc.voucher)
			if err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestWithdrawalSubmitSuccess(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{}
	uc := newTestWithdrawalUseCase(eligibleUser(50000), withdrawals, nil)

	req, err := uc.Submit(context.Background(), 1, 10000, model.VoucherTypeAmazon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != model.WithdrawalStatusProcessing {
		t.Fatalf("expected processing status, got %s", req.Status)
	}
	if req.Payout != 10 {
		t.Fatalf("expected payout 10, got %f", req.Payout)
	}
	if len(withdrawals.Requests) != 1 {
		t.Fatalf("expected one stored request, got %d", len(withdrawals.Requests))
	}
}

func TestWithdrawalSubmitDefaultCountryDenominations(t *testing.T) {
	usr := eligibleUser(2000000)
	usr.Country = "US"
	uc := newTestWithdrawalUseCase(usr, nil, nil)

	if _, err := uc.Submit(context.Background(), 1, 10000, model.VoucherTypeAmazon); err != domainErrors.ErrInvalidDenomination {
		t.Fatalf("expected invalid denomination for non-India amount, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), 1, 500000, model.VoucherTypeAmazon); err != nil {
		t.Fatalf("unexpected error for valid amount: %v", err)
	}
}

func TestWithdrawalSubmitPropagatesGuardedDeduction(t *testing.T) {
	// Advisory read passed but the transactional deduction lost the race.
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		SubmitFn: func(context.Context, int64, int64, float64, model.VoucherType) (*model.WithdrawRequest, error) {
			return nil, domainErrors.ErrInsufficientBalance
		},
	}
	uc := newTestWithdrawalUseCase(eligibleUser(50000), withdrawals, nil)

	if _, err := uc.Submit(context.Background(), 1, 10000, model.VoucherTypeAmazon); err != domainErrors.ErrInsufficientBalance {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestWithdrawalHistory(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Requests: []model.WithdrawRequest{
			{ID: 1, UserID: 7, Points: 10000, Status: model.WithdrawalStatusSuccess},
			{ID: 2, UserID: 7, Points: 20000, Status: model.WithdrawalStatusProcessing},
			{ID: 3, UserID: 9, Points: 30000, Status: model.WithdrawalStatusProcessing},
		},
	}
	uc := newTestWithdrawalUseCase(eligibleUser(0), withdrawals, nil)

	got, err := uc.History(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 withdrawals, got %d", len(got))
	}
}
