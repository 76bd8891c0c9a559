package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	testhelpers "github.com/perkmart/perkmart/internal/test"
)

func newAdminUseCase(users *testhelpers.UserRepositoryStub, withdrawals *testhelpers.WithdrawalRepositoryStub, codes *testhelpers.RedeemCodeRepositoryStub) (*AdminUseCase, *testhelpers.TaskRepositoryStub, *testhelpers.SettingsRepositoryStub) {
	if users == nil {
		users = testhelpers.NewUserRepositoryStub()
	}
	if withdrawals == nil {
		withdrawals = &testhelpers.WithdrawalRepositoryStub{}
	}
	if codes == nil {
		codes = &testhelpers.RedeemCodeRepositoryStub{}
	}
	tasks := testhelpers.NewTaskRepositoryStub()
	settings := &testhelpers.SettingsRepositoryStub{}
	return NewAdminUseCase(users, withdrawals, codes, tasks, settings), tasks, settings
}

func TestResolveBatchMixedOutcomes(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Requests: []model.WithdrawRequest{
			{ID: 1, Status: model.WithdrawalStatusProcessing},
			{ID: 2, Status: model.WithdrawalStatusSuccess, Code: "OLD"},
			{ID: 3, Status: model.WithdrawalStatusProcessing},
		},
	}
	uc, _, _ := newAdminUseCase(nil, withdrawals, nil)

	results := uc.ResolveBatch(context.Background(), []Resolution{
		{RequestID: 1, Status: model.WithdrawalStatusSuccess, Code: "NEW-1"},
		{RequestID: 2, Status: model.WithdrawalStatusRejected},
		{RequestID: 3, Status: model.WithdrawalStatusRejected},
		{RequestID: 99, Status: model.WithdrawalStatusRejected},
	})

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Outcome != OutcomeApplied {
		t.Fatalf("item 1: expected applied, got %+v", results[0])
	}
	if results[1].Outcome != OutcomeSkipped {
		t.Fatalf("item 2: expected skipped for terminal request, got %+v", results[1])
	}
	if results[2].Outcome != OutcomeApplied {
		t.Fatalf("item 3: expected applied, got %+v", results[2])
	}
	if results[3].Outcome != OutcomeFailed {
		t.Fatalf("item 4: expected failed for unknown request, got %+v", results[3])
	}

	want := []testhelpers.ResolveCall{
		{RequestID: 1, Status: model.WithdrawalStatusSuccess, Code: "NEW-1"},
		{RequestID: 3, Status: model.WithdrawalStatusRejected},
	}
	if len(withdrawals.Resolved) != len(want) {
		t.Fatalf("expected %d resolve calls, got %d", len(want), len(withdrawals.Resolved))
	}
	for i, call := range withdrawals.Resolved {
		if call != want[i] {
			t.Fatalf("resolve %d: expected %+v, got %+v", i, want[i], call)
		}
	}
}

func TestResolveBatchSuccessRequiresCode(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Requests: []model.WithdrawRequest{{ID: 1, Status: model.WithdrawalStatusProcessing}},
	}
	uc, _, _ := newAdminUseCase(nil, withdrawals, nil)

	results := uc.ResolveBatch(context.Background(), []Resolution{
		{RequestID: 1, Status: model.WithdrawalStatusSuccess},
	})
	if results[0].Outcome != OutcomeFailed || results[0].Reason != domainErrors.ErrCodeRequired.Error() {
		t.Fatalf("expected code-required failure, got %+v", results[0])
	}
	if len(withdrawals.Resolved) != 0 {
		t.Fatal("resolve must not run without a code")
	}
}

func TestResolveBatchRejectsNonTerminalTarget(t *testing.T) {
	uc, _, _ := newAdminUseCase(nil, nil, nil)

	results := uc.ResolveBatch(context.Background(), []Resolution{
		{RequestID: 1, Status: model.WithdrawalStatusProcessing},
	})
	if results[0].Outcome != OutcomeFailed {
		t.Fatalf("expected failure for non-terminal target, got %+v", results[0])
	}
}

func TestResolveBatchSkipsOnConcurrentResolution(t *testing.T) {
	withdrawals := &testhelpers.WithdrawalRepositoryStub{
		Requests: []model.WithdrawRequest{{ID: 1, Status: model.WithdrawalStatusProcessing}},
		ResolveFn: func(context.Context, int64, model.WithdrawalStatus, string) error {
			return domainErrors.ErrConflict
		},
	}
	uc, _, _ := newAdminUseCase(nil, withdrawals, nil)

	results := uc.ResolveBatch(context.Background(), []Resolution{
		{RequestID: 1, Status: model.WithdrawalStatusRejected},
	})
	if results[0].Outcome != OutcomeSkipped {
		t.Fatalf("expected skip when already resolved, got %+v", results[0])
	}
}

func TestAddCodesValidatesAndGeneratesMissing(t *testing.T) {
	codes := &testhelpers.RedeemCodeRepositoryStub{}
	uc, _, _ := newAdminUseCase(nil, nil, codes)

	added, err := uc.AddCodes(context.Background(), []model.NewCode{
		{Code: "FIXED", Points: 10000, VoucherType: model.VoucherTypeAmazon},
		{Points: 20000, VoucherType: model.VoucherTypePaytm},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 || len(codes.Added) != 2 {
		t.Fatalf("expected 2 codes added, got %d", added)
	}
	if codes.Added[0].Code != "FIXED" {
		t.Fatalf("explicit code overwritten: %+v", codes.Added[0])
	}
	if codes.Added[1].Code == "" {
		t.Fatal("expected generated code for empty input")
	}
}

func TestAddCodesRejectsBadInput(t *testing.T) {
	codes := &testhelpers.RedeemCodeRepositoryStub{}
	uc, _, _ := newAdminUseCase(nil, nil, codes)

	if _, err := uc.AddCodes(context.Background(), []model.NewCode{{Points: 0, VoucherType: model.VoucherTypeAmazon}}); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := uc.AddCodes(context.Background(), []model.NewCode{{Points: 100, VoucherType: "steam"}}); err != domainErrors.ErrInvalidVoucherType {
		t.Fatalf("expected invalid voucher type, got %v", err)
	}
	if len(codes.Added) != 0 {
		t.Fatal("no codes should reach the repository on validation errors")
	}
}

func TestSetStanding(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Add(&model.User{ID: 5, Login: "user", Standing: model.StandingNormal})
	uc, _, _ := newAdminUseCase(users, nil, nil)

	if err := uc.SetStanding(context.Background(), 5, model.StandingBanned); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.ByID[5].Standing != model.StandingBanned {
		t.Fatalf("standing not updated: %s", users.ByID[5].Standing)
	}

	if err := uc.SetStanding(context.Background(), 5, "vip"); err != domainErrors.ErrConflict {
		t.Fatalf("expected conflict for unknown standing, got %v", err)
	}
}

func TestSetRedemptionPaused(t *testing.T) {
	uc, _, settings := newAdminUseCase(nil, nil, nil)

	if err := uc.SetRedemptionPaused(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settings.Paused {
		t.Fatal("pause flag not set")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	uc, tasks, _ := newAdminUseCase(nil, nil, nil)

	if _, err := uc.CreateTask(context.Background(), "", 100); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount for empty title, got %v", err)
	}
	if _, err := uc.CreateTask(context.Background(), "install", 0); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount for zero reward, got %v", err)
	}

	task, err := uc.CreateTask(context.Background(), "install", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID == 0 || !task.Active {
		t.Fatalf("unexpected task: %+v", task)
	}
	if len(tasks.TasksByID) != 1 {
		t.Fatalf("expected one stored task, got %d", len(tasks.TasksByID))
	}
}
