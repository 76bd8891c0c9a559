package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	testhelpers "github.com/perkmart/perkmart/internal/test"
)

func TestCompleteTaskRewardsOnce(t *testing.T) {
	tasks := testhelpers.NewTaskRepositoryStub()
	uc := NewEarnUseCase(tasks, &testhelpers.LedgerRepositoryStub{}, 500)

	task, err := tasks.Create(context.Background(), "install app", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	earned, err := uc.CompleteTask(context.Background(), 1, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earned != 250 {
		t.Fatalf("expected reward 250, got %d", earned)
	}
	if !tasks.Completed[1][task.ID] {
		t.Fatal("completion not recorded")
	}

	if _, err := uc.CompleteTask(context.Background(), 1, task.ID); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected already exists on repeat completion, got %v", err)
	}
}

func TestCompleteTaskUnknownOrInactive(t *testing.T) {
	tasks := testhelpers.NewTaskRepositoryStub()
	uc := NewEarnUseCase(tasks, &testhelpers.LedgerRepositoryStub{}, 500)

	if _, err := uc.CompleteTask(context.Background(), 1, 99); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for unknown task, got %v", err)
	}

	task, _ := tasks.Create(context.Background(), "retired", 100)
	tasks.TasksByID[task.ID].Active = false
	if _, err := uc.CompleteTask(context.Background(), 1, task.ID); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for inactive task, got %v", err)
	}
}

func TestScratchRewardWithinBounds(t *testing.T) {
	ledger := &testhelpers.LedgerRepositoryStub{}
	uc := NewEarnUseCase(testhelpers.NewTaskRepositoryStub(), ledger, 500)

	for i := 0; i < 50; i++ {
		earned, err := uc.Scratch(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if earned < 1 || earned > 500 {
			t.Fatalf("reward %d out of [1,500]", earned)
		}
	}
	if len(ledger.Credits) != 50 {
		t.Fatalf("expected 50 credits, got %d", len(ledger.Credits))
	}
}

func TestScratchDeterministicWithInjectedRand(t *testing.T) {
	ledger := &testhelpers.LedgerRepositoryStub{}
	uc := NewEarnUseCase(testhelpers.NewTaskRepositoryStub(), ledger, 500)
	uc.randInt = func(n int64) int64 { return n - 1 }

	earned, err := uc.Scratch(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earned != 500 {
		t.Fatalf("expected max reward 500, got %d", earned)
	}
	if ledger.Credits[0].UserID != 7 || ledger.Credits[0].Reason != model.ReasonScratchCard {
		t.Fatalf("unexpected credit: %+v", ledger.Credits[0])
	}
}
