package usecase

import (
	"context"
	"math/rand"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// EarnUseCase covers the point earning actions: tasks and scratch cards.
type EarnUseCase struct {
	tasks      repository.TaskRepository
	ledger     repository.LedgerRepository
	scratchMax int64
	randInt    func(int64) int64
}

// NewEarnUseCase constructs EarnUseCase.
func NewEarnUseCase(tasks repository.TaskRepository, ledger repository.LedgerRepository, scratchMax int64) *EarnUseCase {
	if scratchMax <= 0 {
		scratchMax = 1
	}
	return &EarnUseCase{
		tasks:      tasks,
		ledger:     ledger,
		scratchMax: scratchMax,
		randInt:    rand.Int63n,
	}
}

// Tasks lists tasks currently open for completion.
func (u *EarnUseCase) Tasks(ctx context.Context) ([]model.Task, error) {
	return u.tasks.ListActive(ctx)
}

// CompleteTask credits the task reward exactly once per user and returns
// the points earned. Repeat completions are rejected.
func (u *EarnUseCase) CompleteTask(ctx context.Context, userID, taskID int64) (int64, error) {
	task, err := u.tasks.GetByID(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if !task.Active {
		return 0, domainErrors.ErrNotFound
	}
	if err := u.tasks.Complete(ctx, userID, taskID); err != nil {
		return 0, err
	}
	return task.Reward, nil
}

// Scratch credits a random scratch card reward and returns the points won.
func (u *EarnUseCase) Scratch(ctx context.Context, userID int64) (int64, error) {
	reward := 1 + u.randInt(u.scratchMax)
	if err := u.ledger.Credit(ctx, userID, reward, model.ReasonScratchCard, "scratch"); err != nil {
		return 0, err
	}
	return reward, nil
}
