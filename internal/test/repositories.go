package test

import (
	"context"
	"time"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Add places a prebuilt user into the stub maps.
func (s *UserRepositoryStub) Add(user *model.User) {
	s.Users[user.Login] = user
	s.ByID[user.ID] = user
	if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, country string, referrerID *int64, startingPoints int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Login:        login,
		PasswordHash: passwordHash,
		Standing:     model.StandingNormal,
		Country:      country,
		Points:       startingPoints,
		ReferrerID:   referrerID,
	}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetVerified marks stored user as verified.
func (s *UserRepositoryStub) SetVerified(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Verified = true
	return nil
}

// SetStanding updates stored user standing.
func (s *UserRepositoryStub) SetStanding(ctx context.Context, id int64, standing model.Standing) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Standing = standing
	return nil
}

// LedgerCredit records one Credit invocation.
type LedgerCredit struct {
	UserID    int64
	Points    int64
	Reason    model.EarnReason
	Reference string
}

// LedgerRepositoryStub tracks credits and serves configured history.
type LedgerRepositoryStub struct {
	CreditFn  func(context.Context, int64, int64, model.EarnReason, string) error
	SummaryFn func(context.Context, int64) (*model.BalanceSummary, error)
	EventsFn  func(context.Context, int64) ([]model.PointEvent, error)

	Credits   []LedgerCredit
	Summaries map[int64]*model.BalanceSummary
	History   []model.PointEvent
}

// Credit records the mutation or delegates to the override.
func (s *LedgerRepositoryStub) Credit(ctx context.Context, userID, points int64, reason model.EarnReason, reference string) error {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, userID, points, reason, reference)
	}
	s.Credits = append(s.Credits, LedgerCredit{UserID: userID, Points: points, Reason: reason, Reference: reference})
	return nil
}

// Summary returns configured summary or not found.
func (s *LedgerRepositoryStub) Summary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	if summary, ok := s.Summaries[userID]; ok {
		return summary, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Events returns the configured point history.
func (s *LedgerRepositoryStub) Events(ctx context.Context, userID int64) ([]model.PointEvent, error) {
	if s.EventsFn != nil {
		return s.EventsFn(ctx, userID)
	}
	return s.History, nil
}

// AssignedCode stores information about AssignCode invocations.
type AssignedCode struct {
	RequestID int64
	CodeID    int64
	Code      string
}

// ResolveCall stores information about Resolve invocations.
type ResolveCall struct {
	RequestID int64
	Status    model.WithdrawalStatus
	Code      string
}

// WithdrawalRepositoryStub allows tests to customize withdrawal behaviour.
type WithdrawalRepositoryStub struct {
	SubmitFn      func(context.Context, int64, int64, float64, model.VoucherType) (*model.WithdrawRequest, error)
	GetByIDFn     func(context.Context, int64) (*model.WithdrawRequest, error)
	ListByUserFn  func(context.Context, int64) ([]model.WithdrawRequest, error)
	ListPendingFn func(context.Context) ([]model.PendingWithdrawal, error)
	AssignCodeFn  func(context.Context, int64, int64, string) error
	ResolveFn     func(context.Context, int64, model.WithdrawalStatus, string) error

	Requests []model.WithdrawRequest
	Pending  []model.PendingWithdrawal
	Assigned []AssignedCode
	Resolved []ResolveCall
}

// Submit builds a processing request or delegates to the override.
func (s *WithdrawalRepositoryStub) Submit(ctx context.Context, userID, points int64, payout float64, voucherType model.VoucherType) (*model.WithdrawRequest, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, points, payout, voucherType)
	}
	req := model.WithdrawRequest{
		ID:          int64(len(s.Requests) + 1),
		UserID:      userID,
		Points:      points,
		Payout:      payout,
		VoucherType: voucherType,
		Status:      model.WithdrawalStatusProcessing,
		CreatedAt:   time.Unix(0, 0),
	}
	s.Requests = append(s.Requests, req)
	return &req, nil
}

// GetByID returns matched request either via override or stored slice.
func (s *WithdrawalRepositoryStub) GetByID(ctx context.Context, id int64) (*model.WithdrawRequest, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			req := s.Requests[i]
			return &req, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns requests from configured slice.
func (s *WithdrawalRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.WithdrawRequest, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.WithdrawRequest
	for _, r := range s.Requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListPending returns the configured processing queue.
func (s *WithdrawalRepositoryStub) ListPending(ctx context.Context) ([]model.PendingWithdrawal, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx)
	}
	return s.Pending, nil
}

// AssignCode records the pairing or delegates to the override.
func (s *WithdrawalRepositoryStub) AssignCode(ctx context.Context, requestID, codeID int64, code string) error {
	if s.AssignCodeFn != nil {
		return s.AssignCodeFn(ctx, requestID, codeID, code)
	}
	s.Assigned = append(s.Assigned, AssignedCode{RequestID: requestID, CodeID: codeID, Code: code})
	return nil
}

// Resolve records the transition or delegates to the override.
func (s *WithdrawalRepositoryStub) Resolve(ctx context.Context, requestID int64, status model.WithdrawalStatus, code string) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, requestID, status, code)
	}
	s.Resolved = append(s.Resolved, ResolveCall{RequestID: requestID, Status: status, Code: code})
	return nil
}

// RedeemCodeRepositoryStub serves the configured code inventory.
type RedeemCodeRepositoryStub struct {
	BulkAddFn    func(context.Context, []model.NewCode) (int, error)
	ListUnusedFn func(context.Context) ([]model.RedeemCode, error)

	Added  []model.NewCode
	Unused []model.RedeemCode
}

// BulkAdd records inserted codes and reports them all as added.
func (s *RedeemCodeRepositoryStub) BulkAdd(ctx context.Context, codes []model.NewCode) (int, error) {
	if s.BulkAddFn != nil {
		return s.BulkAddFn(ctx, codes)
	}
	s.Added = append(s.Added, codes...)
	return len(codes), nil
}

// ListUnused returns the configured inventory slice.
func (s *RedeemCodeRepositoryStub) ListUnused(ctx context.Context) ([]model.RedeemCode, error) {
	if s.ListUnusedFn != nil {
		return s.ListUnusedFn(ctx)
	}
	return s.Unused, nil
}

// TaskRepositoryStub stores tasks and completions in-memory.
type TaskRepositoryStub struct {
	CreateFn   func(context.Context, string, int64) (*model.Task, error)
	CompleteFn func(context.Context, int64, int64) error

	TasksByID   map[int64]*model.Task
	Next        int64
	Completed   map[int64]map[int64]bool
	CompleteErr error
}

// NewTaskRepositoryStub constructs stub repository with initialized maps.
func NewTaskRepositoryStub() *TaskRepositoryStub {
	return &TaskRepositoryStub{
		TasksByID: make(map[int64]*model.Task),
		Next:      1,
		Completed: make(map[int64]map[int64]bool),
	}
}

// Create stores a new active task.
func (s *TaskRepositoryStub) Create(ctx context.Context, title string, reward int64) (*model.Task, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, title, reward)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	task := &model.Task{ID: s.Next, Title: title, Reward: reward, Active: true}
	s.Next++
	s.TasksByID[task.ID] = task
	return task, nil
}

// GetByID fetches task or returns not found.
func (s *TaskRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if task, ok := s.TasksByID[id]; ok {
		return task, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListActive returns active tasks from the map.
func (s *TaskRepositoryStub) ListActive(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	for _, t := range s.TasksByID {
		if t.Active {
			out = append(out, *t)
		}
	}
	return out, nil
}

// Complete records a completion, rejecting repeats.
func (s *TaskRepositoryStub) Complete(ctx context.Context, userID, taskID int64) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, userID, taskID)
	}
	if s.CompleteErr != nil {
		return s.CompleteErr
	}
	if s.Completed[userID] == nil {
		s.Completed[userID] = make(map[int64]bool)
	}
	if s.Completed[userID][taskID] {
		return domainErrors.ErrAlreadyExists
	}
	s.Completed[userID][taskID] = true
	return nil
}

// SettingsRepositoryStub holds operational flags for tests.
type SettingsRepositoryStub struct {
	Paused    bool
	PausedErr error
	SetErr    error
	SetCalls  []bool
}

// RedemptionPaused returns the configured flag.
func (s *SettingsRepositoryStub) RedemptionPaused(ctx context.Context) (bool, error) {
	if s.PausedErr != nil {
		return false, s.PausedErr
	}
	return s.Paused, nil
}

// SetRedemptionPaused records the toggle.
func (s *SettingsRepositoryStub) SetRedemptionPaused(ctx context.Context, paused bool) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Paused = paused
	s.SetCalls = append(s.SetCalls, paused)
	return nil
}
