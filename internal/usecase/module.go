package usecase

import (
	"go.uber.org/fx"

	"github.com/perkmart/perkmart/internal/config"
	"github.com/perkmart/perkmart/internal/domain/repository"
	pkgAuth "github.com/perkmart/perkmart/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewBalanceUseCase,
	newEarnUseCase,
	newWithdrawalUseCase,
	NewMatcherUseCase,
	NewAdminUseCase,
)

type authParams struct {
	fx.In

	Users  repository.UserRepository
	Ledger repository.LedgerRepository
	Hasher pkgAuth.PasswordHasher
	Tokens pkgAuth.Strategy
	Config *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Ledger, p.Hasher, p.Tokens, p.Config.SignupBonus, p.Config.ReferralBonus)
}

type earnParams struct {
	fx.In

	Tasks  repository.TaskRepository
	Ledger repository.LedgerRepository
	Config *config.Config
}

func newEarnUseCase(p earnParams) *EarnUseCase {
	return NewEarnUseCase(p.Tasks, p.Ledger, p.Config.ScratchMax)
}

type withdrawalParams struct {
	fx.In

	Users       repository.UserRepository
	Withdrawals repository.WithdrawalRepository
	Settings    repository.SettingsRepository
	Config      *config.Config
}

func newWithdrawalUseCase(p withdrawalParams) *WithdrawalUseCase {
	return NewWithdrawalUseCase(p.Users, p.Withdrawals, p.Settings, p.Config.PointsPerUnit)
}
