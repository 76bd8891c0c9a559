package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
	pkgAuth "github.com/perkmart/perkmart/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle, referral credit and token management.
type AuthUseCase struct {
	users         repository.UserRepository
	ledger        repository.LedgerRepository
	hasher        pkgAuth.PasswordHasher
	tokens        pkgAuth.Strategy
	signupBonus   int64
	referralBonus int64
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, ledger repository.LedgerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, signupBonus, referralBonus int64) *AuthUseCase {
	return &AuthUseCase{
		users:         users,
		ledger:        ledger,
		hasher:        hasher,
		tokens:        strategy,
		signupBonus:   signupBonus,
		referralBonus: referralBonus,
	}
}

// Register creates a new user with the signup bonus balance and returns an
// auth token. A resolvable referrer login earns the referrer a bonus;
// an unknown referrer is ignored rather than failing registration.
func (u *AuthUseCase) Register(ctx context.Context, login, password, country, referrerLogin string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	var referrerID *int64
	var referrer *model.User
	if referrerLogin = strings.TrimSpace(referrerLogin); referrerLogin != "" && referrerLogin != login {
		referrer, err = u.users.GetByLogin(ctx, referrerLogin)
		switch {
		case err == nil:
			referrerID = &referrer.ID
		case errors.Is(err, domainErrors.ErrNotFound):
			// Unknown referrer: register without one.
		default:
			return nil, "", err
		}
	}

	usr, err := u.users.Create(ctx, login, hash, strings.ToUpper(strings.TrimSpace(country)), referrerID, u.signupBonus)
	if err != nil {
		return nil, "", err
	}

	if referrer != nil && u.referralBonus > 0 {
		if err := u.ledger.Credit(ctx, referrer.ID, u.referralBonus, model.ReasonReferral, "referral:"+login); err != nil {
			return nil, "", err
		}
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// MarkVerified records a completed verification for the user. Delivery and
// checking of the verification challenge happen outside this core.
func (u *AuthUseCase) MarkVerified(ctx context.Context, userID int64) error {
	return u.users.SetVerified(ctx, userID)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
