package repository

import (
	"context"

	"github.com/perkmart/perkmart/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash, country string, referrerID *int64, startingPoints int64) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetVerified(ctx context.Context, id int64) error
	SetStanding(ctx context.Context, id int64, standing model.Standing) error
}
