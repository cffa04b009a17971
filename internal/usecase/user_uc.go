package usecase

import (
	"context"
	"errors"
	"strings"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/adapter"
	"quote-quiz/internal/domain/ports/repository"
	"quote-quiz/internal/infra/logging"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

const minPasswordLen = 6

// UserUseCase exposes registration, login and leaderboard operations.
type UserUseCase interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	// TopUsers returns the highest-scoring users plus the total user count.
	// Limit is clamped to 1..100, defaulting to 10.
	TopUsers(ctx context.Context, limit int) ([]*model.User, int, error)
}

type userUC struct {
	users  repository.UserRepository
	tm     repository.TransactionManager
	hasher adapter.PasswordHasher
	log    *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, tm repository.TransactionManager, hasher adapter.PasswordHasher, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, tm: tm, hasher: hasher, log: logger}
}

func (u *userUC) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Register")()

	if len(password) < minPasswordLen {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	nu, err := model.NewUser(email, name, hash)
	if err != nil {
		return nil, err
	}

	// The duplicate check and the insert run as one unit so two concurrent
	// registrations for the same email cannot both pass the check.
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err = u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		existing, err := u.users.FindByEmail(ctx, tx, nu.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyExists
		}
		return u.users.Create(ctx, tx, nu)
	})
	if err != nil {
		return nil, err
	}
	return nu, nil
}

func (u *userUC) Login(ctx context.Context, email, password string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Login")()

	usr, err := u.users.FindByEmail(ctx, repository.NoTX, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.hasher.Compare(usr.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return usr, nil
}

func (u *userUC) TopUsers(ctx context.Context, limit int) ([]*model.User, int, error) {
	defer logging.TraceDuration(u.log, "UserUC.TopUsers")()

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	top, err := u.users.TopByScore(ctx, repository.NoTX, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.users.CountUsers(ctx, repository.NoTX)
	if err != nil {
		return nil, 0, err
	}
	return top, total, nil
}
