package postgres

import (
	"context"
	"database/sql"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, active, roles, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(
		ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Active,
		u.Roles,
		u.CreatedBy,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ierr.WithError(err).
				WithHint("Email is already in use").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var u user.User
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("user %s not found", id).
				WithHintf("User with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var u user.User
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("user %s not found", email).
				WithHint("User was not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			name = $2,
			email = $3,
			active = $4,
			roles = $5,
			updated_at = $6
		WHERE id = $1
	`

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Active, u.Roles, u.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update user").
			Mark(ierr.ErrDatabase)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update user").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("user %s not found", u.ID).
			WithHintf("User with ID %s was not found", u.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT * FROM users ORDER BY created_at`

	users := []*user.User{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) CountActiveByRole(ctx context.Context, role types.Role) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE active AND $1 = ANY(roles)`

	var count int64
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, role.String()); err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to count active role holders").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
