package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/storage"
)

const userTable = "users"

type UserRepo struct {
	db      *pgxpool.Pool
	sb      sq.StatementBuilderType
	timeout time.Duration
}

func NewUserRepository(db *pgxpool.Pool, timeout time.Duration) *UserRepo {
	return &UserRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		timeout: timeout,
	}
}

func (r *UserRepo) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	const op = "repository.user_repository.SaveUser"

	query, args, err := r.sb.Insert(userTable).
		Columns("name", "email", "password", "role", "created_at").
		Values(user.Name, user.Email, user.Password, user.Role, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return uuid.Nil, wrapErr(op, storage.ErrUserExists)
		}
		return uuid.Nil, wrapErr(op, err)
	}

	return id, nil
}

func (r *UserRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "repository.user_repository.UserByEmail"
	return r.getUser(ctx, op, sq.Eq{"email": email})
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "repository.user_repository.GetUserByID"
	return r.getUser(ctx, op, sq.Eq{"id": userID})
}

func (r *UserRepo) getUser(ctx context.Context, op string, where sq.Sqlizer) (models.User, error) {
	query, args, err := r.sb.Select("id", "name", "email", "password", "role", "created_at").
		From(userTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, wrapErr(op, storage.ErrUserNotFound)
		}
		return models.User{}, wrapErr(op, err)
	}

	return user, nil
}

func (r *UserRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "repository.user_repository.IsAdmin"

	query, args, err := r.sb.Select("role").
		From(userTable).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return false, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var role models.Role
	if err := r.db.QueryRow(ctx, query, args...).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, wrapErr(op, storage.ErrUserNotFound)
		}
		return false, wrapErr(op, err)
	}

	return role == models.RoleAdmin, nil
}

// CountUsers backs the bootstrap rule: the first user ever created becomes
// admin. The count-then-insert pair is not atomic; a race between two
// concurrent first signups is accepted (see DESIGN.md).
func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	const op = "repository.user_repository.CountUsers"

	query, args, err := r.sb.Select("COUNT(*)").From(userTable).ToSql()
	if err != nil {
		return 0, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapErr(op, err)
	}

	return count, nil
}
