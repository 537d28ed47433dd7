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

const categoryTable = "categories"

type CategoryRepo struct {
	db      *pgxpool.Pool
	sb      sq.StatementBuilderType
	timeout time.Duration
}

func NewCategoryRepository(db *pgxpool.Pool, timeout time.Duration) *CategoryRepo {
	return &CategoryRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		timeout: timeout,
	}
}

func (r *CategoryRepo) SaveCategory(ctx context.Context, category models.Category) (uuid.UUID, error) {
	const op = "repository.category_repository.SaveCategory"

	query, args, err := r.sb.Insert(categoryTable).
		Columns("name", "slug", "description", "created_at", "updated_at").
		Values(category.Name, category.Slug, category.Description, category.CreatedAt, category.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err, "") {
			return uuid.Nil, wrapErr(op, storage.ErrNameExists)
		}
		return uuid.Nil, wrapErr(op, err)
	}

	return id, nil
}

func (r *CategoryRepo) UpdateCategory(ctx context.Context, category models.Category) error {
	const op = "repository.category_repository.UpdateCategory"

	query, args, err := r.sb.Update(categoryTable).
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("description", category.Description).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return wrapErr(op, storage.ErrNameExists)
		}
		return wrapErr(op, err)
	}
	if result.RowsAffected() == 0 {
		return wrapErr(op, storage.ErrNotFound)
	}

	return nil
}

func (r *CategoryRepo) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	const op = "repository.category_repository.DeleteCategory"

	query, args, err := r.sb.Delete(categoryTable).
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return wrapErr(op, err)
	}
	if result.RowsAffected() == 0 {
		return wrapErr(op, storage.ErrNotFound)
	}

	return nil
}

func (r *CategoryRepo) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	const op = "repository.category_repository.GetCategoryByID"

	query, args, err := r.sb.Select("id", "name", "slug", "description", "created_at", "updated_at").
		From(categoryTable).
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var category models.Category
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&category.ID, &category.Name, &category.Slug,
		&category.Description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wrapErr(op, storage.ErrNotFound)
		}
		return nil, wrapErr(op, err)
	}

	return &category, nil
}

func (r *CategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "repository.category_repository.ListCategories"

	query, args, err := r.sb.Select("id", "name", "slug", "description", "created_at", "updated_at").
		From(categoryTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Slug,
			&category.Description, &category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, wrapErr(op, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return categories, nil
}
