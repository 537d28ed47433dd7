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

const authorTable = "authors"

type AuthorRepo struct {
	db      *pgxpool.Pool
	sb      sq.StatementBuilderType
	timeout time.Duration
}

func NewAuthorRepository(db *pgxpool.Pool, timeout time.Duration) *AuthorRepo {
	return &AuthorRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		timeout: timeout,
	}
}

func (r *AuthorRepo) SaveAuthor(ctx context.Context, author models.Author) (uuid.UUID, error) {
	const op = "repository.author_repository.SaveAuthor"

	query, args, err := r.sb.Insert(authorTable).
		Columns("name", "bio", "avatar_url", "created_at", "updated_at").
		Values(author.Name, author.Bio, author.AvatarURL, author.CreatedAt, author.UpdatedAt).
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

func (r *AuthorRepo) UpdateAuthor(ctx context.Context, author models.Author) error {
	const op = "repository.author_repository.UpdateAuthor"

	query, args, err := r.sb.Update(authorTable).
		Set("name", author.Name).
		Set("bio", author.Bio).
		Set("avatar_url", author.AvatarURL).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": author.ID}).
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

func (r *AuthorRepo) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
	const op = "repository.author_repository.DeleteAuthor"

	query, args, err := r.sb.Delete(authorTable).
		Where(sq.Eq{"id": authorID}).
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

func (r *AuthorRepo) GetAuthorByID(ctx context.Context, authorID uuid.UUID) (*models.Author, error) {
	const op = "repository.author_repository.GetAuthorByID"

	query, args, err := r.sb.Select("id", "name", "bio", "avatar_url", "created_at", "updated_at").
		From(authorTable).
		Where(sq.Eq{"id": authorID}).
		ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var author models.Author
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&author.ID, &author.Name, &author.Bio,
		&author.AvatarURL, &author.CreatedAt, &author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wrapErr(op, storage.ErrNotFound)
		}
		return nil, wrapErr(op, err)
	}

	return &author, nil
}

func (r *AuthorRepo) ListAuthors(ctx context.Context) ([]models.Author, error) {
	const op = "repository.author_repository.ListAuthors"

	query, args, err := r.sb.Select("id", "name", "bio", "avatar_url", "created_at", "updated_at").
		From(authorTable).
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

	var authors []models.Author
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(
			&author.ID, &author.Name, &author.Bio,
			&author.AvatarURL, &author.CreatedAt, &author.UpdatedAt,
		); err != nil {
			return nil, wrapErr(op, err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return authors, nil
}
