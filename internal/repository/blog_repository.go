package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/storage"
)

const blogTable = "blogs"

var blogColumns = []string{
	"id", "title", "slug", "content", "excerpt",
	"image_url", "image_alt", "meta_description", "meta_keywords",
	"tags", "category_id", "author_id", "created_by",
	"status", "publish_date", "is_featured", "image_metadata",
	"created_at", "updated_at",
}

type BlogRepo struct {
	db      *pgxpool.Pool
	sb      sq.StatementBuilderType
	timeout time.Duration
}

func NewBlogRepository(db *pgxpool.Pool, timeout time.Duration) *BlogRepo {
	return &BlogRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		timeout: timeout,
	}
}

func (r *BlogRepo) SaveBlog(ctx context.Context, blog models.Blog) (uuid.UUID, error) {
	const op = "repository.blog_repository.SaveBlog"

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := r.sb.Insert(blogTable).
		Columns(
			"title", "slug", "content", "excerpt",
			"image_url", "image_alt", "meta_description", "meta_keywords",
			"tags", "category_id", "author_id", "created_by",
			"status", "publish_date", "is_featured", "image_metadata",
			"created_at", "updated_at",
		).
		Values(
			blog.Title, blog.Slug, blog.Content, blog.Excerpt,
			blog.ImageURL, blog.ImageAlt, blog.MetaDescription, blog.MetaKeywords,
			blog.Tags, blog.CategoryID, blog.AuthorID, blog.CreatedBy,
			blog.Status, blog.PublishDate, blog.IsFeatured, blog.ImageMetadata,
			blog.CreatedAt, blog.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, wrapErr(op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err, "blogs_slug_key") {
			return uuid.Nil, wrapErr(op, storage.ErrSlugExists)
		}
		return uuid.Nil, wrapErr(op, err)
	}

	return id, nil
}

func (r *BlogRepo) UpdateBlogFields(ctx context.Context, blogID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.blog_repository.UpdateBlogFields"

	allowedFields := map[string]bool{
		"title": true, "slug": true, "content": true, "excerpt": true,
		"image_url": true, "image_alt": true, "meta_description": true,
		"meta_keywords": true, "tags": true, "category_id": true,
		"author_id": true, "status": true, "publish_date": true,
		"is_featured": true, "image_metadata": true,
	}

	if len(updates) == 0 {
		return wrapErr(op, errors.New("no fields to update"))
	}

	// created_at stays immutable; updated_at is bumped on every save
	updateBuilder := r.sb.Update(blogTable).
		Set("updated_at", time.Now().UTC())

	for field, value := range updates {
		if !allowedFields[field] {
			return wrapErr(op, errors.New("field '"+field+"' is not allowed for update"))
		}
		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": blogID}).ToSql()
	if err != nil {
		return wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "blogs_slug_key") {
			return wrapErr(op, storage.ErrSlugExists)
		}
		return wrapErr(op, err)
	}
	if result.RowsAffected() == 0 {
		return wrapErr(op, storage.ErrNotFound)
	}

	return nil
}

func (r *BlogRepo) DeleteBlog(ctx context.Context, blogID uuid.UUID) error {
	const op = "repository.blog_repository.DeleteBlog"

	query, args, err := r.sb.Delete(blogTable).
		Where(sq.Eq{"id": blogID}).
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

func (r *BlogRepo) GetBlogByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	const op = "repository.blog_repository.GetBlogByID"
	return r.getBlog(ctx, op, sq.Eq{"id": blogID})
}

func (r *BlogRepo) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	const op = "repository.blog_repository.GetBlogBySlug"
	return r.getBlog(ctx, op, sq.Eq{"slug": slug})
}

func (r *BlogRepo) getBlog(ctx context.Context, op string, where sq.Sqlizer) (*models.Blog, error) {
	query, args, err := r.sb.Select(blogColumns...).
		From(blogTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	blog, err := scanBlog(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wrapErr(op, storage.ErrNotFound)
		}
		return nil, wrapErr(op, err)
	}

	return blog, nil
}

// ListBlogs runs an already-composed filter with the given order and window.
// Ordering always has a single key; ties fall back to storage order, which
// is stable within one query execution.
func (r *BlogRepo) ListBlogs(ctx context.Context, filter sq.Sqlizer, orderBy string, limit, offset uint64) ([]models.Blog, error) {
	const op = "repository.blog_repository.ListBlogs"

	queryBuilder := r.sb.Select(blogColumns...).From(blogTable)
	if filter != nil {
		queryBuilder = queryBuilder.Where(filter)
	}
	queryBuilder = queryBuilder.
		OrderBy(orderBy).
		Limit(limit).
		Offset(offset)

	query, args, err := queryBuilder.ToSql()
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

	var blogs []models.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return blogs, nil
}

// CountBlogs counts documents matching the same filter as a page query;
// it is a separate count and may exceed the page length.
func (r *BlogRepo) CountBlogs(ctx context.Context, filter sq.Sqlizer) (int, error) {
	const op = "repository.blog_repository.CountBlogs"

	queryBuilder := r.sb.Select("COUNT(*)").From(blogTable)
	if filter != nil {
		queryBuilder = queryBuilder.Where(filter)
	}

	query, args, err := queryBuilder.ToSql()
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

func (r *BlogRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	const op = "repository.blog_repository.SlugExists"
	return r.slugExists(ctx, op, sq.Eq{"slug": slug})
}

// SlugTakenByOther checks a slug against every document except the one
// being updated.
func (r *BlogRepo) SlugTakenByOther(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const op = "repository.blog_repository.SlugTakenByOther"
	return r.slugExists(ctx, op, sq.And{
		sq.Eq{"slug": slug},
		sq.NotEq{"id": excludeID},
	})
}

func (r *BlogRepo) slugExists(ctx context.Context, op string, where sq.Sqlizer) (bool, error) {
	query, args, err := r.sb.Select("1").
		From(blogTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return false, wrapErr(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var one int
	err = r.db.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapErr(op, err)
	}

	return true, nil
}

func (r *BlogRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	return r.CountBlogs(ctx, sq.Eq{"category_id": categoryID})
}

func (r *BlogRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return r.CountBlogs(ctx, sq.Eq{"author_id": authorID})
}

func scanBlog(row pgx.Row) (*models.Blog, error) {
	var (
		blog    models.Blog
		metaRaw []byte
	)

	err := row.Scan(
		&blog.ID, &blog.Title, &blog.Slug, &blog.Content, &blog.Excerpt,
		&blog.ImageURL, &blog.ImageAlt, &blog.MetaDescription, &blog.MetaKeywords,
		&blog.Tags, &blog.CategoryID, &blog.AuthorID, &blog.CreatedBy,
		&blog.Status, &blog.PublishDate, &blog.IsFeatured, &metaRaw,
		&blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metaRaw) > 0 {
		var meta models.ImageMetadata
		if err := json.Unmarshal(metaRaw, &meta); err != nil {
			return nil, err
		}
		blog.ImageMetadata = &meta
	}

	return &blog, nil
}
