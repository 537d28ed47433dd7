package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
)

type BlogRepository interface {
	SaveBlog(ctx context.Context, blog models.Blog) (uuid.UUID, error)
	UpdateBlogFields(ctx context.Context, blogID uuid.UUID, updates map[string]interface{}) error
	DeleteBlog(ctx context.Context, blogID uuid.UUID) error
	GetBlogByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	ListBlogs(ctx context.Context, filter sq.Sqlizer, orderBy string, limit, offset uint64) ([]models.Blog, error)
	CountBlogs(ctx context.Context, filter sq.Sqlizer) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SlugTakenByOther(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}

type CategoryRepository interface {
	SaveCategory(ctx context.Context, category models.Category) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, category models.Category) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type AuthorRepository interface {
	SaveAuthor(ctx context.Context, author models.Author) (uuid.UUID, error)
	UpdateAuthor(ctx context.Context, author models.Author) error
	DeleteAuthor(ctx context.Context, authorID uuid.UUID) error
	GetAuthorByID(ctx context.Context, authorID uuid.UUID) (*models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	CountUsers(ctx context.Context) (int, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
