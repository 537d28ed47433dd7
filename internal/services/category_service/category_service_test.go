package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/storage"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category models.Category) (uuid.UUID, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// blogCounter stubs only the reference counting the category service uses.
type blogCounter struct {
	mock.Mock
}

func (m *blogCounter) SaveBlog(ctx context.Context, blog models.Blog) (uuid.UUID, error) {
	panic("not used")
}

func (m *blogCounter) UpdateBlogFields(ctx context.Context, blogID uuid.UUID, updates map[string]interface{}) error {
	panic("not used")
}

func (m *blogCounter) DeleteBlog(ctx context.Context, blogID uuid.UUID) error {
	panic("not used")
}

func (m *blogCounter) GetBlogByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	panic("not used")
}

func (m *blogCounter) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	panic("not used")
}

func (m *blogCounter) ListBlogs(ctx context.Context, filter sq.Sqlizer, orderBy string, limit, offset uint64) ([]models.Blog, error) {
	panic("not used")
}

func (m *blogCounter) CountBlogs(ctx context.Context, filter sq.Sqlizer) (int, error) {
	panic("not used")
}

func (m *blogCounter) SlugExists(ctx context.Context, slug string) (bool, error) {
	panic("not used")
}

func (m *blogCounter) SlugTakenByOther(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	panic("not used")
}

func (m *blogCounter) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *blogCounter) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

func newTestService() (*CategoryService, *MockCategoryRepository, *blogCounter) {
	repo := new(MockCategoryRepository)
	blogs := new(blogCounter)
	return NewCategoryService(slog.Default(), repo, blogs), repo, blogs
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("derives slug from name", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("SaveCategory", ctx, mock.MatchedBy(func(c models.Category) bool {
			return c.Name == "Tech & Science" && c.Slug == "tech-and-science"
		})).Return(categoryID, nil)
		repo.On("GetCategoryByID", ctx, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Tech & Science"}, nil)

		category, err := service.Create(ctx, "Tech & Science", "")

		require.NoError(t, err)
		assert.Equal(t, categoryID, category.ID)
		repo.AssertExpectations(t)
	})

	t.Run("stamps audit timestamps at insert", func(t *testing.T) {
		service, repo, _ := newTestService()

		before := time.Now().UTC()
		repo.On("SaveCategory", ctx, mock.MatchedBy(func(c models.Category) bool {
			return !c.CreatedAt.Before(before) && c.UpdatedAt.Equal(c.CreatedAt)
		})).Return(categoryID, nil)
		repo.On("GetCategoryByID", ctx, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Tech"}, nil)

		_, err := service.Create(ctx, "Tech", "")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("SaveCategory", ctx, mock.Anything).Return(uuid.Nil, storage.ErrNameExists)

		_, err := service.Create(ctx, "Tech", "")

		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()
	name := "Renamed"

	t.Run("rename refreshes the slug", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("GetCategoryByID", ctx, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Old", Slug: "old"}, nil).Once()
		repo.On("UpdateCategory", ctx, mock.MatchedBy(func(c models.Category) bool {
			return c.Name == "Renamed" && c.Slug == "renamed"
		})).Return(nil)
		repo.On("GetCategoryByID", ctx, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Renamed", Slug: "renamed"}, nil).Once()

		category, err := service.Update(ctx, categoryID, &name, nil)

		require.NoError(t, err)
		assert.Equal(t, "renamed", category.Slug)
	})

	t.Run("unknown category", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("GetCategoryByID", ctx, categoryID).Return(nil, storage.ErrNotFound)

		_, err := service.Update(ctx, categoryID, &name, nil)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("blocked while referenced", func(t *testing.T) {
		service, repo, blogs := newTestService()

		blogs.On("CountByCategory", ctx, categoryID).Return(3, nil)

		err := service.Delete(ctx, categoryID)

		assert.ErrorIs(t, err, ErrReferenced)
		var refErr *ReferencedError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, 3, refErr.Count)
		repo.AssertNotCalled(t, "DeleteCategory")
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		service, repo, blogs := newTestService()

		blogs.On("CountByCategory", ctx, categoryID).Return(0, nil)
		repo.On("DeleteCategory", ctx, categoryID).Return(nil)

		require.NoError(t, service.Delete(ctx, categoryID))
		repo.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		service, repo, blogs := newTestService()

		blogs.On("CountByCategory", ctx, categoryID).Return(0, nil)
		repo.On("DeleteCategory", ctx, categoryID).Return(storage.ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, categoryID), ErrNotFound)
	})
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("ListCategories", ctx).Return([]models.Category(nil), nil)

		categories, err := service.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, categories)
		assert.Empty(t, categories)
	})
}
