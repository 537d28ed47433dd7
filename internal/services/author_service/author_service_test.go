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

type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) SaveAuthor(ctx context.Context, author models.Author) (uuid.UUID, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAuthorRepository) UpdateAuthor(ctx context.Context, author models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
	args := m.Called(ctx, authorID)
	return args.Error(0)
}

func (m *MockAuthorRepository) GetAuthorByID(ctx context.Context, authorID uuid.UUID) (*models.Author, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Author), args.Error(1)
}

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

func newTestService() (*AuthorService, *MockAuthorRepository, *blogCounter) {
	repo := new(MockAuthorRepository)
	blogs := new(blogCounter)
	return NewAuthorService(slog.Default(), repo, blogs), repo, blogs
}

func TestAuthorService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("success", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("SaveAuthor", ctx, mock.MatchedBy(func(a models.Author) bool {
			return a.Name == "Jane Doe" && a.Bio == "writes about Go"
		})).Return(authorID, nil)
		repo.On("GetAuthorByID", ctx, authorID).
			Return(&models.Author{ID: authorID, Name: "Jane Doe"}, nil)

		author, err := service.Create(ctx, "Jane Doe", "writes about Go", "")

		require.NoError(t, err)
		assert.Equal(t, authorID, author.ID)
	})

	t.Run("stamps audit timestamps at insert", func(t *testing.T) {
		service, repo, _ := newTestService()

		before := time.Now().UTC()
		repo.On("SaveAuthor", ctx, mock.MatchedBy(func(a models.Author) bool {
			return !a.CreatedAt.Before(before) && a.UpdatedAt.Equal(a.CreatedAt)
		})).Return(authorID, nil)
		repo.On("GetAuthorByID", ctx, authorID).
			Return(&models.Author{ID: authorID, Name: "Jane Doe"}, nil)

		_, err := service.Create(ctx, "Jane Doe", "", "")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("SaveAuthor", ctx, mock.Anything).Return(uuid.Nil, storage.ErrNameExists)

		_, err := service.Create(ctx, "Jane Doe", "", "")

		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	bio := "updated bio"

	t.Run("partial update keeps other fields", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("GetAuthorByID", ctx, authorID).
			Return(&models.Author{ID: authorID, Name: "Jane", Bio: "old"}, nil).Once()
		repo.On("UpdateAuthor", ctx, mock.MatchedBy(func(a models.Author) bool {
			return a.Name == "Jane" && a.Bio == "updated bio"
		})).Return(nil)
		repo.On("GetAuthorByID", ctx, authorID).
			Return(&models.Author{ID: authorID, Name: "Jane", Bio: bio}, nil).Once()

		author, err := service.Update(ctx, authorID, nil, &bio, nil)

		require.NoError(t, err)
		assert.Equal(t, bio, author.Bio)
	})

	t.Run("unknown author", func(t *testing.T) {
		service, repo, _ := newTestService()

		repo.On("GetAuthorByID", ctx, authorID).Return(nil, storage.ErrNotFound)

		_, err := service.Update(ctx, authorID, nil, &bio, nil)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthorService_Delete(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("blocked while referenced", func(t *testing.T) {
		service, repo, blogs := newTestService()

		blogs.On("CountByAuthor", ctx, authorID).Return(7, nil)

		err := service.Delete(ctx, authorID)

		var refErr *ReferencedError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, 7, refErr.Count)
		repo.AssertNotCalled(t, "DeleteAuthor")
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		service, repo, blogs := newTestService()

		blogs.On("CountByAuthor", ctx, authorID).Return(0, nil)
		repo.On("DeleteAuthor", ctx, authorID).Return(nil)

		require.NoError(t, service.Delete(ctx, authorID))
		repo.AssertExpectations(t)
	})
}
