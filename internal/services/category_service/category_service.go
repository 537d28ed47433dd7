package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/lib/logger/sl"
	"blogcaste/internal/lib/slug"
	"blogcaste/internal/repository"
	"blogcaste/internal/storage"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrNameTaken  = errors.New("category name is already in use")
	ErrReferenced = errors.New("category is referenced by blogs")
)

// ReferencedError carries the number of blogs still pointing at the
// category so the API can tell the caller what blocks the deletion.
type ReferencedError struct {
	Count int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("category is referenced by %d blogs", e.Count)
}

func (e *ReferencedError) Unwrap() error { return ErrReferenced }

type CategoryService struct {
	log   *slog.Logger
	repo  repository.CategoryRepository
	blogs repository.BlogRepository
}

func NewCategoryService(log *slog.Logger, repo repository.CategoryRepository, blogs repository.BlogRepository) *CategoryService {
	return &CategoryService{log: log, repo: repo, blogs: blogs}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	const op = "category_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", name),
	)

	now := time.Now().UTC()
	category := models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.SaveCategory(ctx, category)
	if err != nil {
		if errors.Is(err, storage.ErrNameExists) {
			return nil, ErrNameTaken
		}
		log.Error("failed to save category", sl.Err(err))
		return nil, err
	}

	log.Info("category created", slog.String("category_id", id.String()))

	return s.repo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, name, description *string) (*models.Category, error) {
	const op = "category_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category_id", categoryID.String()),
	)

	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get category", sl.Err(err))
		return nil, err
	}

	if name != nil {
		category.Name = *name
		category.Slug = slug.Make(*name)
	}
	if description != nil {
		category.Description = *description
	}

	if err := s.repo.UpdateCategory(ctx, *category); err != nil {
		if errors.Is(err, storage.ErrNameExists) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to update category", sl.Err(err))
		return nil, err
	}

	return s.repo.GetCategoryByID(ctx, categoryID)
}

// Delete refuses to remove a category that blogs still point at, returning
// the reference count so the caller can report it.
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	const op = "category_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category_id", categoryID.String()),
	)

	count, err := s.blogs.CountByCategory(ctx, categoryID)
	if err != nil {
		log.Error("failed to count references", sl.Err(err))
		return err
	}
	if count > 0 {
		return &ReferencedError{Count: count}
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete category", sl.Err(err))
		return err
	}

	log.Info("category deleted")

	return nil
}

func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", sl.Err(err))
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}
