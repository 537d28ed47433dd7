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
	"blogcaste/internal/repository"
	"blogcaste/internal/storage"
)

var (
	ErrNotFound   = errors.New("author not found")
	ErrNameTaken  = errors.New("author name is already in use")
	ErrReferenced = errors.New("author is referenced by blogs")
)

type ReferencedError struct {
	Count int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("author is referenced by %d blogs", e.Count)
}

func (e *ReferencedError) Unwrap() error { return ErrReferenced }

type AuthorService struct {
	log   *slog.Logger
	repo  repository.AuthorRepository
	blogs repository.BlogRepository
}

func NewAuthorService(log *slog.Logger, repo repository.AuthorRepository, blogs repository.BlogRepository) *AuthorService {
	return &AuthorService{log: log, repo: repo, blogs: blogs}
}

func (s *AuthorService) Create(ctx context.Context, name, bio, avatarURL string) (*models.Author, error) {
	const op = "author_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", name),
	)

	now := time.Now().UTC()
	author := models.Author{
		Name:      name,
		Bio:       bio,
		AvatarURL: avatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.SaveAuthor(ctx, author)
	if err != nil {
		if errors.Is(err, storage.ErrNameExists) {
			return nil, ErrNameTaken
		}
		log.Error("failed to save author", sl.Err(err))
		return nil, err
	}

	log.Info("author created", slog.String("author_id", id.String()))

	return s.repo.GetAuthorByID(ctx, id)
}

func (s *AuthorService) Update(ctx context.Context, authorID uuid.UUID, name, bio, avatarURL *string) (*models.Author, error) {
	const op = "author_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("author_id", authorID.String()),
	)

	author, err := s.repo.GetAuthorByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get author", sl.Err(err))
		return nil, err
	}

	if name != nil {
		author.Name = *name
	}
	if bio != nil {
		author.Bio = *bio
	}
	if avatarURL != nil {
		author.AvatarURL = *avatarURL
	}

	if err := s.repo.UpdateAuthor(ctx, *author); err != nil {
		if errors.Is(err, storage.ErrNameExists) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to update author", sl.Err(err))
		return nil, err
	}

	return s.repo.GetAuthorByID(ctx, authorID)
}

// Delete refuses to remove an author with published work still attached.
func (s *AuthorService) Delete(ctx context.Context, authorID uuid.UUID) error {
	const op = "author_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("author_id", authorID.String()),
	)

	count, err := s.blogs.CountByAuthor(ctx, authorID)
	if err != nil {
		log.Error("failed to count references", sl.Err(err))
		return err
	}
	if count > 0 {
		return &ReferencedError{Count: count}
	}

	if err := s.repo.DeleteAuthor(ctx, authorID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete author", sl.Err(err))
		return err
	}

	log.Info("author deleted")

	return nil
}

func (s *AuthorService) GetByID(ctx context.Context, authorID uuid.UUID) (*models.Author, error) {
	author, err := s.repo.GetAuthorByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return author, nil
}

func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		s.log.Error("failed to list authors", sl.Err(err))
		return nil, err
	}
	if authors == nil {
		authors = []models.Author{}
	}
	return authors, nil
}
