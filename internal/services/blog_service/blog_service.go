package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/lib/logger/sl"
	"blogcaste/internal/lib/slug"
	"blogcaste/internal/repository"
	"blogcaste/internal/storage"
	"blogcaste/internal/storage/assetstore"
	"blogcaste/internal/transport/http/dto"
)

const assetDir = "blogs"

type BlogService struct {
	log    *slog.Logger
	repo   repository.BlogRepository
	assets assetstore.AssetStore
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository, assets assetstore.AssetStore) *BlogService {
	return &BlogService{log: log, repo: repo, assets: assets}
}

// List runs a listing query and shapes the uniform paginated envelope.
func (s *BlogService) List(ctx context.Context, q ListQuery) (*dto.BlogListResponse, error) {
	const op = "blog_service.List"
	log := s.log.With(slog.String("op", op))

	now := time.Now().UTC()
	filter := q.Filter(now)
	limit, offset, paged := q.Window()

	blogs, err := s.repo.ListBlogs(ctx, filter, q.OrderBy(), limit, offset)
	if err != nil {
		log.Error("failed to list blogs", sl.Err(err))
		return nil, err
	}
	if blogs == nil {
		// past-the-end pages are a success with an empty list, not an error
		blogs = []models.Blog{}
	}

	// the count runs the same filter separately; it can legitimately
	// exceed the returned page length
	totalCount, err := s.repo.CountBlogs(ctx, filter)
	if err != nil {
		log.Error("failed to count blogs", sl.Err(err))
		return nil, err
	}

	resp := &dto.BlogListResponse{
		Success:    true,
		Blogs:      blogs,
		TotalCount: totalCount,
	}
	if paged {
		currentPage := q.CurrentPage()
		totalPages := q.TotalPages(totalCount)
		resp.CurrentPage = &currentPage
		resp.TotalPages = &totalPages
	}

	return resp, nil
}

func (s *BlogService) GetByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	const op = "blog_service.GetByID"

	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get blog", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	return blog, nil
}

// GetBySlug conceals scheduled content: a published post whose publish
// date is still in the future behaves as not-found so that slug guessing
// cannot reveal it early.
func (s *BlogService) GetBySlug(ctx context.Context, blogSlug string) (*models.Blog, error) {
	const op = "blog_service.GetBySlug"

	blog, err := s.repo.GetBlogBySlug(ctx, blogSlug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get blog by slug", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	if blog.Status == models.StatusPublished && blog.PublishDate != nil && blog.PublishDate.After(time.Now().UTC()) {
		return nil, ErrNotFound
	}

	return blog, nil
}

func (s *BlogService) Create(ctx context.Context, req dto.CreateBlogRequest, image *multipart.FileHeader, createdBy uuid.UUID) (*models.Blog, error) {
	const op = "blog_service.Create"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	log.Info("creating blog post")

	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	blogSlug := req.Slug
	if blogSlug == "" {
		blogSlug = slug.Make(req.Title)
		if blogSlug == "" {
			return nil, validationErr("title does not produce a usable slug")
		}
	}

	exists, err := s.repo.SlugExists(ctx, blogSlug)
	if err != nil {
		log.Error("failed to check slug", sl.Err(err))
		return nil, err
	}
	if exists {
		blogSlug = slug.WithTimeSuffix(blogSlug)
		log.Debug("slug collision, suffixed", slog.String("slug", blogSlug))
	}

	categoryID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		return nil, validationErr("categoryId is not a valid id")
	}
	authorID, err := parseOptionalID(req.AuthorID)
	if err != nil {
		return nil, validationErr("authorId is not a valid id")
	}

	now := time.Now().UTC()

	blog := models.Blog{
		Title:           req.Title,
		Slug:            blogSlug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		ImageAlt:        req.ImageAlt,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    normalizeList(req.MetaKeywords),
		Tags:            tags,
		CategoryID:      categoryID,
		AuthorID:        authorID,
		CreatedBy:       &createdBy,
		Status:          models.StatusDraft,
		IsFeatured:      req.IsFeatured != nil && *req.IsFeatured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.Status != "" {
		blog.Status = models.BlogStatus(req.Status)
	}
	if req.PublishDate != nil {
		d := *req.PublishDate
		blog.PublishDate = &d
	} else {
		blog.PublishDate = &now
	}

	if image != nil {
		result, err := s.assets.Store(ctx, image, assetDir)
		if err != nil {
			log.Error("failed to upload image", sl.Err(err))
			return nil, err
		}
		blog.ImageURL = result.URL
		blog.ImageMetadata = metadataFromUpload(result)
	}

	id, err := s.repo.SaveBlog(ctx, blog)
	if err != nil {
		if errors.Is(err, storage.ErrSlugExists) {
			// lost the check-then-insert race; accepted residual risk
			log.Warn("slug conflict on insert", slog.String("slug", blogSlug))
			return nil, ErrSlugTaken
		}
		log.Error("failed to save blog", sl.Err(err))
		return nil, err
	}

	log.Info("blog created", slog.String("blog_id", id.String()))

	return s.repo.GetBlogByID(ctx, id)
}

func (s *BlogService) Update(ctx context.Context, blogID uuid.UUID, req dto.UpdateBlogRequest, image *multipart.FileHeader) (*models.Blog, error) {
	const op = "blog_service.Update"
	log := s.log.With(
		slog.String("op", op),
		slog.String("blog_id", blogID.String()),
	)

	log.Info("updating blog post")

	existing, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get blog", sl.Err(err))
		return nil, err
	}

	patched, err := applyPatch(*existing, req)
	if err != nil {
		return nil, err
	}

	updates := updatesFromRequest(req, patched)

	// explicit new slugs are checked against other documents and rejected
	// on collision; unlike create, updates never auto-suffix
	if req.Slug != nil && *req.Slug != existing.Slug {
		if *req.Slug == "" {
			return nil, validationErr("slug cannot be empty")
		}
		taken, err := s.repo.SlugTakenByOther(ctx, *req.Slug, blogID)
		if err != nil {
			log.Error("failed to check slug", sl.Err(err))
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		updates["slug"] = *req.Slug
	}

	if image != nil {
		result, err := s.assets.Store(ctx, image, assetDir)
		if err != nil {
			log.Error("failed to upload image", sl.Err(err))
			return nil, err
		}
		// the old asset is released best-effort; metadata is replaced
		// wholesale, never merged
		if existing.ImageMetadata != nil && existing.ImageMetadata.PublicID != "" {
			if err := s.assets.Delete(ctx, existing.ImageMetadata.PublicID); err != nil {
				log.Warn("failed to delete previous asset", sl.Err(err))
			}
		}
		updates["image_url"] = result.URL
		updates["image_metadata"] = metadataFromUpload(result)
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateBlogFields(ctx, blogID, updates); err != nil {
		if errors.Is(err, storage.ErrSlugExists) {
			return nil, ErrSlugTaken
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to update blog", sl.Err(err))
		return nil, err
	}

	log.Info("blog updated")

	return s.repo.GetBlogByID(ctx, blogID)
}

func (s *BlogService) Delete(ctx context.Context, blogID uuid.UUID) error {
	const op = "blog_service.Delete"
	log := s.log.With(
		slog.String("op", op),
		slog.String("blog_id", blogID.String()),
	)

	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to get blog", sl.Err(err))
		return err
	}

	if err := s.repo.DeleteBlog(ctx, blogID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete blog", sl.Err(err))
		return err
	}

	// asset release is best-effort; the document deletion already succeeded
	if blog.ImageMetadata != nil && blog.ImageMetadata.PublicID != "" {
		if err := s.assets.Delete(ctx, blog.ImageMetadata.PublicID); err != nil {
			log.Warn("failed to delete asset", sl.Err(err))
		}
	}

	log.Info("blog deleted")

	return nil
}

func metadataFromUpload(result *assetstore.UploadResult) *models.ImageMetadata {
	return &models.ImageMetadata{
		Format:         result.Format,
		OriginalFormat: result.OriginalFormat,
		Animated:       result.Animated,
		SizeBytes:      result.SizeBytes,
		Width:          result.Width,
		Height:         result.Height,
		PublicID:       result.PublicID,
		URLs: map[string]string{
			"original": result.URL,
		},
	}
}
