package services

import (
	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/transport/http/dto"
)

// applyPatch produces the patched blog document. Nil request fields keep
// the current value; required fields explicitly set to an empty string are
// a validation failure. Pure: no I/O, the input blog is not mutated.
// Slug handling stays with the caller because it needs a uniqueness check.
func applyPatch(blog models.Blog, req dto.UpdateBlogRequest) (models.Blog, error) {
	if req.Title != nil {
		if *req.Title == "" {
			return models.Blog{}, validationErr("title cannot be empty")
		}
		blog.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return models.Blog{}, validationErr("content cannot be empty")
		}
		blog.Content = *req.Content
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
	}
	if req.ImageAlt != nil {
		blog.ImageAlt = *req.ImageAlt
	}
	if req.MetaDescription != nil {
		blog.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		blog.MetaKeywords = normalizeList(req.MetaKeywords)
	}
	if req.Tags != nil {
		tags, err := normalizeTags(req.Tags)
		if err != nil {
			return models.Blog{}, err
		}
		blog.Tags = tags
	}
	if req.CategoryID != nil {
		id, err := parseOptionalID(*req.CategoryID)
		if err != nil {
			return models.Blog{}, validationErr("categoryId is not a valid id")
		}
		blog.CategoryID = id
	}
	if req.AuthorID != nil {
		id, err := parseOptionalID(*req.AuthorID)
		if err != nil {
			return models.Blog{}, validationErr("authorId is not a valid id")
		}
		blog.AuthorID = id
	}
	if req.Status != nil {
		// an empty form field binds a pointer to "", which the omitempty
		// validator tag waves through
		if *req.Status == "" {
			return models.Blog{}, validationErr("status cannot be empty")
		}
		blog.Status = models.BlogStatus(*req.Status)
	}
	if req.PublishDate != nil {
		d := *req.PublishDate
		blog.PublishDate = &d
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
	}

	return blog, nil
}

// updatesFromRequest maps only the fields the request actually supplied to
// their patched column values, so untouched columns stay untouched.
func updatesFromRequest(req dto.UpdateBlogRequest, patched models.Blog) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = patched.Title
	}
	if req.Content != nil {
		updates["content"] = patched.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = patched.Excerpt
	}
	if req.ImageAlt != nil {
		updates["image_alt"] = patched.ImageAlt
	}
	if req.MetaDescription != nil {
		updates["meta_description"] = patched.MetaDescription
	}
	if req.MetaKeywords != nil {
		updates["meta_keywords"] = patched.MetaKeywords
	}
	if req.Tags != nil {
		updates["tags"] = patched.Tags
	}
	if req.CategoryID != nil {
		updates["category_id"] = patched.CategoryID
	}
	if req.AuthorID != nil {
		updates["author_id"] = patched.AuthorID
	}
	if req.Status != nil {
		updates["status"] = patched.Status
	}
	if req.PublishDate != nil {
		updates["publish_date"] = patched.PublishDate
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = patched.IsFeatured
	}

	return updates
}

// parseOptionalID treats an empty string as "clear the reference".
func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
