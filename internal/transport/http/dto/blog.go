package dto

import (
	"time"

	"blogcaste/internal/domain/models"
)

// CreateBlogRequest arrives as multipart form data alongside an optional
// image part. Tags and meta keywords accept either repeated fields or a
// single comma-joined value; normalization happens in the service.
type CreateBlogRequest struct {
	Title           string     `form:"title" validate:"required,min=3,max=200"`
	Slug            string     `form:"slug" validate:"omitempty,slug"`
	Content         string     `form:"content" validate:"required"`
	Excerpt         string     `form:"excerpt" validate:"omitempty,max=500"`
	ImageAlt        string     `form:"imageAlt"`
	MetaDescription string     `form:"metaDescription" validate:"omitempty,max=300"`
	MetaKeywords    []string   `form:"metaKeywords"`
	Tags            []string   `form:"tags"`
	CategoryID      string     `form:"categoryId" validate:"omitempty,uuid4"`
	AuthorID        string     `form:"authorId" validate:"omitempty,uuid4"`
	Status          string     `form:"status" validate:"omitempty,oneof=draft published"`
	PublishDate     *time.Time `form:"publishDate"`
	IsFeatured      *bool      `form:"isFeatured"`
}

// UpdateBlogRequest has partial-update semantics: nil means "keep the
// current value". Required fields explicitly set to an empty string are
// rejected during patch application.
type UpdateBlogRequest struct {
	Title           *string    `form:"title" validate:"omitempty,min=3,max=200"`
	Slug            *string    `form:"slug" validate:"omitempty,slug"`
	Content         *string    `form:"content"`
	Excerpt         *string    `form:"excerpt" validate:"omitempty,max=500"`
	ImageAlt        *string    `form:"imageAlt"`
	MetaDescription *string    `form:"metaDescription" validate:"omitempty,max=300"`
	MetaKeywords    []string   `form:"metaKeywords"`
	Tags            []string   `form:"tags"`
	CategoryID      *string    `form:"categoryId" validate:"omitempty,uuid4"`
	AuthorID        *string    `form:"authorId" validate:"omitempty,uuid4"`
	Status          *string    `form:"status" validate:"omitempty,oneof=draft published"`
	PublishDate     *time.Time `form:"publishDate"`
	IsFeatured      *bool      `form:"isFeatured"`
}

// BlogListResponse is the uniform listing envelope. CurrentPage and
// TotalPages are present only when the caller supplied a limit; this shape
// difference is deliberate and callers must handle it.
type BlogListResponse struct {
	Success     bool          `json:"success"`
	Blogs       []models.Blog `json:"blogs"`
	TotalCount  int           `json:"totalCount"`
	CurrentPage *int          `json:"currentPage,omitempty"`
	TotalPages  *int          `json:"totalPages,omitempty"`
}

type BlogResponse struct {
	Success bool         `json:"success"`
	Blog    *models.Blog `json:"blog"`
}
