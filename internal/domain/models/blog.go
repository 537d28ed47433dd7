package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
)

// Blog is the central entity of the platform.
type Blog struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Slug            string         `db:"slug" json:"slug"`
	Content         string         `db:"content" json:"content"`
	Excerpt         string         `db:"excerpt" json:"excerpt,omitempty"`
	ImageURL        string         `db:"image_url" json:"imageUrl,omitempty"`
	ImageAlt        string         `db:"image_alt" json:"imageAlt,omitempty"`
	MetaDescription string         `db:"meta_description" json:"metaDescription,omitempty"`
	MetaKeywords    []string       `db:"meta_keywords" json:"metaKeywords,omitempty"`
	Tags            []string       `db:"tags" json:"tags"`
	CategoryID      *uuid.UUID     `db:"category_id" json:"categoryId,omitempty"`
	AuthorID        *uuid.UUID     `db:"author_id" json:"authorId,omitempty"`
	CreatedBy       *uuid.UUID     `db:"created_by" json:"author,omitempty"`
	Status          BlogStatus     `db:"status" json:"status"`
	PublishDate     *time.Time     `db:"publish_date" json:"publishDate,omitempty"`
	IsFeatured      bool           `db:"is_featured" json:"isFeatured"`
	ImageMetadata   *ImageMetadata `db:"image_metadata" json:"imageMetadata,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// IsVisible reports whether the blog is publicly visible at the given
// instant: published and not scheduled for the future. A missing publish
// date is legacy data and counts as always visible.
func (b Blog) IsVisible(now time.Time) bool {
	if b.Status != StatusPublished {
		return false
	}
	if b.PublishDate == nil {
		return true
	}
	return !b.PublishDate.After(now)
}

// ImageMetadata is denormalized output of the asset pipeline, owned
// exclusively by its blog. It is replaced wholesale on every re-upload,
// never merged field by field.
type ImageMetadata struct {
	Format         string            `json:"format"`
	OriginalFormat string            `json:"originalFormat,omitempty"`
	Animated       bool              `json:"animated"`
	SizeBytes      int64             `json:"sizeBytes"`
	Width          int               `json:"width,omitempty"`
	Height         int               `json:"height,omitempty"`
	PublicID       string            `json:"publicId"`
	URLs           map[string]string `json:"urls,omitempty"`
}

// Value serializes ImageMetadata into JSONB.
func (m *ImageMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan deserializes JSONB into ImageMetadata.
func (m *ImageMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}
