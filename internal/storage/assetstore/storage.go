package assetstore

import (
	"context"
	"mime/multipart"
)

// UploadResult is what the asset pipeline reports back for a stored image.
// The blog document keeps it wholesale as its image metadata.
type UploadResult struct {
	URL            string
	PublicID       string
	Format         string
	OriginalFormat string
	Animated       bool
	Width          int
	Height         int
	SizeBytes      int64
}

// AssetStore is the external image storage collaborator. Store uploads a
// multipart image under a directory prefix; Delete removes a previously
// stored object and is best-effort at call sites.
type AssetStore interface {
	Store(ctx context.Context, file *multipart.FileHeader, dir string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
