package assetstore

import (
	"context"
	"fmt"
	"image"
	"mime/multipart"
	"path"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"blogcaste/internal/config"
)

// MinioStore keeps blog images in an S3-compatible bucket. Safe for
// concurrent use.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewMinioStore(cfg config.AssetsConfig) (*MinioStore, error) {
	const op = "assetstore.NewMinioStore"

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%s: endpoint is required", op)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%s: credentials are required", op)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: check bucket: %w", op, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: create bucket: %w", op, err)
		}
	}

	return &MinioStore{
		client:        cli,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *MinioStore) Store(ctx context.Context, file *multipart.FileHeader, dir string) (*UploadResult, error) {
	const op = "assetstore.MinioStore.Store"

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Filename), "."))
	key := path.Join(dir, uuid.New().String())
	if ext != "" {
		key += "." + ext
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	info, err := s.client.PutObject(ctx, s.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &UploadResult{
		URL:            s.publicBaseURL + "/" + key,
		PublicID:       key,
		Format:         ext,
		OriginalFormat: ext,
		Animated:       ext == "gif",
		SizeBytes:      info.Size,
	}

	// Dimension probe is derived metadata only; a failure degrades the
	// format to a placeholder and never fails the upload.
	if w, h, format, ok := probeDimensions(file); ok {
		res.Width, res.Height, res.Format = w, h, format
	} else if res.Format == "" {
		res.Format = "processing"
	}

	return res, nil
}

func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	return s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
}

func probeDimensions(file *multipart.FileHeader) (int, int, string, bool) {
	src, err := file.Open()
	if err != nil {
		return 0, 0, "", false
	}
	defer src.Close()

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, "", false
	}
	return cfg.Width, cfg.Height, format, true
}
