package httpapp

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"blogcaste/internal/domain/models"
	blogservice "blogcaste/internal/services/blog_service"
	httprouters "blogcaste/internal/transport/http"
	"blogcaste/internal/transport/http/dto"
)

// stubBlogService records whether listing was reached; routing tests only
// care about which routes the auth middleware guards.
type stubBlogService struct {
	listed bool
}

func (s *stubBlogService) List(ctx context.Context, q blogservice.ListQuery) (*dto.BlogListResponse, error) {
	s.listed = true
	return &dto.BlogListResponse{Success: true, Blogs: []models.Blog{}}, nil
}

func (s *stubBlogService) GetByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	return nil, blogservice.ErrNotFound
}

func (s *stubBlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return nil, blogservice.ErrNotFound
}

func (s *stubBlogService) Create(ctx context.Context, req dto.CreateBlogRequest, image *multipart.FileHeader, createdBy uuid.UUID) (*models.Blog, error) {
	return nil, blogservice.ErrNotFound
}

func (s *stubBlogService) Update(ctx context.Context, blogID uuid.UUID, req dto.UpdateBlogRequest, image *multipart.FileHeader) (*models.Blog, error) {
	return nil, blogservice.ErrNotFound
}

func (s *stubBlogService) Delete(ctx context.Context, blogID uuid.UUID) error {
	return blogservice.ErrNotFound
}

func newTestServer(blogs *stubBlogService) *Server {
	// echoprometheus registers into the default registerer; give each
	// server a fresh one so repeated construction does not panic.
	prometheus.DefaultRegisterer = prometheus.NewRegistry()

	routers := httprouters.NewRouter(slog.Default(), false, nil, nil, blogs, nil, nil, nil, nil)
	srv := New(slog.Default(), "test-secret", "localhost", "0", nil, routers)
	srv.BuildRouters()
	return srv
}

func TestBuildRouters_BlogListingIsPublic(t *testing.T) {
	blogs := &stubBlogService{}
	srv := newTestServer(blogs)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, blogs.listed)
}

func TestBuildRouters_ScheduledListingRequiresToken(t *testing.T) {
	blogs := &stubBlogService{}
	srv := newTestServer(blogs)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/scheduled", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.False(t, blogs.listed)
}

func TestBuildRouters_BlogMutationsRequireToken(t *testing.T) {
	blogs := &stubBlogService{}
	srv := newTestServer(blogs)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/blogs"},
		{http.MethodPut, "/api/blogs/" + uuid.NewString()},
		{http.MethodDelete, "/api/blogs/" + uuid.NewString()},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest, "%s %s", tc.method, tc.path)
	}
}
