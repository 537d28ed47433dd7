package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogcaste/internal/domain/models"
	blogservice "blogcaste/internal/services/blog_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/internal/storage"
	httpapp "blogcaste/internal/transport/http"
	"blogcaste/internal/transport/http/dto"
)

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) List(ctx context.Context, q blogservice.ListQuery) (*dto.BlogListResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BlogListResponse), args.Error(1)
}

func (m *MockBlogService) GetByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, req dto.CreateBlogRequest, image *multipart.FileHeader, createdBy uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, req, image, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, blogID uuid.UUID, req dto.UpdateBlogRequest, image *multipart.FileHeader) (*models.Blog, error) {
	args := m.Called(ctx, blogID, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, blogID uuid.UUID) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockUserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	validate := validator.New()
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return true
	})
	e.Validator = &testValidator{validate: validate}
	return e
}

func newTestRouters(blogs *MockBlogService, users *MockUserService) *httpapp.Routers {
	return httpapp.NewRouter(slog.Default(), false, users, nil, blogs, nil, nil, nil, nil)
}

func TestListPublishedBlogs_QueryMapping(t *testing.T) {
	e := newTestEcho()
	blogs := new(MockBlogService)
	r := newTestRouters(blogs, nil)

	blogs.On("List", mock.Anything, blogservice.ListQuery{
		Scope:  blogservice.ScopePublished,
		Search: "kubernetes",
		Page:   2,
		Limit:  10,
	}).Return(&dto.BlogListResponse{Success: true, Blogs: []models.Blog{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/published?search=kubernetes&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.ListPublishedBlogs(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	blogs.AssertExpectations(t)
}

func TestListBlogs_UnpagedEnvelopeOmitsPagination(t *testing.T) {
	e := newTestEcho()
	blogs := new(MockBlogService)
	r := newTestRouters(blogs, nil)

	blogs.On("List", mock.Anything, mock.Anything).Return(&dto.BlogListResponse{
		Success:    true,
		Blogs:      []models.Blog{},
		TotalCount: 3,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.ListBlogs(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["totalCount"])
	assert.NotContains(t, body, "currentPage")
	assert.NotContains(t, body, "totalPages")
}

func TestListBlogs_MalformedPageFallsBack(t *testing.T) {
	e := newTestEcho()
	blogs := new(MockBlogService)
	r := newTestRouters(blogs, nil)

	blogs.On("List", mock.Anything, blogservice.ListQuery{Scope: blogservice.ScopeAll}).
		Return(&dto.BlogListResponse{Success: true, Blogs: []models.Blog{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs?page=abc&limit=-5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.ListBlogs(c))
	blogs.AssertExpectations(t)
}

func TestListBlogs_TimeoutMapsTo504(t *testing.T) {
	e := newTestEcho()
	blogs := new(MockBlogService)
	r := newTestRouters(blogs, nil)

	blogs.On("List", mock.Anything, mock.Anything).Return(nil, storage.ErrTimeout)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.ListBlogs(c))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "smaller page")
}

func TestGetBlog(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		e := newTestEcho()
		r := newTestRouters(new(MockBlogService), nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		require.NoError(t, r.GetBlog(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		e := newTestEcho()
		blogs := new(MockBlogService)
		r := newTestRouters(blogs, nil)

		blogID := uuid.New()
		blogs.On("GetByID", mock.Anything, blogID).Return(nil, blogservice.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(blogID.String())

		require.NoError(t, r.GetBlog(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		e := newTestEcho()
		blogs := new(MockBlogService)
		r := newTestRouters(blogs, nil)

		blogID := uuid.New()
		blogs.On("GetByID", mock.Anything, blogID).
			Return(&models.Blog{ID: blogID, Title: "Found"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(blogID.String())

		require.NoError(t, r.GetBlog(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body dto.BlogResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "Found", body.Blog.Title)
	})
}

func TestSignup(t *testing.T) {
	t.Run("short password rejected", func(t *testing.T) {
		e := newTestEcho()
		users := new(MockUserService)
		r := newTestRouters(new(MockBlogService), users)

		body := `{"name":"Alice","email":"alice@example.com","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, r.Signup(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email answers 400", func(t *testing.T) {
		e := newTestEcho()
		users := new(MockUserService)
		r := newTestRouters(new(MockBlogService), users)

		users.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
			Return(uuid.Nil, userservice.ErrUserExists)

		body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, r.Signup(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body400 map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body400))
		assert.Equal(t, false, body400["success"])
		assert.Equal(t, "user_exists", body400["error"])
	})

	t.Run("success answers 201", func(t *testing.T) {
		e := newTestEcho()
		users := new(MockUserService)
		r := newTestRouters(new(MockBlogService), users)

		userID := uuid.New()
		users.On("Register", mock.Anything, "Alice", "alice@example.com", "password123").
			Return(userID, nil)

		body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, r.Signup(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	users := new(MockUserService)
	r := newTestRouters(new(MockBlogService), users)

	users.On("Login", mock.Anything, "alice@example.com", "wrong").
		Return(nil, userservice.ErrInvalidCredentials)

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
