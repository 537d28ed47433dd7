package http

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogcaste/internal/lib/logger/sl"
	blogservice "blogcaste/internal/services/blog_service"
	"blogcaste/internal/transport/http/dto"
	"blogcaste/internal/transport/http/dto/response"
)

// listQueryFromContext maps the shared listing query params onto a scoped
// query. Absent or malformed page/limit fall back to the unpaged shape.
func listQueryFromContext(c echo.Context, scope blogservice.Scope) blogservice.ListQuery {
	q := blogservice.ListQuery{
		Scope:  scope,
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}

	return q
}

// optionalImage returns the uploaded image part if one was sent. A request
// without a file part is valid.
func optionalImage(c echo.Context) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

func (r *Routers) list(c echo.Context, op string, scope blogservice.Scope) error {
	log := r.log.With(slog.String("op", op))

	resp, err := r.BlogService.List(c.Request().Context(), listQueryFromContext(c, scope))
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ListBlogs godoc
// @Summary List all blogs
// @Description Lists every document regardless of status or publish date. Supports status, search and pagination params.
// @Tags blogs
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, published)
// @Param search query string false "Search in title and content"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size; omit for the capped unpaged shape"
// @Success 200 {object} dto.BlogListResponse
// @Failure 504 {object} response.ErrorResponse "Store timeout"
// @Router /api/blogs [get]
func (r *Routers) ListBlogs(c echo.Context) error {
	return r.list(c, "http.routers.ListBlogs", blogservice.ScopeAll)
}

// ListPublishedBlogs godoc
// @Summary List published blogs
// @Description Public listing of published posts whose publish date has arrived. Records without a publish date are treated as visible.
// @Tags blogs
// @Produce json
// @Param search query string false "Search in title and content"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size; omit for the capped unpaged shape"
// @Success 200 {object} dto.BlogListResponse
// @Failure 504 {object} response.ErrorResponse "Store timeout"
// @Router /api/blogs/published [get]
func (r *Routers) ListPublishedBlogs(c echo.Context) error {
	return r.list(c, "http.routers.ListPublishedBlogs", blogservice.ScopePublished)
}

// ListFeaturedBlogs godoc
// @Summary List featured blogs
// @Description Featured posts, visible published ones by default. An explicit status param overrides the default.
// @Tags blogs
// @Produce json
// @Param status query string false "Override the default published filter" Enums(draft, published)
// @Param search query string false "Search in title and content"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size; omit for the capped unpaged shape"
// @Success 200 {object} dto.BlogListResponse
// @Failure 504 {object} response.ErrorResponse "Store timeout"
// @Router /api/blogs/featured [get]
func (r *Routers) ListFeaturedBlogs(c echo.Context) error {
	return r.list(c, "http.routers.ListFeaturedBlogs", blogservice.ScopeFeatured)
}

// ListScheduledBlogs godoc
// @Summary List scheduled blogs
// @Description Published posts whose publish date is still in the future, soonest first.
// @Tags blogs
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size; omit for the capped unpaged shape"
// @Success 200 {object} dto.BlogListResponse
// @Failure 504 {object} response.ErrorResponse "Store timeout"
// @Security ApiKeyAuth
// @Router /api/blogs/scheduled [get]
func (r *Routers) ListScheduledBlogs(c echo.Context) error {
	return r.list(c, "http.routers.ListScheduledBlogs", blogservice.ScopeScheduled)
}

// GetBlog godoc
// @Summary Get a blog by id
// @Tags blogs
// @Produce json
// @Param id path string true "Blog UUID" format(uuid)
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} response.ErrorResponse "Malformed id"
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /api/blogs/{id} [get]
func (r *Routers) GetBlog(c echo.Context) error {
	const op = "http.routers.GetBlog"

	log := r.log.With(slog.String("op", op))

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid blog id", "invalid_id"))
	}

	blog, err := r.BlogService.GetByID(c.Request().Context(), blogID)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.BlogResponse{Success: true, Blog: blog})
}

// GetBlogBySlug godoc
// @Summary Get a blog by slug
// @Description Resolves a post by its slug. Published posts scheduled for the future answer 404 until their publish date arrives.
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} dto.BlogResponse
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /api/blogs/slug/{slug} [get]
func (r *Routers) GetBlogBySlug(c echo.Context) error {
	const op = "http.routers.GetBlogBySlug"

	log := r.log.With(slog.String("op", op))

	blog, err := r.BlogService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.BlogResponse{Success: true, Blog: blog})
}

// CreateBlog godoc
// @Summary Create a blog post
// @Description Accepts multipart form data with an optional image part. A missing slug is derived from the title; collisions get a numeric suffix.
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Post title"
// @Param content formData string true "Post body"
// @Param tags formData string true "Comma separated tags, at least one"
// @Param slug formData string false "Explicit slug"
// @Param status formData string false "draft or published"
// @Param image formData file false "Cover image"
// @Success 201 {object} dto.BlogResponse
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Security ApiKeyAuth
// @Router /api/blogs [post]
func (r *Routers) CreateBlog(c echo.Context) error {
	const op = "http.routers.CreateBlog"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateBlogRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	blog, err := r.BlogService.Create(c.Request().Context(), req, optionalImage(c), userID)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, dto.BlogResponse{Success: true, Blog: blog})
}

// UpdateBlog godoc
// @Summary Update a blog post
// @Description Partial update: absent fields keep their current value. An explicit slug that collides with another post is rejected. A new image replaces the previous one and its metadata wholesale.
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Blog UUID" format(uuid)
// @Param image formData file false "Replacement cover image"
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} response.ErrorResponse "Validation failed or slug taken"
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/blogs/{id} [put]
func (r *Routers) UpdateBlog(c echo.Context) error {
	const op = "http.routers.UpdateBlog"

	log := r.log.With(slog.String("op", op))

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid blog id", "invalid_id"))
	}

	var req dto.UpdateBlogRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	blog, err := r.BlogService.Update(c.Request().Context(), blogID, req, optionalImage(c))
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.BlogResponse{Success: true, Blog: blog})
}

// DeleteBlog godoc
// @Summary Delete a blog post
// @Description Removes the document, then releases its stored image best-effort.
// @Tags blogs
// @Produce json
// @Param id path string true "Blog UUID" format(uuid)
// @Success 200 {object} response.OK
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/blogs/{id} [delete]
func (r *Routers) DeleteBlog(c echo.Context) error {
	const op = "http.routers.DeleteBlog"

	log := r.log.With(slog.String("op", op))

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid blog id", "invalid_id"))
	}

	if err := r.BlogService.Delete(c.Request().Context(), blogID); err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.NewOK("blog deleted"))
}
