package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogcaste/internal/lib/logger/sl"
	"blogcaste/internal/transport/http/dto"
	"blogcaste/internal/transport/http/dto/response"
)

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Router /api/categories [get]
func (r *Routers) ListCategories(c echo.Context) error {
	const op = "http.routers.ListCategories"

	log := r.log.With(slog.String("op", op))

	categories, err := r.CategoryService.List(c.Request().Context())
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryListResponse{
		Success:    true,
		Categories: categories,
		TotalCount: len(categories),
	})
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /api/categories/{id} [get]
func (r *Routers) GetCategory(c echo.Context) error {
	const op = "http.routers.GetCategory"

	log := r.log.With(slog.String("op", op))

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid category id", "invalid_id"))
	}

	category, err := r.CategoryService.GetByID(c.Request().Context(), categoryID)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryResponse{Success: true, Category: category})
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} response.ErrorResponse "Validation failed or name taken"
// @Security ApiKeyAuth
// @Router /api/categories [post]
func (r *Routers) CreateCategory(c echo.Context) error {
	const op = "http.routers.CreateCategory"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateCategoryRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	category, err := r.CategoryService.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, dto.CategoryResponse{Success: true, Category: category})
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Partial update. Renaming refreshes the category slug.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/categories/{id} [put]
func (r *Routers) UpdateCategory(c echo.Context) error {
	const op = "http.routers.UpdateCategory"

	log := r.log.With(slog.String("op", op))

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid category id", "invalid_id"))
	}

	var req dto.UpdateCategoryRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	category, err := r.CategoryService.Update(c.Request().Context(), categoryID, req.Name, req.Description)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryResponse{Success: true, Category: category})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Refused while any blog references the category; the error reports the reference count.
// @Tags categories
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Success 200 {object} response.OK
// @Failure 400 {object} response.ErrorResponse "Still referenced"
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/categories/{id} [delete]
func (r *Routers) DeleteCategory(c echo.Context) error {
	const op = "http.routers.DeleteCategory"

	log := r.log.With(slog.String("op", op))

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid category id", "invalid_id"))
	}

	if err := r.CategoryService.Delete(c.Request().Context(), categoryID); err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.NewOK("category deleted"))
}

// ListAuthors godoc
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {object} dto.AuthorListResponse
// @Router /api/authors [get]
func (r *Routers) ListAuthors(c echo.Context) error {
	const op = "http.routers.ListAuthors"

	log := r.log.With(slog.String("op", op))

	authors, err := r.AuthorService.List(c.Request().Context())
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthorListResponse{
		Success:    true,
		Authors:    authors,
		TotalCount: len(authors),
	})
}

// GetAuthor godoc
// @Summary Get an author
// @Tags authors
// @Produce json
// @Param id path string true "Author UUID" format(uuid)
// @Success 200 {object} dto.AuthorResponse
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /api/authors/{id} [get]
func (r *Routers) GetAuthor(c echo.Context) error {
	const op = "http.routers.GetAuthor"

	log := r.log.With(slog.String("op", op))

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid author id", "invalid_id"))
	}

	author, err := r.AuthorService.GetByID(c.Request().Context(), authorID)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthorResponse{Success: true, Author: author})
}

// CreateAuthor godoc
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param request body dto.CreateAuthorRequest true "Author payload"
// @Success 201 {object} dto.AuthorResponse
// @Failure 400 {object} response.ErrorResponse "Validation failed or name taken"
// @Security ApiKeyAuth
// @Router /api/authors [post]
func (r *Routers) CreateAuthor(c echo.Context) error {
	const op = "http.routers.CreateAuthor"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateAuthorRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	author, err := r.AuthorService.Create(c.Request().Context(), req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusCreated, dto.AuthorResponse{Success: true, Author: author})
}

// UpdateAuthor godoc
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path string true "Author UUID" format(uuid)
// @Param request body dto.UpdateAuthorRequest true "Fields to change"
// @Success 200 {object} dto.AuthorResponse
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/authors/{id} [put]
func (r *Routers) UpdateAuthor(c echo.Context) error {
	const op = "http.routers.UpdateAuthor"

	log := r.log.With(slog.String("op", op))

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid author id", "invalid_id"))
	}

	var req dto.UpdateAuthorRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))
	}

	author, err := r.AuthorService.Update(c.Request().Context(), authorID, req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthorResponse{Success: true, Author: author})
}

// DeleteAuthor godoc
// @Summary Delete an author
// @Description Refused while any blog references the author; the error reports the reference count.
// @Tags authors
// @Produce json
// @Param id path string true "Author UUID" format(uuid)
// @Success 200 {object} response.OK
// @Failure 400 {object} response.ErrorResponse "Still referenced"
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Security ApiKeyAuth
// @Router /api/authors/{id} [delete]
func (r *Routers) DeleteAuthor(c echo.Context) error {
	const op = "http.routers.DeleteAuthor"

	log := r.log.With(slog.String("op", op))

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid author id", "invalid_id"))
	}

	if err := r.AuthorService.Delete(c.Request().Context(), authorID); err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.NewOK("author deleted"))
}
