package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogcaste/internal/lib/logger/sl"
	"blogcaste/internal/metrics"
	authorservice "blogcaste/internal/services/author_service"
	blogservice "blogcaste/internal/services/blog_service"
	categoryservice "blogcaste/internal/services/category_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/internal/storage"
	"blogcaste/internal/transport/http/dto/response"
)

// serviceError maps service-layer failures onto the uniform error
// envelope. Unclassified errors become a 500 whose detail is suppressed in
// prod.
func (r *Routers) serviceError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, blogservice.ErrValidation):
		return c.JSON(http.StatusBadRequest, response.NewError("Validation failed", err.Error()))

	case errors.Is(err, blogservice.ErrSlugTaken):
		return c.JSON(http.StatusBadRequest, response.NewError("Slug is already in use", "slug_taken"))

	case errors.Is(err, blogservice.ErrNotFound),
		errors.Is(err, categoryservice.ErrNotFound),
		errors.Is(err, authorservice.ErrNotFound),
		errors.Is(err, userservice.ErrUserNotFound),
		errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)

	case errors.Is(err, categoryservice.ErrReferenced):
		var refErr *categoryservice.ReferencedError
		if errors.As(err, &refErr) {
			return c.JSON(http.StatusBadRequest, response.NewError(
				fmt.Sprintf("Cannot delete: %d blogs reference this category", refErr.Count),
				"referenced",
			))
		}
		return c.JSON(http.StatusBadRequest, response.NewError("Cannot delete: category is referenced by blogs", "referenced"))

	case errors.Is(err, authorservice.ErrReferenced):
		var refErr *authorservice.ReferencedError
		if errors.As(err, &refErr) {
			return c.JSON(http.StatusBadRequest, response.NewError(
				fmt.Sprintf("Cannot delete: %d blogs reference this author", refErr.Count),
				"referenced",
			))
		}
		return c.JSON(http.StatusBadRequest, response.NewError("Cannot delete: author is referenced by blogs", "referenced"))

	case errors.Is(err, categoryservice.ErrNameTaken),
		errors.Is(err, authorservice.ErrNameTaken):
		return c.JSON(http.StatusBadRequest, response.NewError("Name is already in use", "name_taken"))

	case errors.Is(err, userservice.ErrUserExists):
		return c.JSON(http.StatusBadRequest, response.NewError("Email is already registered", "user_exists"))

	case errors.Is(err, userservice.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.NewError("Invalid email or password", "unauthorized"))

	case errors.Is(err, storage.ErrTimeout):
		metrics.ListingTimeouts.Inc()
		return c.JSON(http.StatusGatewayTimeout, response.ErrStoreTimeout)
	}

	log.Error("unhandled service error", sl.Err(err))

	detail := "internal_error"
	if !r.prod {
		detail = err.Error()
	}

	return c.JSON(http.StatusInternalServerError, response.NewError("Internal server error", detail))
}
