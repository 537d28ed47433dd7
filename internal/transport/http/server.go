package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/lib/logger/sl"
	blogservice "blogcaste/internal/services/blog_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/internal/transport/http/dto"
	"blogcaste/internal/transport/http/dto/request"
	"blogcaste/internal/transport/http/dto/response"

	_ "blogcaste/docs"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type TokenService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type BlogService interface {
	List(ctx context.Context, q blogservice.ListQuery) (*dto.BlogListResponse, error)
	GetByID(ctx context.Context, blogID uuid.UUID) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Create(ctx context.Context, req dto.CreateBlogRequest, image *multipart.FileHeader, createdBy uuid.UUID) (*models.Blog, error)
	Update(ctx context.Context, blogID uuid.UUID, req dto.UpdateBlogRequest, image *multipart.FileHeader) (*models.Blog, error)
	Delete(ctx context.Context, blogID uuid.UUID) error
}

type CategoryService interface {
	Create(ctx context.Context, name, description string) (*models.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, name, description *string) (*models.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
	GetByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type AuthorService interface {
	Create(ctx context.Context, name, bio, avatarURL string) (*models.Author, error)
	Update(ctx context.Context, authorID uuid.UUID, name, bio, avatarURL *string) (*models.Author, error)
	Delete(ctx context.Context, authorID uuid.UUID) error
	GetByID(ctx context.Context, authorID uuid.UUID) (*models.Author, error)
	List(ctx context.Context) ([]models.Author, error)
}

// HealthChecker is implemented by the storage backends the health endpoint
// probes.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log             *slog.Logger
	prod            bool
	UserService     UserService
	TokenService    TokenService
	BlogService     BlogService
	CategoryService CategoryService
	AuthorService   AuthorService
	store           HealthChecker
	cache           HealthChecker
}

func NewRouter(
	log *slog.Logger,
	prod bool,
	userService UserService,
	tokenService TokenService,
	blogService BlogService,
	categoryService CategoryService,
	authorService AuthorService,
	store HealthChecker,
	cache HealthChecker,
) *Routers {
	return &Routers{
		log:             log,
		prod:            prod,
		UserService:     userService,
		TokenService:    tokenService,
		BlogService:     blogService,
		CategoryService: categoryService,
		AuthorService:   authorService,
		store:           store,
		cache:           cache,
	}
}

// userIDFromToken pulls the authenticated user id out of the JWT the auth
// middleware already verified.
func userIDFromToken(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	userID, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	return userID, nil
}

// Signup godoc
// @Summary Register a new account
// @Description Creates a user account. The first account registered in the system gets the admin role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup payload"
// @Success 201 {object} response.OK
// @Failure 400 {object} response.ErrorResponse "Invalid request format or email already registered"
// @Router /api/auth/signup [post]
func (r *Routers) Signup(c echo.Context) error {
	const op = "http.routers.Signup"

	log := r.log.With(slog.String("op", op))

	var req dto.SignupRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid request format", err.Error()))
	}

	userID, err := r.UserService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	log.Info("user registered", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"userId":  userID,
	})
}

// Login godoc
// @Summary Authenticate
// @Description Verifies credentials and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login payload"
// @Success 200 {object} models.TokenPair
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid login request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.NewError("Invalid request format", err.Error()))
	}

	pair, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"userId":       pair.UserID,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Description Exchanges a valid refresh token for a new token pair. The presented token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh payload"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} response.ErrorResponse "Invalid refresh token"
// @Router /api/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(slog.String("op", op))

	var req request.RefreshRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("refresh rejected", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.NewError("Invalid refresh token", "unauthorized"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"userId":       pair.UserID,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout godoc
// @Summary End all sessions
// @Description Revokes every refresh token of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} response.OK
// @Failure 401 {object} response.ErrorResponse "Authentication required"
// @Security ApiKeyAuth
// @Router /api/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return err
	}

	if err := r.TokenService.RevokeAll(c.Request().Context(), userID); err != nil {
		log.Error("failed to revoke tokens", sl.Err(err))
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.NewOK("logged out"))
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} response.ErrorResponse "Authentication required"
// @Security ApiKeyAuth
// @Router /api/users/me [get]
func (r *Routers) Me(c echo.Context) error {
	const op = "http.routers.Me"

	log := r.log.With(slog.String("op", op))

	userID, err := userIDFromToken(c)
	if err != nil {
		return err
	}

	user, err := r.UserService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return r.serviceError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

// Health godoc
// @Summary Service health
// @Description Reports connectivity of the document store and the token cache.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	report := map[string]string{"store": "ok", "cache": "ok"}

	if err := r.store.HealthCheck(ctx); err != nil {
		r.log.Error("store health check failed", sl.Err(err))
		report["store"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := r.cache.HealthCheck(ctx); err != nil {
		r.log.Error("cache health check failed", sl.Err(err))
		report["cache"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, report)
}

// AdminOnly gates a route group on the authenticated user's role.
func (r *Routers) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := userIDFromToken(c)
		if err != nil {
			return err
		}

		isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, userservice.ErrUserNotFound) {
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
			}
			r.log.Error("failed to check admin role", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.NewError("Internal server error", "internal_error"))
		}
		if !isAdmin {
			return c.JSON(http.StatusForbidden, response.ErrAdminRequired)
		}

		return next(c)
	}
}
