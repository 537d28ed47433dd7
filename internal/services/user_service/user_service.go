package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"blogcaste/internal/domain/models"
	"blogcaste/internal/lib/logger/sl"
	"blogcaste/internal/repository"
	"blogcaste/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	adminCacheTTL     = 5 * time.Minute
	adminCacheCleanup = 10 * time.Minute
)

type TokenIssuer interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log        *slog.Logger
	repo       repository.UserRepository
	tokens     TokenIssuer
	adminCache *cache.Cache
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		log:        log,
		repo:       repo,
		tokens:     tokens,
		adminCache: cache.New(adminCacheTTL, adminCacheCleanup),
	}
}

// Register creates a user account. The very first account in the system
// gets the admin role so a fresh deployment can be bootstrapped without a
// seed script. The count-then-insert pair is not transactional; two truly
// simultaneous first signups could both become admin.
func (s *UserService) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	const op = "user_service.Register"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	role := models.RoleUser
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		log.Error("failed to count users", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		role = models.RoleAdmin
		log.Info("first user, granting admin role")
	}

	user := models.User{
		Name:      name,
		Email:     email,
		Password:  passHash,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))

	return id, nil
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords both surface as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "user_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return pair, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "user_service.GetUserByID"

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("failed to get user", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// IsAdmin answers the role check behind every admin-only endpoint. The
// result is cached briefly; a role change takes up to adminCacheTTL to be
// picked up.
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "user_service.IsAdmin"

	key := userID.String()
	if cached, found := s.adminCache.Get(key); found {
		return cached.(bool), nil
	}

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		s.log.Error("failed to check role", slog.String("op", op), sl.Err(err))

		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.adminCache.Set(key, isAdmin, cache.DefaultExpiration)

	return isAdmin, nil
}
