// Package suite wires an in-memory service stack for functional tests
// that exercise the auth flow end to end without external backends.
package suite

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
	tokenservice "blogcaste/internal/services/token_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/internal/storage"
)

const (
	TokenSecret     = "test-secret"
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type Suite struct {
	*testing.T
	UserService  *userservice.UserService
	TokenService *tokenservice.TokenService
	Users        *MemUserRepo
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Hour)
	t.Cleanup(cancelCtx)

	users := NewMemUserRepo()
	tokens := NewMemTokenRepo()

	tokenService := tokenservice.NewTokenService(tokens, TokenSecret, AccessTokenTTL, RefreshTokenTTL)
	userService := userservice.NewUserService(log, users, tokenService)

	return ctx, &Suite{
		T:            t,
		UserService:  userService,
		TokenService: tokenService,
		Users:        users,
	}
}

// MemUserRepo is a map-backed UserRepository with the same error contract
// as the Postgres one.
type MemUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *MemUserRepo) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uuid.Nil, storage.ErrUserExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = user

	return user.ID, nil
}

func (r *MemUserRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return models.User{}, storage.ErrUserNotFound
}

func (r *MemUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return u, nil
}

func (r *MemUserRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}

	return u.IsAdmin(), nil
}

func (r *MemUserRepo) CountUsers(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users), nil
}

// MemTokenRepo mirrors the Redis refresh token store.
type MemTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewMemTokenRepo() *MemTokenRepo {
	return &MemTokenRepo{tokens: make(map[string]struct{})}
}

func key(userID, token string) string {
	return userID + ":" + token
}

func (r *MemTokenRepo) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[key(userID, token)] = struct{}{}
	return nil
}

func (r *MemTokenRepo) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tokens[key(userID, token)]
	return ok, nil
}

func (r *MemTokenRepo) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, key(userID, token))
	return nil
}

func (r *MemTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.tokens {
		if strings.HasPrefix(k, userID+":") {
			delete(r.tokens, k)
		}
	}
	return nil
}
