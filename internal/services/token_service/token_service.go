package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blogcaste/internal/domain/models"
	libjwt "blogcaste/internal/lib/jwt"
	"blogcaste/internal/repository"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenNotInStorage  = errors.New("token not found in storage")
)

type TokenService struct {
	repo            repository.TokenRepository
	secret          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenService(repo repository.TokenRepository, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		repo:            repo,
		secret:          secret,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// GenerateTokens issues a fresh access/refresh pair and stores the refresh
// token so it can be revoked.
func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	accessToken, err := libjwt.NewToken(user, s.secret, s.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := libjwt.NewToken(user, s.secret, s.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.refreshTokenTTL); err != nil {
		return nil, err
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens rotates a refresh token: the presented token must still be
// in storage, is deleted on use, and a new pair is issued.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["uid"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	exists, err := s.repo.GetRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenNotInStorage
	}

	if err := s.repo.DeleteRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrInvalidTokenClaims
	}

	return s.GenerateTokens(ctx, models.User{ID: id, Email: email})
}

// RevokeAll drops every refresh token of a user, ending all sessions.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllUserTokens(ctx, userID.String())
}
