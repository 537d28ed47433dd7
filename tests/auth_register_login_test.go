package tests

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libjwt "blogcaste/internal/lib/jwt"
	tokenservice "blogcaste/internal/services/token_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/tests/suite"
)

const passDefaultLen = 10

func randomFakePassword() string {
	return gofakeit.Password(true, true, true, true, false, passDefaultLen)
}

func TestRegisterLogin_HappyPath(t *testing.T) {
	ctx, st := suite.New(t)

	email := gofakeit.Email()
	pass := randomFakePassword()
	name := gofakeit.FirstName()

	userID, err := st.UserService.Register(ctx, name, email, pass)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)

	loginTime := time.Now()

	pair, err := st.UserService.Login(ctx, email, pass)
	require.NoError(t, err)
	assert.Equal(t, userID, pair.UserID)

	tokenParsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(suite.TokenSecret), nil
	})
	require.NoError(t, err)

	claims, ok := tokenParsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, email, claims["email"].(string))
	assert.Equal(t, userID.String(), claims["uid"].(string))

	const deltaSeconds = 1
	assert.InDelta(t, loginTime.Add(suite.AccessTokenTTL).Unix(), claims["exp"].(float64), deltaSeconds)

	verifiedID, err := libjwt.VerifyToken(pair.AccessToken, suite.TokenSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, verifiedID)
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	ctx, st := suite.New(t)

	firstID, err := st.UserService.Register(ctx, gofakeit.FirstName(), gofakeit.Email(), randomFakePassword())
	require.NoError(t, err)

	secondID, err := st.UserService.Register(ctx, gofakeit.FirstName(), gofakeit.Email(), randomFakePassword())
	require.NoError(t, err)

	isAdmin, err := st.UserService.IsAdmin(ctx, firstID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = st.UserService.IsAdmin(ctx, secondID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx, st := suite.New(t)

	email := gofakeit.Email()

	_, err := st.UserService.Register(ctx, gofakeit.FirstName(), email, randomFakePassword())
	require.NoError(t, err)

	_, err = st.UserService.Register(ctx, gofakeit.FirstName(), email, randomFakePassword())
	assert.ErrorIs(t, err, userservice.ErrUserExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx, st := suite.New(t)

	email := gofakeit.Email()

	_, err := st.UserService.Register(ctx, gofakeit.FirstName(), email, randomFakePassword())
	require.NoError(t, err)

	_, err = st.UserService.Login(ctx, email, randomFakePassword())
	assert.ErrorIs(t, err, userservice.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx, st := suite.New(t)

	email := gofakeit.Email()
	pass := randomFakePassword()

	_, err := st.UserService.Register(ctx, gofakeit.FirstName(), email, pass)
	require.NoError(t, err)

	pair, err := st.UserService.Login(ctx, email, pass)
	require.NoError(t, err)

	rotated, err := st.TokenService.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the spent token cannot be replayed
	_, err = st.TokenService.RefreshTokens(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, tokenservice.ErrTokenNotInStorage)
}
