package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xw1nchester/tca-backend/internal/config"
)

const issuer = "tca"

var ErrInvalidToken = errors.New("invalid token")

type manager struct {
	jwtConfig config.JWT
}

func NewManager(jwtConfig config.JWT) *manager {
	return &manager{
		jwtConfig: jwtConfig,
	}
}

type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type customClaims struct {
	jwt.RegisteredClaims
	UserClaims
}

func (m *manager) GenerateToken(user UserClaims) (string, error) {
	now := time.Now()

	customClaims := customClaims{
		jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.jwtConfig.AccessTokenTTL)),
		},
		user,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, customClaims)

	return token.SignedString([]byte(m.jwtConfig.Secret))
}

func (m *manager) GetAccessTokenTTL() time.Duration {
	return m.jwtConfig.AccessTokenTTL
}

func (m *manager) GetRefreshTokenTTL() time.Duration {
	return m.jwtConfig.RefreshTokenTTL
}

func (m *manager) GetResetTokenTTL() time.Duration {
	return m.jwtConfig.ResetTokenTTL
}

func (m *manager) ParseToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &customClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.jwtConfig.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*customClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}

	return &claims.UserClaims, nil
}
