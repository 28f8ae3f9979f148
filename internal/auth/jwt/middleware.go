package jwtauth

import (
	"context"
	"net/http"
	"strings"

	"github.com/xw1nchester/tca-backend/internal/apperror"
	"go.uber.org/zap"
)

type UserIDContextKey struct{}

//go:generate mockgen -source=middleware.go -destination=mocks/mock.go -package=mockjwt
type TokenParser interface {
	ParseToken(tokenStr string) (*UserClaims, error)
}

func NewMiddleware(logger *zap.Logger, tokenParser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
				unauthorized(w)
				return
			}

			claims, err := tokenParser.ParseToken(headerParts[1])
			if err != nil {
				logger.Warn("error when parsing JWT token", zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey{}, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDContextKey{}).(string)
	return userID
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write(apperror.ErrUnauthorized.Marshal())
}
