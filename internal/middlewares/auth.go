package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
)

// Tokener defines the minimal interface needed to read a bearer token.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator verifies a bearer token and returns the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type authKey struct{}

type authInfo struct {
	userID uuid.UUID
	token  string
}

// AuthMiddleware rejects requests without a valid, active bearer token and
// stores the authenticated user in the request context.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return authMiddleware(tokener, auth, false)
}

// OptionalAuthMiddleware authenticates the request when it carries a token
// and lets anonymous requests through. An invalid token is still rejected.
func OptionalAuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return authMiddleware(tokener, auth, true)
}

func authMiddleware(tokener Tokener, auth Authenticator, optional bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			userID, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			ctx = context.WithValue(ctx, authKey{}, authInfo{userID: userID, token: tokenString})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	info, ok := ctx.Value(authKey{}).(authInfo)
	return info.userID, ok
}

// TokenFromContext returns the bearer token the request was authenticated with.
func TokenFromContext(ctx context.Context) string {
	info, _ := ctx.Value(authKey{}).(authInfo)
	return info.token
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Unauthorized"})
}
