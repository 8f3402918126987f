package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/syncify/internal/middlewares"
	"github.com/sbilibin2017/syncify/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Logouter revokes a bearer token.
type Logouter interface {
	Logout(ctx context.Context, tokenString string) error
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "JWT token returned"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid email or password"
// @Router /app-auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.LoginResponse{
			Token: token,
		})
	}
}

// NewLogoutHandler returns an HTTP handler deactivating the caller's token.
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /app-auth/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middlewares.TokenFromContext(r.Context())); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.StatusResponse{Status: "logged out"})
	}
}
