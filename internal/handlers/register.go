package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/syncify/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in models.UserCreate) (*models.UserOut, *models.TokenDB, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account and signs it in. Ensures unique display name and email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.UserCreate true "User registration request"
// @Success 201 {object} models.RegisterResponse "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Email or display name already exists / invalid request"
// @Router /app-auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserCreate
		if !decodeJSON(w, r, &req) {
			return
		}

		user, token, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.RegisterResponse{
			User:  user,
			Token: token.Token,
		})
	}
}
