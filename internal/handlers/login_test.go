package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name         string
		inputBody    any
		mockSetup    func()
		expectedCode int
		expectedBody any
	}{
		{
			name: "success",
			inputBody: models.LoginRequest{
				Email:    "alice@x.com",
				Password: "Passw0rd",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "alice@x.com", "Passw0rd").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: models.LoginResponse{
				Token: "JWT_TOKEN",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name: "wrong credentials",
			inputBody: models.LoginRequest{
				Email:    "alice@x.com",
				Password: "wrongpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "alice@x.com", "wrongpass").
					Return("", apperrors.Unauthorized("Invalid email or password"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: models.ErrorResponse{
				Error: "Invalid email or password",
			},
		},
		{
			name: "internal error",
			inputBody: models.LoginRequest{
				Email:    "alice@x.com",
				Password: "Passw0rd",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "alice@x.com", "Passw0rd").
					Return("", errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: models.ErrorResponse{
				Error: "Internal server error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rr := serve(http.MethodPost, "/login", "/login", tt.inputBody, NewLoginHandler(mockSvc))

			assert.Equal(t, tt.expectedCode, rr.Code)
			switch want := tt.expectedBody.(type) {
			case models.LoginResponse:
				assert.Equal(t, want, decode[models.LoginResponse](t, rr))
			case models.ErrorResponse:
				assert.Equal(t, want, decode[models.ErrorResponse](t, rr))
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().Logout(gomock.Any(), "token").Return(nil)
	rr := serve(http.MethodPost, "/logout", "/logout", nil, asUser(t, ctrl, userID, NewLogoutHandler(mockSvc)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged out", decode[models.StatusResponse](t, rr).Status)

	mockSvc.EXPECT().Logout(gomock.Any(), "token").Return(apperrors.Unauthorized("Invalid or expired token"))
	rr = serve(http.MethodPost, "/logout", "/logout", nil, asUser(t, ctrl, userID, NewLogoutHandler(mockSvc)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
