package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/sbilibin2017/syncify/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	in := models.UserCreate{DisplayName: "Alice1", Email: "alice@x.com", Password: "Passw0rd"}
	user := &models.UserOut{ID: uuid.New(), DisplayName: "Alice1", Email: "alice@x.com"}
	token := &models.TokenDB{ID: uuid.New(), UserID: user.ID, Token: "JWT_TOKEN", IsActive: true}

	tests := []struct {
		name         string
		inputBody    any
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name:      "success",
			inputBody: in,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), in).Return(user, token, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid request body",
		},
		{
			name:      "display name exists",
			inputBody: in,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), in).
					Return(nil, nil, services.ErrDisplayNameAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Display name already registered",
		},
		{
			name:      "weak password",
			inputBody: in,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), in).
					Return(nil, nil, services.ErrPasswordNotStrongEnough)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "internal error",
			inputBody: in,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), in).Return(nil, nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rr := serve(http.MethodPost, "/register", "/register", tt.inputBody, NewRegisterHandler(mockSvc))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusCreated {
				got := decode[models.RegisterResponse](t, rr)
				assert.Equal(t, "JWT_TOKEN", got.Token)
				assert.Equal(t, user.ID, got.User.ID)
				return
			}
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decode[models.ErrorResponse](t, rr).Error)
			}
		})
	}
}
