package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/stretchr/testify/assert"
)

const consentURL = "https://accounts.spotify.com/authorize?client_id=abc&state=s1"

func TestSpotifyAuthorizeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSpotifyAuthorizer(ctrl)
	userID := uuid.New()

	t.Run("json for anonymous caller", func(t *testing.T) {
		mockSvc.EXPECT().AuthorizationURL(gomock.Any(), uuid.Nil).Return(consentURL, nil)

		rr := serve(http.MethodGet, "/authorize", "/authorize", nil, NewSpotifyAuthorizeHandler(mockSvc))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, consentURL, decode[models.SpotifyAuthorizeResponse](t, rr).URL)
	})

	t.Run("redirect for signed in caller", func(t *testing.T) {
		mockSvc.EXPECT().AuthorizationURL(gomock.Any(), userID).Return(consentURL, nil)

		rr := serve(http.MethodGet, "/authorize", "/authorize?redirect=true", nil,
			asUser(t, ctrl, userID, NewSpotifyAuthorizeHandler(mockSvc)))

		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Equal(t, consentURL, rr.Header().Get("Location"))
	})

	t.Run("state not stored", func(t *testing.T) {
		mockSvc.EXPECT().AuthorizationURL(gomock.Any(), userID).
			Return("", apperrors.Internal("failed to store authorization state", assert.AnError))

		rr := serve(http.MethodGet, "/authorize", "/authorize", nil,
			asUser(t, ctrl, userID, NewSpotifyAuthorizeHandler(mockSvc)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Internal server error", decode[models.ErrorResponse](t, rr).Error)
	})
}

func TestSpotifyCallbackHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSpotifyAuthorizer(ctrl)
	resp := &models.SpotifyCallbackResponse{
		Status:  "success",
		Token:   models.SpotifyToken{AccessToken: "at"},
		Profile: &models.SpotifyUser{ID: "31xyzabc"},
	}

	tests := []struct {
		name         string
		target       string
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name:   "success",
			target: "/callback?code=c1&state=s1",
			mockSetup: func() {
				mockSvc.EXPECT().Callback(gomock.Any(), "c1", "s1", uuid.Nil).Return(resp, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "consent denied",
			target:       "/callback?error=access_denied&state=s1",
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Spotify authorization failed: access_denied",
		},
		{
			name:   "exchange failed",
			target: "/callback?code=bad&state=s1",
			mockSetup: func() {
				mockSvc.EXPECT().Callback(gomock.Any(), "bad", "s1", uuid.Nil).
					Return(nil, apperrors.Upstream("Error during Spotify callback", assert.AnError))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Error during Spotify callback: " + assert.AnError.Error(),
		},
		{
			name:   "unknown user",
			target: "/callback?code=c1",
			mockSetup: func() {
				mockSvc.EXPECT().Callback(gomock.Any(), "c1", "", uuid.Nil).
					Return(nil, apperrors.Unauthorized("Unable to identify the user of this authorization"))
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rr := serve(http.MethodGet, "/callback", tt.target, nil, NewSpotifyCallbackHandler(mockSvc))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decode[models.ErrorResponse](t, rr).Error)
			}
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "31xyzabc", decode[models.SpotifyCallbackResponse](t, rr).Profile.ID)
			}
		})
	}
}

func TestSpotifyTokenHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSpotifyTokenProvider(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().CachedToken(gomock.Any(), userID).Return("at", nil)
	rr := serve(http.MethodGet, "/token", "/token?user_id="+userID.String(), nil, NewSpotifyTokenHandler(mockSvc))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.SpotifyCachedTokenResponse{Status: "success", Token: "at"},
		decode[models.SpotifyCachedTokenResponse](t, rr))

	other := uuid.New()
	mockSvc.EXPECT().CachedToken(gomock.Any(), other).
		Return("", apperrors.Unauthorized("Token not found. Please authorize via /authorize."))
	rr = serve(http.MethodGet, "/token", "/token?user_id="+other.String(), nil, NewSpotifyTokenHandler(mockSvc))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(http.MethodGet, "/token", "/token", nil, NewSpotifyTokenHandler(mockSvc))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	mockSvc.EXPECT().Refresh(gomock.Any(), userID).Return(&models.SpotifyToken{AccessToken: "at2"}, nil)
	rr = serve(http.MethodPost, "/refresh", "/refresh", nil, asUser(t, ctrl, userID, NewSpotifyRefreshHandler(mockSvc)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "at2", decode[models.SpotifyToken](t, rr).AccessToken)
}

func TestSpotifyProfileHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSpotifyProfiler(ctrl)
	userID := uuid.New()

	mockSvc.EXPECT().CurrentUser(gomock.Any(), userID).Return(&models.SpotifyUser{ID: "me"}, nil)
	rr := serve(http.MethodGet, "/user", "/user", nil, asUser(t, ctrl, userID, NewSpotifyCurrentUserHandler(mockSvc)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "me", decode[models.SpotifyUser](t, rr).ID)

	mockSvc.EXPECT().User(gomock.Any(), userID, "friend1").Return(&models.SpotifyUser{ID: "friend1"}, nil)
	rr = serve(http.MethodGet, "/user/{spotifyId}", "/user/friend1", nil, asUser(t, ctrl, userID, NewSpotifyUserHandler(mockSvc)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "friend1", decode[models.SpotifyUser](t, rr).ID)

	mockSvc.EXPECT().User(gomock.Any(), userID, "gone").
		Return(nil, apperrors.Upstream("Unexpected error occurred while retrieving user", assert.AnError))
	rr = serve(http.MethodGet, "/user/{spotifyId}", "/user/gone", nil, asUser(t, ctrl, userID, NewSpotifyUserHandler(mockSvc)))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, rr).Error, "Unexpected error occurred while retrieving user")
}

func TestSyncCurrentlyPlayingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPlaybackSyncer(ctrl)
	userID := uuid.New()
	label := "Daft Punk - One More Time"

	mockSvc.EXPECT().SyncCurrentlyPlaying(gomock.Any(), userID).
		Return(&models.UserOut{ID: userID, CurrentlyPlaying: &label, IsOnline: true}, nil)

	rr := serve(http.MethodPost, "/sync", "/sync", nil, asUser(t, ctrl, userID, NewSyncCurrentlyPlayingHandler(mockSvc)))

	assert.Equal(t, http.StatusOK, rr.Code)
	got := decode[models.UserOut](t, rr)
	assert.Equal(t, label, *got.CurrentlyPlaying)
	assert.True(t, got.IsOnline)
}

func TestHealthHandler(t *testing.T) {
	rr := serve(http.MethodGet, "/health-check", "/health-check", nil, NewHealthHandler())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
