package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/middlewares"
	"github.com/sbilibin2017/syncify/internal/models"
)

// SpotifyAuthorizer starts and completes the Spotify consent flow.
type SpotifyAuthorizer interface {
	AuthorizationURL(ctx context.Context, userID uuid.UUID) (string, error)
	Callback(ctx context.Context, code, state string, userID uuid.UUID) (*models.SpotifyCallbackResponse, error)
}

// SpotifyTokenProvider exposes the cached Spotify tokens of a user.
type SpotifyTokenProvider interface {
	CachedToken(ctx context.Context, userID uuid.UUID) (string, error)
	Refresh(ctx context.Context, userID uuid.UUID) (*models.SpotifyToken, error)
}

// SpotifyProfiler reads Spotify profiles on behalf of a user.
type SpotifyProfiler interface {
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.SpotifyUser, error)
	User(ctx context.Context, userID uuid.UUID, spotifyID string) (*models.SpotifyUser, error)
}

// PlaybackSyncer copies the player state into the user profile.
type PlaybackSyncer interface {
	SyncCurrentlyPlaying(ctx context.Context, userID uuid.UUID) (*models.UserOut, error)
}

// NewSpotifyAuthorizeHandler returns an HTTP handler producing the Spotify consent URL.
// @Summary Spotify authorization URL
// @Description Returns the consent URL, or redirects to it when redirect=true. A signed in caller is remembered for the callback.
// @Tags spotify
// @Produce json
// @Param redirect query bool false "Redirect instead of returning JSON"
// @Success 200 {object} models.SpotifyAuthorizeResponse
// @Success 307
// @Router /spotify/authorize [get]
func NewSpotifyAuthorizeHandler(svc SpotifyAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		url, err := svc.AuthorizationURL(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		if r.URL.Query().Get("redirect") == "true" {
			http.Redirect(w, r, url, http.StatusTemporaryRedirect)
			return
		}

		writeJSON(w, http.StatusOK, models.SpotifyAuthorizeResponse{URL: url})
	}
}

// NewSpotifyCallbackHandler returns the OAuth redirect target.
// @Summary Spotify OAuth callback
// @Description Exchanges the authorization code, caches the tokens and links the Spotify account to the user.
// @Tags spotify
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string false "State returned by /spotify/authorize"
// @Success 200 {object} models.SpotifyCallbackResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse "Spotify rejected the exchange"
// @Router /spotify/callback [get]
func NewSpotifyCallbackHandler(svc SpotifyAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if reason := q.Get("error"); reason != "" {
			writeMessage(w, http.StatusUnauthorized, "Spotify authorization failed: "+reason)
			return
		}

		userID, _ := middlewares.UserIDFromContext(r.Context())

		resp, err := svc.Callback(r.Context(), q.Get("code"), q.Get("state"), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewSpotifyTokenHandler returns an HTTP handler reading a cached access token.
// @Summary Cached Spotify token
// @Tags spotify
// @Produce json
// @Param user_id query string true "User id"
// @Success 200 {object} models.SpotifyCachedTokenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "No token cached for the user"
// @Router /spotify/token [get]
func NewSpotifyTokenHandler(svc SpotifyTokenProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid user_id")
			return
		}

		token, err := svc.CachedToken(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.SpotifyCachedTokenResponse{
			Status: "success",
			Token:  token,
		})
	}
}

// NewSpotifyRefreshHandler returns an HTTP handler renewing the caller's Spotify token.
// @Summary Refresh Spotify token
// @Tags spotify
// @Produce json
// @Success 200 {object} models.SpotifyToken
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /spotify/refresh [post]
func NewSpotifyRefreshHandler(svc SpotifyTokenProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		token, err := svc.Refresh(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, token)
	}
}

// NewSpotifyCurrentUserHandler returns an HTTP handler for the caller's Spotify profile.
// @Summary Current Spotify profile
// @Tags spotify
// @Produce json
// @Success 200 {object} models.SpotifyUser
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /spotify/user [get]
func NewSpotifyCurrentUserHandler(svc SpotifyProfiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		profile, err := svc.CurrentUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

// NewSpotifyUserHandler returns an HTTP handler for a public Spotify profile.
// @Summary Spotify profile
// @Tags spotify
// @Produce json
// @Param spotifyId path string true "Spotify user id"
// @Success 200 {object} models.SpotifyUser
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /spotify/user/{spotifyId} [get]
func NewSpotifyUserHandler(svc SpotifyProfiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		profile, err := svc.User(r.Context(), userID, chi.URLParam(r, "spotifyId"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

// NewSyncCurrentlyPlayingHandler returns an HTTP handler refreshing the caller's currently playing track.
// @Summary Sync currently playing
// @Tags spotify
// @Produce json
// @Success 200 {object} models.UserOut
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /spotify/currently-playing/sync [post]
func NewSyncCurrentlyPlayingHandler(svc PlaybackSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		user, err := svc.SyncCurrentlyPlaying(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
