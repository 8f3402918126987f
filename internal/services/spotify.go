package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/sbilibin2017/syncify/internal/spotify"
)

// StateTTL is how long an authorization state stays redeemable.
const StateTTL = 10 * time.Minute

// Cache key prefixes.
const (
	spotifyTokenKey   = "spotify:token:"
	spotifyRefreshKey = "spotify:refresh:"
	spotifyStateKey   = "spotify:state:"
)

var (
	ErrSpotifyNotAuthorized = apperrors.Unauthorized("Token not found. Please authorize via /authorize.")
	ErrSpotifyUnknownUser   = apperrors.Unauthorized("Unable to identify the user of this authorization")
)

// SpotifyAuthorizer defines the OAuth operations against Spotify accounts.
type SpotifyAuthorizer interface {
	AuthorizationURL(state string) string
	Exchange(ctx context.Context, code string) (*models.SpotifyToken, error)
	Refresh(ctx context.Context, token models.SpotifyToken) (*models.SpotifyToken, error)
}

// SpotifyAPI defines the Web API calls used by the service.
type SpotifyAPI interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*models.SpotifyUser, error)
	GetUser(ctx context.Context, accessToken, spotifyID string) (*models.SpotifyUser, error)
	GetCurrentlyPlaying(ctx context.Context, accessToken string) (*models.SpotifyCurrentlyPlaying, error)
}

// Cache defines the session cache.
type Cache interface {
	SetKey(ctx context.Context, key string, value any, ttl time.Duration) error
	GetKey(ctx context.Context, key string, dst any) (bool, error)
	DeleteKey(ctx context.Context, key string) (bool, error)
}

// SpotifyService links users to their Spotify accounts and keeps their
// Spotify tokens in the cache.
type SpotifyService struct {
	auth   SpotifyAuthorizer
	api    SpotifyAPI
	cache  Cache
	reader UserReader
	writer UserWriter

	refreshTTL time.Duration // zero keeps refresh tokens until overwritten
}

// SpotifyOpt configures a SpotifyService.
type SpotifyOpt func(*SpotifyService)

// WithRefreshTokenTTL bounds how long a cached refresh token lives.
func WithRefreshTokenTTL(ttl time.Duration) SpotifyOpt {
	return func(s *SpotifyService) { s.refreshTTL = ttl }
}

// NewSpotifyService creates a new SpotifyService.
func NewSpotifyService(auth SpotifyAuthorizer, api SpotifyAPI, cache Cache, reader UserReader, writer UserWriter, opts ...SpotifyOpt) *SpotifyService {
	s := &SpotifyService{
		auth:   auth,
		api:    api,
		cache:  cache,
		reader: reader,
		writer: writer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthorizationURL returns the Spotify consent URL. When userID is known a
// random state is remembered so the callback can be tied back to the user.
func (s *SpotifyService) AuthorizationURL(ctx context.Context, userID uuid.UUID) (string, error) {
	state := uuid.NewString()
	if userID != uuid.Nil {
		if err := s.cache.SetKey(ctx, spotifyStateKey+state, userID, StateTTL); err != nil {
			logger.Log.Errorw("failed to store authorization state", "user_id", userID, "err", err)
			return "", apperrors.Internal("failed to store authorization state", err)
		}
	}
	return s.auth.AuthorizationURL(state), nil
}

// Callback exchanges code for tokens, caches them for the user and links the
// Spotify profile to it. userID may be uuid.Nil when the caller is only known
// through state.
func (s *SpotifyService) Callback(ctx context.Context, code, state string, userID uuid.UUID) (*models.SpotifyCallbackResponse, error) {
	if code == "" {
		return nil, apperrors.ValidationFailed("code", "code is required")
	}

	if state != "" {
		var stateUser uuid.UUID
		found, err := s.cache.GetKey(ctx, spotifyStateKey+state, &stateUser)
		if err != nil {
			return nil, apperrors.Internal("failed to read authorization state", err)
		}
		if found {
			s.cache.DeleteKey(ctx, spotifyStateKey+state)
			if userID == uuid.Nil {
				userID = stateUser
			}
		}
	}
	if userID == uuid.Nil {
		return nil, ErrSpotifyUnknownUser
	}

	user, err := s.reader.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", userID.String())
	}

	token, err := s.auth.Exchange(ctx, code)
	if err != nil {
		logger.Log.Errorw("spotify code exchange failed", "user_id", userID, "err", err)
		return nil, apperrors.Upstream("Error during Spotify callback", err)
	}
	if err := s.storeToken(ctx, userID, token); err != nil {
		return nil, err
	}

	profile, err := s.api.GetCurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, upstream("Unexpected error occurred while retrieving user", err)
	}

	if user.SpotifyID == nil || *user.SpotifyID != profile.ID {
		if err := s.link(ctx, userID, profile.ID); err != nil {
			return nil, err
		}
	}

	return &models.SpotifyCallbackResponse{Status: "ok", Token: *token, Profile: profile}, nil
}

// CachedToken returns the cached Spotify access token of userID.
func (s *SpotifyService) CachedToken(ctx context.Context, userID uuid.UUID) (string, error) {
	var token string
	found, err := s.cache.GetKey(ctx, spotifyTokenKey+userID.String(), &token)
	if err != nil {
		logger.Log.Errorw("failed to read spotify token", "user_id", userID, "err", err)
		return "", apperrors.Internal("Unexpected error occurred while retrieving token", err)
	}
	if !found || token == "" {
		return "", ErrSpotifyNotAuthorized
	}
	return token, nil
}

// Refresh renews the Spotify access token of userID with its cached refresh token.
func (s *SpotifyService) Refresh(ctx context.Context, userID uuid.UUID) (*models.SpotifyToken, error) {
	var refresh string
	found, err := s.cache.GetKey(ctx, spotifyRefreshKey+userID.String(), &refresh)
	if err != nil {
		return nil, apperrors.Internal("failed to read refresh token", err)
	}
	if !found || refresh == "" {
		return nil, ErrSpotifyNotAuthorized
	}

	token, err := s.auth.Refresh(ctx, models.SpotifyToken{RefreshToken: refresh})
	if err != nil {
		logger.Log.Errorw("spotify token refresh failed", "user_id", userID, "err", err)
		return nil, apperrors.Upstream("Failed to refresh token", err)
	}
	if err := s.storeToken(ctx, userID, token); err != nil {
		return nil, err
	}
	return token, nil
}

// CurrentUser returns the Spotify profile linked to userID.
func (s *SpotifyService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.SpotifyUser, error) {
	token, err := s.CachedToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.api.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, upstream("Unexpected error occurred while retrieving user", err)
	}
	return profile, nil
}

// User returns the public Spotify profile spotifyID, fetched with userID's token.
func (s *SpotifyService) User(ctx context.Context, userID uuid.UUID, spotifyID string) (*models.SpotifyUser, error) {
	token, err := s.CachedToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.api.GetUser(ctx, token, spotifyID)
	if err != nil {
		return nil, upstream("Unexpected error occurred while retrieving user", err)
	}
	return profile, nil
}

// SyncCurrentlyPlaying copies the track userID is playing on Spotify into
// its profile. Nothing playing clears the field. The label is sanitized and
// cut to MaxFreeTextLen runes.
func (s *SpotifyService) SyncCurrentlyPlaying(ctx context.Context, userID uuid.UUID) (*models.UserOut, error) {
	token, err := s.CachedToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	playing, err := s.api.GetCurrentlyPlaying(ctx, token)
	if err != nil {
		return nil, upstream("Unexpected error occurred while retrieving player", err)
	}

	label := TruncateRunes(SanitizeText(playing.Label()), MaxFreeTextLen)
	online := label != ""
	user, err := s.writer.Update(ctx, userID, models.UserUpdate{CurrentlyPlaying: &label, IsOnline: &online})
	if err != nil {
		logger.Log.Errorw("failed to store currently playing", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", userID.String())
	}
	return models.NewUserOut(user), nil
}

func (s *SpotifyService) storeToken(ctx context.Context, userID uuid.UUID, token *models.SpotifyToken) error {
	ttl := time.Duration(token.ExpiresIn) * time.Second
	if ttl < 0 {
		ttl = 0
	}
	if err := s.cache.SetKey(ctx, spotifyTokenKey+userID.String(), token.AccessToken, ttl); err != nil {
		logger.Log.Errorw("failed to cache spotify token", "user_id", userID, "err", err)
		return apperrors.Internal("failed to cache spotify token", err)
	}
	if token.RefreshToken != "" {
		if err := s.cache.SetKey(ctx, spotifyRefreshKey+userID.String(), token.RefreshToken, s.refreshTTL); err != nil {
			logger.Log.Errorw("failed to cache spotify refresh token", "user_id", userID, "err", err)
			return apperrors.Internal("failed to cache spotify token", err)
		}
	}
	return nil
}

func (s *SpotifyService) link(ctx context.Context, userID uuid.UUID, spotifyID string) error {
	owner, err := s.reader.GetBySpotifyID(ctx, spotifyID)
	if err != nil {
		return err
	}
	if owner != nil && owner.ID != userID {
		return ErrSpotifyIDAlreadyLinked
	}
	if _, err := s.writer.Update(ctx, userID, models.UserUpdate{SpotifyID: &spotifyID}); err != nil {
		logger.Log.Errorw("failed to link spotify account", "user_id", userID, "spotify_id", spotifyID, "err", err)
		return err
	}
	return nil
}

// upstream classifies a Web API failure. A rejected access token means the
// user has to authorize again.
func upstream(msg string, err error) error {
	var apiErr *spotify.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return apperrors.Unauthorized("Spotify token rejected. Please authorize via /authorize.")
	}
	logger.Log.Errorw(msg, "err", err)
	return apperrors.Upstream(msg, err)
}
