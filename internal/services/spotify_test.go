package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/sbilibin2017/syncify/internal/services"
	"github.com/sbilibin2017/syncify/internal/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spotifyServiceMocks struct {
	auth   *services.MockSpotifyAuthorizer
	api    *services.MockSpotifyAPI
	cache  *services.MockCache
	reader *services.MockUserReader
	writer *services.MockUserWriter
}

func newSpotifyService(ctrl *gomock.Controller) (*services.SpotifyService, spotifyServiceMocks) {
	m := spotifyServiceMocks{
		auth:   services.NewMockSpotifyAuthorizer(ctrl),
		api:    services.NewMockSpotifyAPI(ctrl),
		cache:  services.NewMockCache(ctrl),
		reader: services.NewMockUserReader(ctrl),
		writer: services.NewMockUserWriter(ctrl),
	}
	return services.NewSpotifyService(m.auth, m.api, m.cache, m.reader, m.writer), m
}

// setString makes a GetKey expectation decode value into the destination.
func setString(value string) func(context.Context, string, any) (bool, error) {
	return func(_ context.Context, _ string, dst any) (bool, error) {
		*dst.(*string) = value
		return true, nil
	}
}

func TestSpotifyService_AuthorizationURL(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()

	var stored string
	m.cache.EXPECT().SetKey(ctx, gomock.Any(), userID, services.StateTTL).
		DoAndReturn(func(_ context.Context, key string, _ any, _ time.Duration) error {
			stored = key
			return nil
		})
	m.auth.EXPECT().AuthorizationURL(gomock.Any()).DoAndReturn(func(state string) string {
		return "https://accounts.spotify.com/authorize?state=" + state
	})

	url, err := svc.AuthorizationURL(ctx, userID)
	require.NoError(t, err)
	state := strings.TrimPrefix(url, "https://accounts.spotify.com/authorize?state=")
	assert.Equal(t, "spotify:state:"+state, stored)

	// anonymous callers get a URL without a remembered state
	m.auth.EXPECT().AuthorizationURL(gomock.Any()).Return("https://accounts.spotify.com/authorize")
	_, err = svc.AuthorizationURL(ctx, uuid.Nil)
	assert.NoError(t, err)
}

func TestSpotifyService_Callback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &models.UserDB{ID: userID, DisplayName: "Alice1"}
	token := &models.SpotifyToken{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}
	profile := &models.SpotifyUser{ID: "alice-sp", DisplayName: "Alice"}

	t.Run("resolves user from state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newSpotifyService(ctrl)

		m.cache.EXPECT().GetKey(ctx, "spotify:state:s1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dst any) (bool, error) {
				*dst.(*uuid.UUID) = userID
				return true, nil
			})
		m.cache.EXPECT().DeleteKey(ctx, "spotify:state:s1").Return(true, nil)
		m.reader.EXPECT().Get(ctx, userID).Return(user, nil)
		m.auth.EXPECT().Exchange(ctx, "code").Return(token, nil)
		m.cache.EXPECT().SetKey(ctx, "spotify:token:"+userID.String(), "access", time.Hour).Return(nil)
		m.cache.EXPECT().SetKey(ctx, "spotify:refresh:"+userID.String(), "refresh", time.Duration(0)).Return(nil)
		m.api.EXPECT().GetCurrentUser(ctx, "access").Return(profile, nil)
		m.reader.EXPECT().GetBySpotifyID(ctx, "alice-sp").Return(nil, nil)
		spotifyID := "alice-sp"
		m.writer.EXPECT().Update(ctx, userID, models.UserUpdate{SpotifyID: &spotifyID}).Return(user, nil)

		resp, err := svc.Callback(ctx, "code", "s1", uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "access", resp.Token.AccessToken)
		assert.Equal(t, "alice-sp", resp.Profile.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newSpotifyService(ctrl)

		m.cache.EXPECT().GetKey(ctx, "spotify:state:expired", gomock.Any()).Return(false, nil)

		_, err := svc.Callback(ctx, "code", "expired", uuid.Nil)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("missing code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newSpotifyService(ctrl)

		_, err := svc.Callback(ctx, "", "", userID)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("exchange failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newSpotifyService(ctrl)

		m.reader.EXPECT().Get(ctx, userID).Return(user, nil)
		m.auth.EXPECT().Exchange(ctx, "bad").Return(nil, spotify.ErrAuthentication)

		_, err := svc.Callback(ctx, "bad", "", userID)
		assert.True(t, errors.Is(err, apperrors.ErrUpstream))
		assert.True(t, errors.Is(err, spotify.ErrAuthentication))
	})

	t.Run("spotify account linked elsewhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newSpotifyService(ctrl)

		m.reader.EXPECT().Get(ctx, userID).Return(user, nil)
		m.auth.EXPECT().Exchange(ctx, "code").Return(token, nil)
		m.cache.EXPECT().SetKey(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		m.api.EXPECT().GetCurrentUser(ctx, "access").Return(profile, nil)
		m.reader.EXPECT().GetBySpotifyID(ctx, "alice-sp").Return(&models.UserDB{ID: uuid.New()}, nil)

		_, err := svc.Callback(ctx, "code", "", userID)
		assert.True(t, errors.Is(err, services.ErrSpotifyIDAlreadyLinked))
	})
}

func TestSpotifyService_CachedToken(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()
	key := "spotify:token:" + userID.String()

	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).DoAndReturn(setString("access"))
	token, err := svc.CachedToken(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, "access", token)

	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).Return(false, nil)
	_, err = svc.CachedToken(ctx, userID)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).Return(false, errors.New("cache unavailable"))
	_, err = svc.CachedToken(ctx, userID)
	assert.True(t, errors.Is(err, apperrors.ErrInternal))
}

func TestSpotifyService_Refresh(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()

	m.cache.EXPECT().GetKey(ctx, "spotify:refresh:"+userID.String(), gomock.Any()).DoAndReturn(setString("refresh"))
	m.auth.EXPECT().Refresh(ctx, models.SpotifyToken{RefreshToken: "refresh"}).
		Return(&models.SpotifyToken{AccessToken: "new", RefreshToken: "refresh", ExpiresIn: 60}, nil)
	m.cache.EXPECT().SetKey(ctx, "spotify:token:"+userID.String(), "new", time.Minute).Return(nil)
	m.cache.EXPECT().SetKey(ctx, "spotify:refresh:"+userID.String(), "refresh", time.Duration(0)).Return(nil)

	token, err := svc.Refresh(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "new", token.AccessToken)

	m.cache.EXPECT().GetKey(ctx, "spotify:refresh:"+userID.String(), gomock.Any()).Return(false, nil)
	_, err = svc.Refresh(ctx, userID)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestSpotifyService_RefreshTokenTTL(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := services.NewMockSpotifyAuthorizer(ctrl)
	cache := services.NewMockCache(ctrl)
	svc := services.NewSpotifyService(auth, nil, cache, nil, nil, services.WithRefreshTokenTTL(time.Hour))
	userID := uuid.New()

	cache.EXPECT().GetKey(ctx, "spotify:refresh:"+userID.String(), gomock.Any()).DoAndReturn(setString("refresh"))
	auth.EXPECT().Refresh(ctx, models.SpotifyToken{RefreshToken: "refresh"}).
		Return(&models.SpotifyToken{AccessToken: "new", RefreshToken: "rotated", ExpiresIn: 60}, nil)
	cache.EXPECT().SetKey(ctx, "spotify:token:"+userID.String(), "new", time.Minute).Return(nil)
	cache.EXPECT().SetKey(ctx, "spotify:refresh:"+userID.String(), "rotated", time.Hour).Return(nil)

	_, err := svc.Refresh(ctx, userID)
	require.NoError(t, err)
}

func TestSpotifyService_Profiles(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()
	key := "spotify:token:" + userID.String()

	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).DoAndReturn(setString("access")).Times(3)

	m.api.EXPECT().GetCurrentUser(ctx, "access").Return(&models.SpotifyUser{ID: "me"}, nil)
	me, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "me", me.ID)

	m.api.EXPECT().GetUser(ctx, "access", "bob").Return(nil, &spotify.APIError{StatusCode: http.StatusNotFound, Message: "No such user"})
	_, err = svc.User(ctx, userID, "bob")
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))

	m.api.EXPECT().GetCurrentUser(ctx, "access").Return(nil, &spotify.APIError{StatusCode: http.StatusUnauthorized})
	_, err = svc.CurrentUser(ctx, userID)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestSpotifyService_SyncCurrentlyPlaying(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()
	key := "spotify:token:" + userID.String()

	playing := &models.SpotifyCurrentlyPlaying{
		IsPlaying: true,
		Item: &models.SpotifyTrack{
			Name:    "One More Time",
			Artists: []models.SpotifyArtist{{Name: "Daft Punk"}},
		},
	}
	label := "Daft Punk - One More Time"
	online := true

	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).DoAndReturn(setString("access"))
	m.api.EXPECT().GetCurrentlyPlaying(ctx, "access").Return(playing, nil)
	m.writer.EXPECT().Update(ctx, userID, models.UserUpdate{CurrentlyPlaying: &label, IsOnline: &online}).
		Return(&models.UserDB{ID: userID, CurrentlyPlaying: &label, IsOnline: true}, nil)

	out, err := svc.SyncCurrentlyPlaying(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, label, *out.CurrentlyPlaying)

	empty := ""
	offline := false
	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).DoAndReturn(setString("access"))
	m.api.EXPECT().GetCurrentlyPlaying(ctx, "access").Return(nil, nil)
	m.writer.EXPECT().Update(ctx, userID, models.UserUpdate{CurrentlyPlaying: &empty, IsOnline: &offline}).
		Return(&models.UserDB{ID: userID, CurrentlyPlaying: &empty}, nil)

	out, err = svc.SyncCurrentlyPlaying(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "", *out.CurrentlyPlaying)
}

func TestSpotifyService_SyncCurrentlyPlaying_CleansLabel(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSpotifyService(ctrl)
	userID := uuid.New()
	key := "spotify:token:" + userID.String()

	artists := make([]models.SpotifyArtist, 60)
	for i := range artists {
		artists[i] = models.SpotifyArtist{Name: "Artist"}
	}
	playing := &models.SpotifyCurrentlyPlaying{
		IsPlaying: true,
		Item: &models.SpotifyTrack{
			Name:    "<b>Track</b>",
			Artists: artists,
		},
	}

	var stored models.UserUpdate
	m.cache.EXPECT().GetKey(ctx, key, gomock.Any()).DoAndReturn(setString("access"))
	m.api.EXPECT().GetCurrentlyPlaying(ctx, "access").Return(playing, nil)
	m.writer.EXPECT().Update(ctx, userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
			stored = upd
			return &models.UserDB{ID: id, CurrentlyPlaying: upd.CurrentlyPlaying, IsOnline: true}, nil
		})

	_, err := svc.SyncCurrentlyPlaying(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentlyPlaying)
	assert.Equal(t, services.MaxFreeTextLen, utf8.RuneCountInString(*stored.CurrentlyPlaying))
	assert.NotContains(t, *stored.CurrentlyPlaying, "<")
}
