package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, handler func(form url.Values) (int, map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		status, body := handler(r.PostForm)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL string) Config {
	return Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8000/spotify/callback",
		TokenURL:     tokenURL,
	}
}

func TestAuthClient_AuthorizationURL(t *testing.T) {
	c := NewAuthClient(testConfig(""))

	raw := c.AuthorizationURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.spotify.com", u.Host)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://localhost:8000/spotify/callback", q.Get("redirect_uri"))
	assert.Equal(t, "streaming user-read-playback-state user-modify-playback-state user-read-private user-read-email", q.Get("scope"))
	assert.Equal(t, "true", q.Get("show_dialog"))
	assert.Equal(t, "state-123", q.Get("state"))

	assert.Equal(t, raw, c.AuthorizationURL("state-123"))
}

func TestSession_RetrieveAndRefresh(t *testing.T) {
	var grants []string
	srv := newTokenServer(t, func(form url.Values) (int, map[string]any) {
		grants = append(grants, form.Get("grant_type"))
		assert.Equal(t, "client-id", form.Get("client_id"))
		assert.Equal(t, "client-secret", form.Get("client_secret"))

		switch form.Get("grant_type") {
		case "authorization_code":
			assert.Equal(t, "auth-code", form.Get("code"))
			assert.Equal(t, "http://localhost:8000/spotify/callback", form.Get("redirect_uri"))
			return http.StatusOK, map[string]any{
				"access_token":  "access-1",
				"token_type":    "Bearer",
				"expires_in":    3600,
				"refresh_token": "refresh-1",
				"scope":         "user-read-email",
			}
		case "refresh_token":
			assert.Equal(t, "refresh-1", form.Get("refresh_token"))
			return http.StatusOK, map[string]any{
				"access_token": "access-2",
				"token_type":   "Bearer",
				"expires_in":   3600,
			}
		}
		return http.StatusBadRequest, map[string]any{"error": "unsupported_grant_type"}
	})

	s := NewAuthClient(testConfig(srv.URL)).NewSession()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Token())

	_, err := s.RefreshToken(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	tok, err := s.RetrieveToken(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "access-1", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, "user-read-email", tok.Scope)
	assert.InDelta(t, 3600, tok.ExpiresIn, 5)

	tok, err = s.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, "access-2", s.Token().AccessToken)

	assert.Equal(t, []string{"authorization_code", "refresh_token"}, grants)
}

func TestSession_RetrieveTokenFailure(t *testing.T) {
	srv := newTokenServer(t, func(url.Values) (int, map[string]any) {
		return http.StatusBadRequest, map[string]any{"error": "invalid_grant"}
	})

	s := NewAuthClient(testConfig(srv.URL)).NewSession()
	_, err := s.RetrieveToken(context.Background(), "bad-code")
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.False(t, s.Authenticated())
}

func TestSession_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	tokenURL := srv.URL
	srv.Close()

	s := NewAuthClient(testConfig(tokenURL)).Resume(models.SpotifyToken{AccessToken: "a", RefreshToken: "r"})
	assert.True(t, s.Authenticated())

	_, err := s.RefreshToken(context.Background())
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.Equal(t, "a", s.Token().AccessToken)
}

func TestAuthClient_ResumeEmpty(t *testing.T) {
	s := NewAuthClient(testConfig("")).Resume(models.SpotifyToken{})
	assert.False(t, s.Authenticated())
}

func TestAuthClient_ExchangeAndRefresh(t *testing.T) {
	srv := newTokenServer(t, func(form url.Values) (int, map[string]any) {
		if form.Get("grant_type") == "refresh_token" {
			return http.StatusOK, map[string]any{"access_token": "fresh", "token_type": "Bearer", "refresh_token": "rotated"}
		}
		return http.StatusOK, map[string]any{"access_token": "first", "token_type": "Bearer", "refresh_token": "r1"}
	})
	c := NewAuthClient(testConfig(srv.URL))

	tok, err := c.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "first", tok.AccessToken)

	tok, err = c.Refresh(context.Background(), *tok)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
	assert.Equal(t, "rotated", tok.RefreshToken)

	_, err = c.Refresh(context.Background(), models.SpotifyToken{AccessToken: "only-access"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
