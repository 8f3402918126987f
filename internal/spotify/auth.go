// Package spotify talks to the Spotify accounts service and Web API.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sbilibin2017/syncify/internal/models"
	"golang.org/x/oauth2"
)

const (
	DefaultAuthURL  = "https://accounts.spotify.com/authorize"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	DefaultBaseURL  = "https://api.spotify.com/v1"
)

// Scopes requested from the user on authorization.
var Scopes = []string{
	"streaming",
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-private",
	"user-read-email",
}

var (
	// ErrAuthentication wraps any failure of the token endpoint.
	ErrAuthentication = errors.New("spotify authentication failed")
	// ErrNotAuthenticated is returned when a session holds no token yet.
	ErrNotAuthenticated = errors.New("spotify session is not authenticated")
)

// Config holds the OAuth client credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	Timeout      time.Duration
}

// AuthClient builds authorization URLs and opens token sessions.
type AuthClient struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewAuthClient creates an AuthClient. Empty endpoints fall back to Spotify's.
func NewAuthClient(cfg Config) *AuthClient {
	authURL, tokenURL := cfg.AuthURL, cfg.TokenURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &AuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuthorizationURL returns the consent page URL carrying state.
func (c *AuthClient) AuthorizationURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// NewSession returns an unauthenticated session.
func (c *AuthClient) NewSession() *Session {
	return &Session{client: c}
}

// Resume returns a session already holding token.
func (c *AuthClient) Resume(token models.SpotifyToken) *Session {
	s := &Session{client: c}
	if token.AccessToken != "" || token.RefreshToken != "" {
		s.token = &oauth2.Token{
			AccessToken:  token.AccessToken,
			TokenType:    token.TokenType,
			RefreshToken: token.RefreshToken,
		}
	}
	return s
}

// Exchange trades an authorization code for a token in a fresh session.
func (c *AuthClient) Exchange(ctx context.Context, code string) (*models.SpotifyToken, error) {
	return c.NewSession().RetrieveToken(ctx, code)
}

// Refresh obtains a new access token for a previously issued token.
func (c *AuthClient) Refresh(ctx context.Context, token models.SpotifyToken) (*models.SpotifyToken, error) {
	return c.Resume(token).RefreshToken(ctx)
}

func (c *AuthClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Session is the token state of one user. It is either unauthenticated
// (no token) or authenticated (access and refresh token held).
type Session struct {
	client *AuthClient
	token  *oauth2.Token
}

// Authenticated reports whether the session holds a token.
func (s *Session) Authenticated() bool {
	return s.token != nil
}

// Token returns the held token, or nil when unauthenticated.
func (s *Session) Token() *models.SpotifyToken {
	if s.token == nil {
		return nil
	}
	return toModel(s.token)
}

// RetrieveToken exchanges an authorization code and authenticates the session.
func (s *Session) RetrieveToken(ctx context.Context, code string) (*models.SpotifyToken, error) {
	tok, err := s.client.config.Exchange(s.client.withHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve token: %w", ErrAuthentication, err)
	}
	s.token = tok
	return toModel(tok), nil
}

// RefreshToken replaces the access token using the held refresh token.
func (s *Session) RefreshToken(ctx context.Context) (*models.SpotifyToken, error) {
	if s.token == nil || s.token.RefreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	// An expired copy forces the token source to hit the token endpoint.
	stale := &oauth2.Token{
		RefreshToken: s.token.RefreshToken,
		Expiry:       time.Unix(1, 0),
	}
	tok, err := s.client.config.TokenSource(s.client.withHTTPClient(ctx), stale).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to refresh token: %w", ErrAuthentication, err)
	}
	s.token = tok
	return toModel(tok), nil
}

func toModel(tok *oauth2.Token) *models.SpotifyToken {
	out := &models.SpotifyToken{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		out.Scope = scope
	}
	if !tok.Expiry.IsZero() {
		out.ExpiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return out
}
