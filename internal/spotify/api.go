package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
	"golang.org/x/time/rate"
)

// ErrAPI is the sentinel behind every non-2xx Web API response.
var ErrAPI = errors.New("spotify api error")

// APIError is a failed Web API call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPI }

// APIClient calls the Spotify Web API on behalf of a user access token.
// Outbound requests are throttled by a shared limiter.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIClient creates an APIClient. A non-positive perSecond disables throttling.
func NewAPIClient(baseURL string, timeout time.Duration, perSecond float64) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// GetCurrentUser returns the profile owning accessToken.
func (c *APIClient) GetCurrentUser(ctx context.Context, accessToken string) (*models.SpotifyUser, error) {
	var user models.SpotifyUser
	if _, err := c.get(ctx, accessToken, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the public profile of spotifyID.
func (c *APIClient) GetUser(ctx context.Context, accessToken, spotifyID string) (*models.SpotifyUser, error) {
	var user models.SpotifyUser
	if _, err := c.get(ctx, accessToken, "/users/"+url.PathEscape(spotifyID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentlyPlaying returns the player state, or nil when nothing is playing.
func (c *APIClient) GetCurrentlyPlaying(ctx context.Context, accessToken string) (*models.SpotifyCurrentlyPlaying, error) {
	var playing models.SpotifyCurrentlyPlaying
	ok, err := c.get(ctx, accessToken, "/me/player/currently-playing", &playing)
	if err != nil || !ok {
		return nil, err
	}
	return &playing, nil
}

// get performs a GET and decodes the body into dst. It reports false on 204.
func (c *APIClient) get(ctx context.Context, accessToken, path string, dst any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Errorw("spotify request failed", "path", path, "error", err)
		return false, fmt.Errorf("%w: %w", ErrAPI, err)
	}
	defer resp.Body.Close()

	logger.Log.Infow("spotify request", "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("%w: decode %s: %w", ErrAPI, path, err)
	}
	return true, nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
