package models

import "strings"

// SpotifyToken mirrors the token endpoint response
// swagger:model SpotifyToken
type SpotifyToken struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyExternalURLs holds the public web links of a resource.
type SpotifyExternalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyFollowers is the follower summary of a profile.
type SpotifyFollowers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
// swagger:model SpotifyUser
type SpotifyUser struct {
	ID           string              `json:"id"`
	DisplayName  string              `json:"display_name"`
	Email        string              `json:"email,omitempty"`
	Country      string              `json:"country,omitempty"`
	Product      string              `json:"product,omitempty"`
	Href         string              `json:"href,omitempty"`
	URI          string              `json:"uri,omitempty"`
	Type         string              `json:"type,omitempty"`
	ExternalURLs SpotifyExternalURLs `json:"external_urls"`
	Followers    SpotifyFollowers    `json:"followers"`
	Images       []SpotifyImage      `json:"images"`
}

// SpotifyArtist represents an artist as embedded in a track.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents an album as embedded in a track.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	URI        string          `json:"uri"`
}

// SpotifyDevice is the playback device of the player.
type SpotifyDevice struct {
	ID            string `json:"id"`
	IsActive      bool   `json:"is_active"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	VolumePercent int    `json:"volume_percent"`
}

// SpotifyCurrentlyPlaying is the player state of a user
// swagger:model SpotifyCurrentlyPlaying
type SpotifyCurrentlyPlaying struct {
	Device               *SpotifyDevice `json:"device,omitempty"`
	Timestamp            int64          `json:"timestamp"`
	ProgressMS           int            `json:"progress_ms"`
	IsPlaying            bool           `json:"is_playing"`
	Item                 *SpotifyTrack  `json:"item"`
	CurrentlyPlayingType string         `json:"currently_playing_type"`
}

// Label renders the playing item as "Artist, Artist - Track", or "" if nothing plays.
func (c *SpotifyCurrentlyPlaying) Label() string {
	if c == nil || c.Item == nil || !c.IsPlaying {
		return ""
	}
	names := make([]string, 0, len(c.Item.Artists))
	for _, a := range c.Item.Artists {
		names = append(names, a.Name)
	}
	if len(names) == 0 {
		return c.Item.Name
	}
	return strings.Join(names, ", ") + " - " + c.Item.Name
}

// SpotifyAuthorizeResponse carries the authorization URL
// swagger:model SpotifyAuthorizeResponse
type SpotifyAuthorizeResponse struct {
	URL string `json:"url"`
}

// SpotifyCallbackResponse is returned once the code exchange succeeded
// swagger:model SpotifyCallbackResponse
type SpotifyCallbackResponse struct {
	Status  string       `json:"status"`
	Token   SpotifyToken `json:"token"`
	Profile *SpotifyUser `json:"profile"`
}

// SpotifyCachedTokenResponse returns the cached access token of a user
// swagger:model SpotifyCachedTokenResponse
type SpotifyCachedTokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}
