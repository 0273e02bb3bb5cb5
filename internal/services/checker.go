// Checker service HTTP client implementation of [Checker]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/session"
	"github.com/desertthunder/ccx/internal/shared"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// CheckerService implements [Checker] against the checker service's JSON API.
type CheckerService struct {
	baseURL    string
	httpClient *http.Client
	token      string
	headers    *shared.CurlHeaders
}

// NewCheckerService creates a checker client for the given base URL.
func NewCheckerService(baseURL string, client *http.Client) *CheckerService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CheckerService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// WithToken sets a bearer token sent with every request.
func (c *CheckerService) WithToken(token string) *CheckerService {
	c.token = token
	return c
}

// WithSessionHeaders attaches headers imported from a logged-in dashboard
// session, for deployments where the service expects a browser cookie
// instead of a token.
func (c *CheckerService) WithSessionHeaders(headers *shared.CurlHeaders) *CheckerService {
	c.headers = headers
	return c
}

func (c *CheckerService) Name() string {
	return "Checker"
}

// trackListPayload is the shared response shape of the four query endpoints.
type trackListPayload struct {
	Title  string         `json:"title"`
	Tracks []models.Track `json:"tracks"`
}

type playlistsPayload struct {
	Playlists []models.Playlist `json:"playlists"`
}

// doRequest performs one HTTP request and decodes its JSON body into result.
//
// The service reports its own failures as a 200 with an `{"error": ...}`
// payload, so the body is sniffed for that field before decoding: a match
// returns a [shared.RemoteError] carrying the service's message.
func (c *CheckerService) doRequest(ctx context.Context, method, endpoint string, params url.Values, body, result any) error {
	apiURL := c.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.headers != nil {
		for k, v := range c.headers.AuthHeaders() {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != "" {
		return &shared.RemoteError{Message: failure.Error}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// MyPlaylists fetches the playlist directory for the my-playlists picker.
func (c *CheckerService) MyPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var payload playlistsPayload
	if err := c.doRequest(ctx, http.MethodGet, string(session.EndpointMyPlaylists), nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Playlists, nil
}

// Check executes a resolved query descriptor against its endpoint.
func (c *CheckerService) Check(ctx context.Context, req *session.Request) (*session.Result, error) {
	var payload trackListPayload
	if err := c.doRequest(ctx, http.MethodGet, string(req.Endpoint), req.Params, nil, &payload); err != nil {
		return nil, err
	}
	return &session.Result{Title: payload.Title, Tracks: payload.Tracks}, nil
}

// TrackDetails fetches the full metadata payload for one track.
func (c *CheckerService) TrackDetails(ctx context.Context, trackID string) (*models.TrackDetails, error) {
	if trackID == "" {
		return nil, shared.ErrNoTrackSelected
	}

	params := url.Values{}
	params.Set("track_id", trackID)

	var details models.TrackDetails
	if err := c.doRequest(ctx, http.MethodGet, string(session.EndpointTrackDetails), params, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// AddToPlaylist adds a track to a playlist the user owns.
func (c *CheckerService) AddToPlaylist(ctx context.Context, trackID, playlistID string) error {
	if trackID == "" {
		return shared.ErrNoTrackSelected
	}
	if playlistID == "" {
		return shared.ErrNoTargetPlaylist
	}

	body := map[string]string{
		"track_id":    trackID,
		"playlist_id": playlistID,
	}

	return c.doRequest(ctx, http.MethodPost, string(session.EndpointAddPlaylistItems), nil, body, nil)
}
