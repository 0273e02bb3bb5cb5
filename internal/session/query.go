package session

import (
	"net/url"
	"strconv"

	"github.com/desertthunder/ccx/internal/shared"
)

// Endpoint is a checker service API path.
type Endpoint string

const (
	EndpointMyPlaylists      Endpoint = "/api/my-playlists"
	EndpointCheckURL         Endpoint = "/api/check-url"
	EndpointCheckPlaylist    Endpoint = "/api/check-playlist"
	EndpointSavedTracks      Endpoint = "/api/saved-tracks"
	EndpointSearch           Endpoint = "/api/search"
	EndpointTrackDetails     Endpoint = "/api/track-details"
	EndpointAddPlaylistItems Endpoint = "/api/add-playlist-items"
)

// DefaultLimit is applied when a limit field is empty or not a usable number.
const DefaultLimit = 20

// Inputs holds the raw field values as typed by the user. Values are
// forwarded verbatim; the resolver never normalizes them.
type Inputs struct {
	Text       string
	Limit      string
	RangeStart string
	RangeEnd   string
}

// Request is a resolved query descriptor: one endpoint plus its parameters.
type Request struct {
	Endpoint Endpoint
	Params   url.Values
}

// Resolve maps the active mode and raw inputs to exactly one request
// descriptor, or fails with a user-facing validation error before any
// request is issued.
func Resolve(mode Mode, in Inputs, selectedPlaylistID string) (*Request, error) {
	params := url.Values{}

	switch mode {
	case ModeURL:
		params.Set("url", in.Text)
		return &Request{Endpoint: EndpointCheckURL, Params: params}, nil

	case ModeMyPlaylists:
		if selectedPlaylistID == "" {
			return nil, shared.ErrNoPlaylistSelected
		}
		params.Set("playlist_id", selectedPlaylistID)
		// Range is forwarded only when both ends are filled in; the
		// values themselves are passed through unvalidated.
		if in.RangeStart != "" && in.RangeEnd != "" {
			params.Set("start", in.RangeStart)
			params.Set("end", in.RangeEnd)
		}
		return &Request{Endpoint: EndpointCheckPlaylist, Params: params}, nil

	case ModeSaved:
		params.Set("limit", strconv.Itoa(resolveLimit(in.Limit)))
		return &Request{Endpoint: EndpointSavedTracks, Params: params}, nil

	case ModeSearch:
		params.Set("query", in.Text)
		params.Set("limit", strconv.Itoa(resolveLimit(in.Limit)))
		return &Request{Endpoint: EndpointSearch, Params: params}, nil
	}

	return nil, shared.ErrInvalidArgument
}

// resolveLimit parses a raw limit field, falling back to DefaultLimit when
// the field is empty, non-numeric, or zero.
func resolveLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return DefaultLimit
	}
	return n
}
