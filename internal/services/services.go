// package services defines interface Checker for the copyright checker API
package services

import (
	"context"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/session"
)

// Checker defines the client interface for the checker service's HTTP API.
// Every call maps to exactly one endpoint; errors that the service reports
// inside its payload surface as [shared.RemoteError], while transport and
// decoding failures are wrapped around [shared.ErrAPIRequest].
type Checker interface {
	// MyPlaylists fetches the authenticated user's playlist directory.
	MyPlaylists(ctx context.Context) ([]models.Playlist, error)

	// Check executes a resolved query descriptor and returns its result set.
	Check(ctx context.Context, req *session.Request) (*session.Result, error)

	// TrackDetails fetches the full metadata payload for one track.
	TrackDetails(ctx context.Context, trackID string) (*models.TrackDetails, error)

	// AddToPlaylist adds a track to one of the user's playlists.
	AddToPlaylist(ctx context.Context, trackID, playlistID string) error

	// Name returns the service name for log lines and output headers.
	Name() string
}
