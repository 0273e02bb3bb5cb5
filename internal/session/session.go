package session

import (
	"errors"
	"fmt"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/shared"
)

// Result is the payload of one completed track query.
type Result struct {
	Title  string
	Tracks []models.Track
}

// AddSubmission captures the arguments of the add-to-playlist mutation at
// the moment the user confirms, so a later close can't change them.
type AddSubmission struct {
	TrackID    string
	PlaylistID string
}

// Session is the single mutable state record for the page lifetime.
//
// All mutations flow through the named transition methods below; the UI
// layer reads state through getters and never writes fields directly.
// Session is not safe for concurrent use: per the runtime model every
// transition runs on the one UI event loop.
type Session struct {
	mode Mode

	// playlist directory
	directory          Modal
	playlists          []models.Playlist
	selectedPlaylistID string

	// result session
	queryGen  uint64
	loading   bool
	title     string
	tracks    []models.Track
	resultErr string

	// track detail viewer
	detailGen  uint64
	detail     Modal
	detailData *models.TrackDetails

	// playlist-add workflow
	addToken       uint64
	add            Modal
	addPlaylists   []models.Playlist
	addNotice      string
	currentTrackID string
}

// New creates a session with the default mode active and everything
// else unset.
func New() *Session {
	return &Session{mode: DefaultMode}
}

func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the active mode. The switch unconditionally clears the
// playlist selection and hides the directory before anything else happens,
// even when re-selecting the current mode.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.selectedPlaylistID = ""
	s.playlists = nil
	s.directory = Modal{}
}

// Playlist directory transitions

// BeginDirectoryLoad marks the directory as loading. While loading the
// list is suppressed entirely; no stale rows remain visible.
func (s *Session) BeginDirectoryLoad() {
	s.directory = Modal{Phase: Loading}
	s.playlists = nil
}

// ApplyDirectory reconciles a directory fetch outcome. On failure the
// selection is left unset and no partial list is kept. On success, a
// selection that no longer references a listed playlist is dropped.
func (s *Session) ApplyDirectory(playlists []models.Playlist, err error) {
	if err != nil {
		s.directory = Modal{Phase: Failed, Err: err.Error()}
		s.playlists = nil
		s.selectedPlaylistID = ""
		return
	}

	s.directory = Modal{Phase: Ready}
	s.playlists = playlists

	if s.selectedPlaylistID != "" && s.findPlaylist(s.selectedPlaylistID) == nil {
		s.selectedPlaylistID = ""
	}
}

// SelectPlaylist records an exclusive, immediate selection. The id must
// reference a playlist present in the last-loaded directory result.
func (s *Session) SelectPlaylist(id string) error {
	if s.findPlaylist(id) == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	s.selectedPlaylistID = id
	return nil
}

func (s *Session) SelectedPlaylistID() string   { return s.selectedPlaylistID }
func (s *Session) Directory() Modal             { return s.directory }
func (s *Session) Playlists() []models.Playlist { return s.playlists }

func (s *Session) findPlaylist(id string) *models.Playlist {
	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return &s.playlists[i]
		}
	}
	return nil
}

// Query resolution and the result session

// ResolveQuery maps the active mode and raw inputs to a request
// descriptor, or fails with a validation error and no request.
func (s *Session) ResolveQuery(in Inputs) (*Request, error) {
	return Resolve(s.mode, in, s.selectedPlaylistID)
}

// BeginQuery stamps a new request generation and enters the loading
// state. In-flight requests are never cancelled; instead, only the
// response carrying the latest generation is applied, so the last
// request issued wins regardless of arrival order.
func (s *Session) BeginQuery() uint64 {
	s.queryGen++
	s.loading = true
	s.resultErr = ""
	return s.queryGen
}

// ApplyResult reconciles a completed query. Responses from superseded
// generations are dropped wholesale; the method reports whether the
// response was applied.
//
// A [shared.RemoteError] becomes the results title over an empty track
// list; a transport error clears the results and is surfaced separately.
// On success the track list is replaced wholesale, never merged.
func (s *Session) ApplyResult(gen uint64, res *Result, err error) bool {
	if gen != s.queryGen {
		return false
	}

	s.loading = false

	var remote *shared.RemoteError
	switch {
	case errors.As(err, &remote):
		s.title = remote.Message
		s.tracks = nil
		s.resultErr = ""
	case err != nil:
		s.title = ""
		s.tracks = nil
		s.resultErr = err.Error()
	default:
		s.tracks = res.Tracks
		s.resultErr = ""
		if res.Title != "" {
			s.title = res.Title
		} else {
			s.title = fmt.Sprintf("Found %d tracks", len(res.Tracks))
		}
	}

	return true
}

func (s *Session) Loading() bool          { return s.loading }
func (s *Session) Title() string          { return s.title }
func (s *Session) Tracks() []models.Track { return s.tracks }
func (s *Session) ResultError() string    { return s.resultErr }

// Track detail viewer transitions

// OpenDetail opens the detail modal in its loading state and stamps a new
// detail generation. Opening with an empty id is a no-op. Opening while a
// previous detail is showing discards its content; there is no stacking.
func (s *Session) OpenDetail(trackID string) (uint64, bool) {
	if trackID == "" {
		return 0, false
	}

	s.detailGen++
	s.detail = Modal{Phase: Loading}
	s.detailData = nil
	return s.detailGen, true
}

// ApplyDetail reconciles a detail fetch. Stale generations are dropped.
// On failure the error text replaces the modal body and the modal stays
// open until the user closes it.
func (s *Session) ApplyDetail(gen uint64, details *models.TrackDetails, err error) bool {
	if gen != s.detailGen || !s.detail.Open() {
		return false
	}

	if err != nil {
		s.detail = Modal{Phase: Failed, Err: err.Error()}
		s.detailData = nil
		return true
	}

	s.detail = Modal{Phase: Ready}
	s.detailData = details
	return true
}

// CloseDetail hides the detail modal and discards its content.
func (s *Session) CloseDetail() {
	s.detail = Modal{}
	s.detailData = nil
}

func (s *Session) Detail() Modal                    { return s.detail }
func (s *Session) DetailData() *models.TrackDetails { return s.detailData }

// Playlist-add workflow transitions
//
// The workflow is a two-phase state machine scoped by currentTrackID:
// select (fetch the directory as a dropdown) then confirm (submit the
// mutation). Each invocation gets a token; deferred effects such as the
// auto-close timer apply only while their token is still the active one.

// BeginAdd opens the workflow modal for a track, stamps a new invocation
// token, and enters the loading phase while the dropdown's playlist list
// is fetched. An empty track id is a no-op.
func (s *Session) BeginAdd(trackID string) (uint64, bool) {
	if trackID == "" {
		return 0, false
	}

	s.addToken++
	s.currentTrackID = trackID
	s.add = Modal{Phase: Loading}
	s.addPlaylists = nil
	s.addNotice = ""
	return s.addToken, true
}

// ApplyAddPlaylists reconciles the select-phase fetch. On failure the
// error shows in the modal body and the modal stays open; the user must
// close it manually.
func (s *Session) ApplyAddPlaylists(token uint64, playlists []models.Playlist, err error) bool {
	if token != s.addToken || !s.add.Open() {
		return false
	}

	if err != nil {
		s.add = Modal{Phase: Failed, Err: err.Error()}
		s.addPlaylists = nil
		return true
	}

	s.add = Modal{Phase: Ready}
	s.addPlaylists = playlists
	return true
}

// SubmitAdd validates the confirm phase. The dropdown choice is read here,
// at submit time; submitting without one fails locally with no request
// sent. On success the modal enters the transient submitting phase and the
// captured submission is returned for the caller to issue.
func (s *Session) SubmitAdd(playlistID string) (*AddSubmission, error) {
	if s.add.Phase != Ready {
		return nil, fmt.Errorf("%w: playlist picker is not ready", shared.ErrInvalidInput)
	}
	if s.currentTrackID == "" {
		return nil, shared.ErrNoTrackSelected
	}
	if playlistID == "" {
		s.addNotice = shared.ErrNoTargetPlaylist.Error()
		return nil, shared.ErrNoTargetPlaylist
	}

	s.add.Phase = Submitting
	s.addNotice = ""
	return &AddSubmission{TrackID: s.currentTrackID, PlaylistID: playlistID}, nil
}

// ApplyAddResult reconciles the mutation outcome. Failure returns to the
// ready phase with the error as a notice so the user can retry with the
// dropdown intact. Success shows the confirmation phase; the caller
// schedules AutoCloseAdd after the fixed delay.
func (s *Session) ApplyAddResult(token uint64, err error) bool {
	if token != s.addToken || !s.add.Open() {
		return false
	}

	if err != nil {
		s.add.Phase = Ready
		s.addNotice = err.Error()
		return true
	}

	s.add.Phase = Done
	s.addNotice = ""
	return true
}

// AutoCloseAdd closes the modal after the post-success delay, but only if
// the invocation it was scheduled for is still the active one and the
// confirmation is still showing. A stale timer from a superseded
// invocation is ignored.
func (s *Session) AutoCloseAdd(token uint64) bool {
	if token != s.addToken || s.add.Phase != Done {
		return false
	}
	s.CloseAdd()
	return true
}

// CloseAdd unconditionally hides the workflow modal and clears the
// current track. It does not cancel an in-flight request.
func (s *Session) CloseAdd() {
	s.add = Modal{}
	s.addPlaylists = nil
	s.addNotice = ""
	s.currentTrackID = ""
}

func (s *Session) Add() Modal                      { return s.add }
func (s *Session) AddPlaylists() []models.Playlist { return s.addPlaylists }
func (s *Session) AddNotice() string               { return s.addNotice }
func (s *Session) CurrentTrackID() string          { return s.currentTrackID }
