package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/shared"
)

func testPlaylists() []models.Playlist {
	return []models.Playlist{
		{ID: "pl1", Name: "Chill", Owner: "me", Tracks: 12},
		{ID: "pl2", Name: "Focus", Owner: "me", Tracks: 40},
	}
}

func testTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			ID:     fmt.Sprintf("t%d", i),
			Name:   fmt.Sprintf("Track %d", i),
			Artist: "Artist",
		}
	}
	return tracks
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.SetMode(ModeMyPlaylists)
	s.BeginDirectoryLoad()
	s.ApplyDirectory(testPlaylists(), nil)
	return s
}

func TestSetMode(t *testing.T) {
	t.Run("Switching Away And Back Clears Selection", func(t *testing.T) {
		for _, next := range Modes() {
			s := readySession(t)
			if err := s.SelectPlaylist("pl1"); err != nil {
				t.Fatalf("failed to select playlist: %v", err)
			}

			s.SetMode(next)
			if s.SelectedPlaylistID() != "" {
				t.Errorf("switching to %v should clear selection, got %q", next, s.SelectedPlaylistID())
			}

			s.SetMode(ModeMyPlaylists)
			if s.SelectedPlaylistID() != "" {
				t.Errorf("switching back should not restore selection, got %q", s.SelectedPlaylistID())
			}
		}
	})

	t.Run("Reset Is Unconditional", func(t *testing.T) {
		s := readySession(t)
		if err := s.SelectPlaylist("pl2"); err != nil {
			t.Fatalf("failed to select playlist: %v", err)
		}

		// Re-selecting the active mode still resets.
		s.SetMode(ModeMyPlaylists)
		if s.SelectedPlaylistID() != "" {
			t.Error("re-selecting the current mode should still clear the selection")
		}
		if s.Directory().Open() {
			t.Error("directory should be hidden after a mode switch")
		}
	})
}

func TestPlaylistDirectory(t *testing.T) {
	t.Run("Loading Suppresses List", func(t *testing.T) {
		s := readySession(t)

		s.BeginDirectoryLoad()
		if len(s.Playlists()) != 0 {
			t.Error("no stale playlist rows should remain while loading")
		}
		if s.Directory().Phase != Loading {
			t.Errorf("directory phase = %v, want loading", s.Directory().Phase)
		}
	})

	t.Run("Failure Leaves Selection Unset", func(t *testing.T) {
		s := readySession(t)
		if err := s.SelectPlaylist("pl1"); err != nil {
			t.Fatalf("failed to select playlist: %v", err)
		}

		s.BeginDirectoryLoad()
		s.ApplyDirectory(nil, errors.New("boom"))

		if s.SelectedPlaylistID() != "" {
			t.Error("failed directory load should leave selection unset")
		}
		if s.Directory().Phase != Failed || s.Directory().Err != "boom" {
			t.Errorf("directory = %+v, want failed with error text", s.Directory())
		}
		if len(s.Playlists()) != 0 {
			t.Error("no partial list should be shown on failure")
		}
	})

	t.Run("Selection Must Reference Loaded Playlist", func(t *testing.T) {
		s := readySession(t)

		if err := s.SelectPlaylist("nope"); err == nil {
			t.Error("expected error selecting playlist not in directory")
		}

		if err := s.SelectPlaylist("pl2"); err != nil {
			t.Fatalf("expected selection of listed playlist to succeed: %v", err)
		}
		if s.SelectedPlaylistID() != "pl2" {
			t.Errorf("selected = %q, want pl2", s.SelectedPlaylistID())
		}
	})

	t.Run("Selection Is Exclusive", func(t *testing.T) {
		s := readySession(t)
		_ = s.SelectPlaylist("pl1")
		_ = s.SelectPlaylist("pl2")

		if s.SelectedPlaylistID() != "pl2" {
			t.Errorf("selected = %q, want only the most recent selection", s.SelectedPlaylistID())
		}
	})

	t.Run("Reload Drops Vanished Selection", func(t *testing.T) {
		s := readySession(t)
		_ = s.SelectPlaylist("pl2")

		s.BeginDirectoryLoad()
		s.ApplyDirectory([]models.Playlist{{ID: "pl9", Name: "New"}}, nil)

		if s.SelectedPlaylistID() != "" {
			t.Error("selection should be dropped when the reloaded directory lacks it")
		}
	})
}

func TestResultSession(t *testing.T) {
	t.Run("No Selection Means No Request", func(t *testing.T) {
		s := New()
		s.SetMode(ModeMyPlaylists)

		req, err := s.ResolveQuery(Inputs{})
		if !errors.Is(err, shared.ErrNoPlaylistSelected) {
			t.Fatalf("expected ErrNoPlaylistSelected, got %v", err)
		}
		if req != nil {
			t.Fatal("no request descriptor should be produced")
		}
	})

	t.Run("Success Replaces Wholesale", func(t *testing.T) {
		s := New()

		gen := s.BeginQuery()
		if !s.Loading() {
			t.Error("expected loading state after BeginQuery")
		}

		applied := s.ApplyResult(gen, &Result{Tracks: testTracks(3)}, nil)
		if !applied {
			t.Fatal("expected current-generation response to be applied")
		}
		if s.Loading() {
			t.Error("loading indicator should be cleared")
		}
		if len(s.Tracks()) != 3 {
			t.Errorf("track count = %d, want 3", len(s.Tracks()))
		}
		if s.Title() != "Found 3 tracks" {
			t.Errorf("title = %q, want synthesized count title", s.Title())
		}

		// A later result replaces everything, no merging.
		gen = s.BeginQuery()
		s.ApplyResult(gen, &Result{Title: "Album: X by Y", Tracks: testTracks(1)}, nil)
		if len(s.Tracks()) != 1 {
			t.Errorf("track count = %d, want 1 after replacement", len(s.Tracks()))
		}
		if s.Title() != "Album: X by Y" {
			t.Errorf("title = %q, want server title to win", s.Title())
		}
	})

	t.Run("Payload Error Becomes Title", func(t *testing.T) {
		s := New()
		gen := s.BeginQuery()
		s.ApplyResult(gen, &Result{Tracks: testTracks(2)}, nil)

		gen = s.BeginQuery()
		s.ApplyResult(gen, nil, &shared.RemoteError{Message: "Invalid Spotify URL"})

		if s.Title() != "Invalid Spotify URL" {
			t.Errorf("title = %q, want payload error text", s.Title())
		}
		if len(s.Tracks()) != 0 {
			t.Error("payload error should clear the track list")
		}
		if s.ResultError() != "" {
			t.Error("payload error is shown as the title, not as a transport error")
		}
	})

	t.Run("Transport Error Clears Results", func(t *testing.T) {
		s := New()
		gen := s.BeginQuery()
		s.ApplyResult(gen, &Result{Tracks: testTracks(2)}, nil)

		gen = s.BeginQuery()
		s.ApplyResult(gen, nil, fmt.Errorf("%w: connection refused", shared.ErrAPIRequest))

		if s.Loading() {
			t.Error("loading indicator should be cleared on failure")
		}
		if len(s.Tracks()) != 0 {
			t.Error("previous track list should not survive a transport failure")
		}
		if s.ResultError() == "" {
			t.Error("transport error should be surfaced")
		}
	})

	t.Run("Last Issued Wins", func(t *testing.T) {
		s := New()

		first := s.BeginQuery()
		second := s.BeginQuery()

		// The second (latest) request completes first.
		if !s.ApplyResult(second, &Result{Title: "second", Tracks: testTracks(2)}, nil) {
			t.Fatal("latest generation should be applied")
		}

		// The stale first response arrives afterwards and must be dropped.
		if s.ApplyResult(first, &Result{Title: "first", Tracks: testTracks(9)}, nil) {
			t.Fatal("stale generation should be dropped")
		}

		if s.Title() != "second" || len(s.Tracks()) != 2 {
			t.Errorf("state = (%q, %d tracks), want the latest-issued result", s.Title(), len(s.Tracks()))
		}
	})

	t.Run("Stale Error Cannot Clobber Fresh Result", func(t *testing.T) {
		s := New()

		first := s.BeginQuery()
		second := s.BeginQuery()
		s.ApplyResult(second, &Result{Tracks: testTracks(4)}, nil)

		if s.ApplyResult(first, nil, errors.New("slow failure")) {
			t.Fatal("stale failure should be dropped")
		}
		if len(s.Tracks()) != 4 || s.ResultError() != "" {
			t.Error("fresh result should survive a stale failure's arrival")
		}
	})
}

func TestTrackDetailViewer(t *testing.T) {
	t.Run("Empty ID Is NoOp", func(t *testing.T) {
		s := New()
		if _, ok := s.OpenDetail(""); ok {
			t.Error("opening detail with empty id should be a no-op")
		}
		if s.Detail().Open() {
			t.Error("modal should stay closed")
		}
	})

	t.Run("Open Fetch Render", func(t *testing.T) {
		s := New()
		gen, ok := s.OpenDetail("t1")
		if !ok {
			t.Fatal("expected detail to open")
		}
		if s.Detail().Phase != Loading {
			t.Errorf("phase = %v, want loading", s.Detail().Phase)
		}

		details := &models.TrackDetails{Track: models.DetailTrack{ID: "t1", Name: "Song", Artist: "Artist"}}
		if !s.ApplyDetail(gen, details, nil) {
			t.Fatal("expected detail response to be applied")
		}
		if s.Detail().Phase != Ready || s.DetailData() == nil {
			t.Error("expected ready modal with detail content")
		}
	})

	t.Run("Failure Replaces Body And Stays Open", func(t *testing.T) {
		s := New()
		gen, _ := s.OpenDetail("t1")
		s.ApplyDetail(gen, nil, errors.New("track not found"))

		if s.Detail().Phase != Failed {
			t.Errorf("phase = %v, want failed", s.Detail().Phase)
		}
		if s.Detail().Err != "track not found" {
			t.Errorf("error body = %q", s.Detail().Err)
		}
		if !s.Detail().Open() {
			t.Error("modal should stay open until closed explicitly")
		}
	})

	t.Run("New Open Discards Previous", func(t *testing.T) {
		s := New()
		first, _ := s.OpenDetail("t1")
		second, _ := s.OpenDetail("t2")

		// The older fetch resolves late; it must not populate the newer view.
		if s.ApplyDetail(first, &models.TrackDetails{Track: models.DetailTrack{ID: "t1"}}, nil) {
			t.Fatal("superseded detail fetch should be dropped")
		}

		if !s.ApplyDetail(second, &models.TrackDetails{Track: models.DetailTrack{ID: "t2"}}, nil) {
			t.Fatal("current detail fetch should be applied")
		}
		if s.DetailData().Track.ID != "t2" {
			t.Errorf("detail shows %q, want t2", s.DetailData().Track.ID)
		}
	})

	t.Run("Close Discards Content", func(t *testing.T) {
		s := New()
		gen, _ := s.OpenDetail("t1")
		s.ApplyDetail(gen, &models.TrackDetails{}, nil)

		s.CloseDetail()
		if s.Detail().Open() || s.DetailData() != nil {
			t.Error("closing should hide the modal and discard content")
		}

		// A late response for the closed modal is ignored.
		if s.ApplyDetail(gen, &models.TrackDetails{}, nil) {
			t.Error("response for a closed modal should be dropped")
		}
	})
}

func TestPlaylistAddWorkflow(t *testing.T) {
	t.Run("Select Phase", func(t *testing.T) {
		s := New()
		token, ok := s.BeginAdd("t7")
		if !ok {
			t.Fatal("expected workflow to open")
		}
		if s.CurrentTrackID() != "t7" {
			t.Errorf("currentTrackID = %q, want t7", s.CurrentTrackID())
		}
		if s.Add().Phase != Loading {
			t.Errorf("phase = %v, want loading", s.Add().Phase)
		}

		s.ApplyAddPlaylists(token, testPlaylists(), nil)
		if s.Add().Phase != Ready || len(s.AddPlaylists()) != 2 {
			t.Error("expected ready dropdown with playlists")
		}
	})

	t.Run("Empty Track Is NoOp", func(t *testing.T) {
		s := New()
		if _, ok := s.BeginAdd(""); ok {
			t.Error("opening the workflow without a track should be a no-op")
		}
	})

	t.Run("Select Phase Failure Keeps Modal Open", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, nil, errors.New("could not fetch playlists"))

		if s.Add().Phase != Failed {
			t.Errorf("phase = %v, want failed", s.Add().Phase)
		}
		if !s.Add().Open() {
			t.Error("modal must stay open for the user to close manually")
		}
		if s.CurrentTrackID() != "t7" {
			t.Error("failure should not clear currentTrackID")
		}
	})

	t.Run("Submit Without Choice Sends Nothing", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, testPlaylists(), nil)

		sub, err := s.SubmitAdd("")
		if !errors.Is(err, shared.ErrNoTargetPlaylist) {
			t.Fatalf("expected ErrNoTargetPlaylist, got %v", err)
		}
		if sub != nil {
			t.Fatal("no submission should be produced")
		}
		if s.Add().Phase != Ready {
			t.Error("validation failure should leave the dropdown phase intact")
		}
		if s.AddNotice() == "" {
			t.Error("expected a local validation notice")
		}
	})

	t.Run("Submit Captures Track And Playlist", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, testPlaylists(), nil)

		sub, err := s.SubmitAdd("pl2")
		if err != nil {
			t.Fatalf("expected submission, got error %v", err)
		}
		if sub.TrackID != "t7" || sub.PlaylistID != "pl2" {
			t.Errorf("submission = %+v, want t7/pl2", sub)
		}
		if s.Add().Phase != Submitting {
			t.Errorf("phase = %v, want submitting", s.Add().Phase)
		}
	})

	t.Run("Failure Allows Retry", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, testPlaylists(), nil)
		_, _ = s.SubmitAdd("pl1")

		s.ApplyAddResult(token, errors.New("quota exceeded"))
		if s.Add().Phase != Ready {
			t.Errorf("phase = %v, want ready for retry", s.Add().Phase)
		}
		if s.AddNotice() != "quota exceeded" {
			t.Errorf("notice = %q, want failure text", s.AddNotice())
		}

		// Retry goes through the same confirm transition.
		if _, err := s.SubmitAdd("pl1"); err != nil {
			t.Errorf("retry should be possible, got %v", err)
		}
	})

	t.Run("Success Then AutoClose", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, testPlaylists(), nil)
		_, _ = s.SubmitAdd("pl1")

		s.ApplyAddResult(token, nil)
		if s.Add().Phase != Done {
			t.Errorf("phase = %v, want done (confirmation showing)", s.Add().Phase)
		}
		if s.CurrentTrackID() != "t7" {
			t.Error("currentTrackID must remain set until the delayed close fires")
		}

		if !s.AutoCloseAdd(token) {
			t.Fatal("auto-close for the active invocation should fire")
		}
		if s.Add().Open() {
			t.Error("modal should be hidden after auto-close")
		}
		if s.CurrentTrackID() != "" {
			t.Error("currentTrackID should be cleared by auto-close")
		}
	})

	t.Run("Stale AutoClose Is Ignored", func(t *testing.T) {
		s := New()
		first, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(first, testPlaylists(), nil)
		_, _ = s.SubmitAdd("pl1")
		s.ApplyAddResult(first, nil)

		// A new invocation starts before the 1.5s timer fires.
		second, _ := s.BeginAdd("t8")

		if s.AutoCloseAdd(first) {
			t.Fatal("timer from the superseded invocation must not close the new modal")
		}
		if !s.Add().Open() || s.CurrentTrackID() != "t8" {
			t.Error("new invocation should be untouched by the stale timer")
		}

		s.ApplyAddPlaylists(second, testPlaylists(), nil)
		if s.Add().Phase != Ready {
			t.Error("new invocation should proceed normally")
		}
	})

	t.Run("Manual Close Clears Track", func(t *testing.T) {
		s := New()
		token, _ := s.BeginAdd("t7")
		s.ApplyAddPlaylists(token, testPlaylists(), nil)

		s.CloseAdd()
		if s.Add().Open() || s.CurrentTrackID() != "" {
			t.Error("close should hide the modal and clear currentTrackID")
		}

		// The uncancelled in-flight mutation resolving later is dropped.
		if s.ApplyAddResult(token, nil) {
			t.Error("result for a closed workflow should be dropped")
		}
	})

	t.Run("Stale Playlist Fetch Is Dropped", func(t *testing.T) {
		s := New()
		first, _ := s.BeginAdd("t1")
		second, _ := s.BeginAdd("t2")

		if s.ApplyAddPlaylists(first, testPlaylists(), nil) {
			t.Fatal("playlist fetch from the superseded invocation should be dropped")
		}
		if s.Add().Phase != Loading {
			t.Error("current invocation should still be loading")
		}

		s.ApplyAddPlaylists(second, testPlaylists(), nil)
		if s.Add().Phase != Ready {
			t.Error("current invocation's fetch should be applied")
		}
	})
}
