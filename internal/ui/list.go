package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/ccx/internal/models"
)

// struct trackItem adapts a checked track to [list.Item]
type trackItem struct {
	track models.Track
}

func (t trackItem) FilterValue() string { return t.track.Name }

func (t trackItem) Title() string {
	return fmt.Sprintf("%s — %s", t.track.Name, t.track.Artist)
}

func (t trackItem) Description() string {
	return fmt.Sprintf("%s · confidence %.2f · %s",
		badge(t.track.Free()), t.track.Confidence(), t.track.CopyrightSummary())
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}

// struct playlistItem adapts a directory entry to [list.Item]
type playlistItem struct {
	playlist models.Playlist
}

func (p playlistItem) FilterValue() string { return p.playlist.Name }
func (p playlistItem) Title() string       { return p.playlist.Name }

func (p playlistItem) Description() string {
	return fmt.Sprintf("%s · %d tracks", p.playlist.Owner, p.playlist.Tracks)
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

func newList(title string, height int) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}
