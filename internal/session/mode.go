package session

import (
	"fmt"

	"github.com/desertthunder/ccx/internal/shared"
)

// Mode selects where tracks come from: a pasted URL, the user's own
// playlists, their saved library, or a free-text search.
type Mode int

const (
	ModeURL Mode = iota
	ModeMyPlaylists
	ModeSaved
	ModeSearch
)

// DefaultMode is the variant active at load, the first in the selector.
const DefaultMode = ModeURL

func (m Mode) String() string {
	switch m {
	case ModeURL:
		return "url"
	case ModeMyPlaylists:
		return "my-playlists"
	case ModeSaved:
		return "saved"
	case ModeSearch:
		return "search"
	default:
		return ""
	}
}

// Label returns the human-readable selector label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeURL:
		return "Check URL"
	case ModeMyPlaylists:
		return "My Playlists"
	case ModeSaved:
		return "Saved Tracks"
	case ModeSearch:
		return "Search"
	default:
		return ""
	}
}

// Modes returns all mode variants in selector order.
func Modes() []Mode {
	return []Mode{ModeURL, ModeMyPlaylists, ModeSaved, ModeSearch}
}

// ParseMode maps a mode name to its variant.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if m.String() == s {
			return m, nil
		}
	}
	return DefaultMode, fmt.Errorf("%w: unknown mode %q", shared.ErrInvalidArgument, s)
}

// Field identifies one of the raw input fields a mode may expose.
type Field int

const (
	FieldText Field = iota
	FieldLimit
	FieldRangeStart
	FieldRangeEnd
)

// Fields returns the input fields visible in this mode. Switching modes
// hides every other mode's fields before showing these.
func (m Mode) Fields() []Field {
	switch m {
	case ModeURL:
		return []Field{FieldText}
	case ModeMyPlaylists:
		return []Field{FieldRangeStart, FieldRangeEnd}
	case ModeSaved:
		return []Field{FieldLimit}
	case ModeSearch:
		return []Field{FieldText, FieldLimit}
	default:
		return nil
	}
}

// UsesDirectory reports whether the mode requires the playlist directory.
func (m Mode) UsesDirectory() bool {
	return m == ModeMyPlaylists
}
