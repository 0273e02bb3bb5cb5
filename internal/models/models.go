// package models defines the data model for the copyright check client
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the check client.
// Implementations include PersistedVerdict.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Copyright represents one copyright line attached to a track's album.
type Copyright struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Signals lists the keyword hits the license classifier matched.
type Signals struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// License is the heuristic verdict computed by the checker service.
//
// Displayed, never computed, on this side.
type License struct {
	IsFree     bool    `json:"is_free"`
	Confidence float64 `json:"confidence"`
	Signals    Signals `json:"signals"`
	Reason     string  `json:"reason,omitempty"`
}

// Track represents one checked track as returned by the checker service.
type Track struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Artist     string      `json:"artist"`
	License    *License    `json:"license,omitempty"`
	Copyrights []Copyright `json:"copyrights"`
}

// Free reports the binary badge variant. A missing license object counts as not free.
func (t Track) Free() bool {
	return t.License != nil && t.License.IsFree
}

// Confidence returns the verdict confidence, defaulting to 0 when no license object is present.
func (t Track) Confidence() float64 {
	if t.License == nil {
		return 0
	}
	return t.License.Confidence
}

// CopyrightSummary joins the track's copyright lines, or returns a placeholder when there are none.
func (t Track) CopyrightSummary() string {
	if len(t.Copyrights) == 0 {
		return "No copyright information"
	}

	lines := make([]string, len(t.Copyrights))
	for i, c := range t.Copyrights {
		lines[i] = c.Text
	}
	return strings.Join(lines, " | ")
}

// Playlist represents one of the user's playlists as returned by the checker service.
type Playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Owner  string `json:"owner"`
	Tracks int    `json:"tracks"`
}

// Album represents album metadata in a track detail payload.
type Album struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	ReleaseDate string      `json:"release_date"`
	Copyrights  []Copyright `json:"copyrights"`
}

// DetailTrack is the track portion of a track detail payload.
type DetailTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Explicit   bool   `json:"explicit"`
	Popularity int    `json:"popularity"`
}

// AudioFeatures holds the optional audio analysis block of a track detail payload.
//
// HasData mirrors the service's `_has_data` marker; the panel is rendered only when it is set.
type AudioFeatures struct {
	Tempo        *float64 `json:"tempo"`
	Key          *int     `json:"key"`
	Mode         *int     `json:"mode"`
	Danceability *float64 `json:"danceability"`
	Energy       *float64 `json:"energy"`
	HasData      bool     `json:"_has_data"`
}

// TrackDetails is the full metadata payload for one track.
type TrackDetails struct {
	Track         DetailTrack    `json:"track"`
	Album         Album          `json:"album"`
	License       *License       `json:"license"`
	AudioFeatures *AudioFeatures `json:"audio_features,omitempty"`
}

// Free reports the binary badge variant for the detail view.
func (d TrackDetails) Free() bool {
	return d.License != nil && d.License.IsFree
}

// Confidence returns the verdict confidence, defaulting to 0.
func (d TrackDetails) Confidence() float64 {
	if d.License == nil {
		return 0
	}
	return d.License.Confidence
}

// CheckReport captures one completed query's result set for export and caching.
type CheckReport struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	CheckedAt time.Time `json:"checked_at"`
	Tracks    []Track   `json:"tracks"`
}

// FreeCount returns the number of tracks judged likely copyright-free.
func (r *CheckReport) FreeCount() int {
	n := 0
	for _, t := range r.Tracks {
		if t.Free() {
			n++
		}
	}
	return n
}

// PersistedVerdict is the locally cached verdict for one checked track.
type PersistedVerdict struct {
	id         string
	sequence   int
	trackID    string
	name       string
	artist     string
	isFree     bool
	confidence float64
	source     string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewPersistedVerdict creates a verdict record from a checked track.
func NewPersistedVerdict(sequence int, source string, track Track) *PersistedVerdict {
	now := time.Now().UTC()
	return &PersistedVerdict{
		sequence:   sequence,
		trackID:    track.ID,
		name:       track.Name,
		artist:     track.Artist,
		isFree:     track.Free(),
		confidence: track.Confidence(),
		source:     source,
		createdAt:  now,
		updatedAt:  now,
	}
}

// RestoreVerdict reconstructs a verdict from stored columns.
func RestoreVerdict(id string, sequence int, trackID, name, artist string, isFree bool, confidence float64, source string, createdAt, updatedAt time.Time, deletedAt *time.Time) *PersistedVerdict {
	return &PersistedVerdict{
		id:         id,
		sequence:   sequence,
		trackID:    trackID,
		name:       name,
		artist:     artist,
		isFree:     isFree,
		confidence: confidence,
		source:     source,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		deletedAt:  deletedAt,
	}
}

func (v *PersistedVerdict) ID() string           { return v.id }
func (v *PersistedVerdict) Sequence() int        { return v.sequence }
func (v *PersistedVerdict) TrackID() string      { return v.trackID }
func (v *PersistedVerdict) Name() string         { return v.name }
func (v *PersistedVerdict) Artist() string       { return v.artist }
func (v *PersistedVerdict) IsFree() bool         { return v.isFree }
func (v *PersistedVerdict) Confidence() float64  { return v.confidence }
func (v *PersistedVerdict) Source() string       { return v.source }
func (v *PersistedVerdict) CreatedAt() time.Time { return v.createdAt }
func (v *PersistedVerdict) UpdatedAt() time.Time { return v.updatedAt }

// SetID assigns the generated identifier before insertion.
func (v *PersistedVerdict) SetID(id string) { v.id = id }

// Touch updates the modification timestamp.
func (v *PersistedVerdict) Touch() { v.updatedAt = time.Now().UTC() }

// Validate checks the verdict's required fields.
func (v *PersistedVerdict) Validate() error {
	if v.trackID == "" {
		return fmt.Errorf("verdict missing track_id")
	}
	if v.name == "" {
		return fmt.Errorf("verdict missing track name")
	}
	if v.confidence < 0 || v.confidence > 1 {
		return fmt.Errorf("verdict confidence out of range: %v", v.confidence)
	}
	return nil
}
