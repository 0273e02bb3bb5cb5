// package tasks implements copyright check operations against the checker service.
//
// The core abstraction is CheckEngine, which orchestrates query resolution, track
// fetching, verdict recording, and report export.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/services"
	"github.com/desertthunder/ccx/internal/session"
	"github.com/desertthunder/ccx/internal/shared"
)

// VerdictStore is the subset of the verdict repository the engine writes to.
type VerdictStore interface {
	Create(verdict *models.PersistedVerdict) error
}

// Engine defines check operations against the checker service.
type Engine interface {
	// Run resolves one query and fetches its verdicts as a report.
	Run(ctx context.Context, progress chan<- ProgressUpdate, mode session.Mode, in session.Inputs, selectedPlaylistID string) (*models.CheckReport, error)

	// Directory fetches the user's playlists for playlist-scoped checks.
	Directory(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Playlist, error)

	// BulkCheck runs URL checks concurrently and exports each result.
	BulkCheck(ctx context.Context, progress chan<- ProgressUpdate, urls []string, opts BulkCheckOpts) (*BulkCheckResult, error)
}

// CheckEngine implements Engine on top of a [services.Checker].
//
// When a verdict store is attached, every completed check appends its
// verdicts to the local log.
type CheckEngine struct {
	checker  services.Checker
	verdicts VerdictStore
}

// NewCheckEngine creates a CheckEngine. The verdict store may be nil, in which
// case checks are not recorded.
func NewCheckEngine(checker services.Checker, verdicts VerdictStore) *CheckEngine {
	return &CheckEngine{
		checker:  checker,
		verdicts: verdicts,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CheckEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run resolves the mode and inputs to one request, executes it, and wraps the
// verdicts in a report.
//
// Validation failures surface before any request is issued. A service-reported
// error ([shared.RemoteError]) is returned as-is so callers can show its
// message the way the result view does.
func (e *CheckEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, mode session.Mode, in session.Inputs, selectedPlaylistID string) (*models.CheckReport, error) {
	if e.checker == nil {
		return nil, fmt.Errorf("%w: checker service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, resolvingUpdate(mode.String()))

	req, err := session.Resolve(mode, in, selectedPlaylistID)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, runningQueryUpdate(string(req.Endpoint)))

	result, err := e.checker.Check(ctx, req)
	if err != nil {
		return nil, err
	}

	title := result.Title
	if title == "" {
		title = fmt.Sprintf("Found %d tracks", len(result.Tracks))
	}

	report := &models.CheckReport{
		ID:        shared.GenerateID(),
		Title:     title,
		Source:    mode.String(),
		CheckedAt: time.Now().UTC(),
		Tracks:    result.Tracks,
	}

	if e.verdicts != nil && len(report.Tracks) > 0 {
		e.sendProgress(progress, recordingUpdate(len(report.Tracks)))

		var recordErrs []error
		for _, track := range report.Tracks {
			if track.ID == "" {
				continue
			}
			if err := e.verdicts.Create(models.NewPersistedVerdict(0, report.Source, track)); err != nil {
				recordErrs = append(recordErrs, err)
			}
		}
		if len(recordErrs) > 0 {
			return report, fmt.Errorf("check completed but %d verdicts failed to record: %w", len(recordErrs), errors.Join(recordErrs...))
		}
	}

	return report, nil
}

// Directory fetches the user's playlists.
func (e *CheckEngine) Directory(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Playlist, error) {
	if e.checker == nil {
		return nil, fmt.Errorf("%w: checker service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchDirectoryUpdate())
	return e.checker.MyPlaylists(ctx)
}
