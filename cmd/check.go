package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ccx/internal/formatter"
	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/repositories"
	"github.com/desertthunder/ccx/internal/session"
	"github.com/desertthunder/ccx/internal/shared"
	"github.com/desertthunder/ccx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CheckRun runs a single check in the requested query mode and prints or
// exports the resulting report.
func (r *Runner) CheckRun(ctx context.Context, cmd *cli.Command) error {
	mode, err := session.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	in := session.Inputs{
		Text:       cmd.String("text"),
		Limit:      cmd.String("limit"),
		RangeStart: cmd.String("range-start"),
		RangeEnd:   cmd.String("range-end"),
	}

	engine, cleanup, err := r.checkEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	report, err := engine.Run(ctx, progress, mode, in, cmd.String("playlist-id"))
	close(progress)
	<-done

	if err != nil {
		var remote *shared.RemoteError
		if errors.As(err, &remote) {
			return r.writePlain("✗ %s\n", remote.Message)
		}
		return err
	}

	if format := cmd.String("format"); format != "" {
		files, err := formatter.WriteReport(report, format, cmd.String("output"))
		if err != nil {
			return err
		}
		for _, f := range files {
			r.writePlain("✓ Wrote %s\n", f)
		}
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	return r.printReport(report)
}

func (r *Runner) printReport(report *models.CheckReport) error {
	r.writePlainHeader(report.Title)
	for i, track := range report.Tracks {
		r.writePlain("%d. %s — %s\n", i+1, track.Name, track.Artist)
		r.writePlain("   %s (confidence %.2f)\n", formatter.VerdictString(track.Free()), track.Confidence())
		r.writePlain("   %s\n", track.CopyrightSummary())
	}
	return r.writePlainln("%d of %d tracks likely free", report.FreeCount(), len(report.Tracks))
}

// CheckBulk checks every URL from the --url flags and the optional --file,
// exporting one report per URL plus a manifest.
func (r *Runner) CheckBulk(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.StringSlice("url")

	if path := cmd.String("file"); path != "" {
		fileURLs, err := readURLFile(path)
		if err != nil {
			return err
		}
		urls = append(urls, fileURLs...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("%w: no URLs given, use --url or --file", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.checkEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()

	result, err := engine.BulkCheck(ctx, progress, urls, tasks.BulkCheckOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlainHeader("Bulk Check Complete")
	r.writePlain("Checked: %d\n", result.TotalURLs)
	r.writePlain("Succeeded: %d\n", result.SuccessfulChecks)
	r.writePlain("Failed: %d\n", result.FailedChecks)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	return nil
}

// CheckPlaylists lists the authenticated user's playlists.
func (r *Runner) CheckPlaylists(ctx context.Context, cmd *cli.Command) error {
	if r.checker == nil {
		return fmt.Errorf("%w: checker service not initialized", shared.ErrServiceUnavailable)
	}

	playlists, err := r.checker.MyPlaylists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Your Playlists")
	for i, p := range playlists {
		r.writePlain("%d. %s (%s, %d tracks) [%s]\n", i+1, p.Name, p.Owner, p.Tracks, p.ID)
	}
	return nil
}

// checkEngine returns an engine backed by the verdict log when the database
// can be opened, falling back to an unrecorded engine otherwise.
func (r *Runner) checkEngine() (tasks.Engine, func(), error) {
	if r.checker == nil {
		return nil, nil, fmt.Errorf("%w: checker service not initialized", shared.ErrServiceUnavailable)
	}

	db, err := r.openDatabase()
	if err != nil {
		r.logger.Warn("verdict log unavailable, checks will not be recorded", "error", err)
		return tasks.NewCheckEngine(r.checker, nil), func() {}, nil
	}

	repo := repositories.NewVerdictRepository(db)
	return tasks.NewCheckEngine(r.checker, repo), func() { db.Close() }, nil
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}
