package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/ccx/internal/formatter"
	"github.com/desertthunder/ccx/internal/session"
	"github.com/desertthunder/ccx/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BulkCheckOpts contains configuration for bulk URL checks.
type BulkCheckOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: ccx_check_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// URLCheckResult represents the outcome of checking a single URL.
type URLCheckResult struct {
	URL        string   `json:"url"`
	ReportID   string   `json:"report_id,omitempty"`
	Title      string   `json:"title,omitempty"`
	TrackCount int      `json:"track_count"`
	FreeCount  int      `json:"free_count"`
	Success    bool     `json:"success"`
	Files      []string `json:"files,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// BulkCheckResult contains aggregate data from a bulk check run.
type BulkCheckResult struct {
	TotalURLs        int              `json:"total_urls"`
	SuccessfulChecks int              `json:"successful_checks"`
	FailedChecks     int              `json:"failed_checks"`
	OutputDirectory  string           `json:"output_directory"`
	ManifestPath     string           `json:"manifest_path,omitempty"`
	Results          []URLCheckResult `json:"results"`
}

// BulkCheck checks multiple URLs concurrently with rate limiting and progress tracking.
//
// A bounded worker group keeps concurrency under NumWorkers while a shared
// limiter spaces requests out to respect the service's rate limits. Individual
// failures are recorded per-URL rather than aborting the run, and a manifest
// file summarizing the outcome is written to the output directory.
func (e *CheckEngine) BulkCheck(ctx context.Context, prog chan<- ProgressUpdate, urls []string, opts BulkCheckOpts) (*BulkCheckResult, error) {
	if e.checker == nil {
		return nil, fmt.Errorf("%w: checker service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("ccx_check_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkCheckResult{
		TotalURLs:       len(urls),
		OutputDirectory: opts.OutputDir,
		Results:         make([]URLCheckResult, len(urls)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.NumWorkers)

	for i, url := range urls {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				result.Results[i] = URLCheckResult{URL: url, Error: err.Error()}
				return err
			}

			e.sendProgress(prog, checkingURLUpdate(i+1, len(urls), url))
			result.Results[i] = e.checkSingleURL(gctx, prog, i+1, len(urls), url, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("bulk check interrupted: %w", err)
	}

	for _, res := range result.Results {
		if res.Success {
			result.SuccessfulChecks++
		} else {
			result.FailedChecks++
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "check_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("check completed but failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("check completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// checkSingleURL checks one URL and exports its report.
func (e *CheckEngine) checkSingleURL(ctx context.Context, prog chan<- ProgressUpdate, step, total int, url string, opts BulkCheckOpts) URLCheckResult {
	res := URLCheckResult{URL: url}

	report, err := e.Run(ctx, nil, session.ModeURL, session.Inputs{Text: url}, "")
	if err != nil {
		res.Error = err.Error()
		e.sendProgress(prog, checkFailedUpdate(step, total, url, err))
		return res
	}

	res.ReportID = report.ID
	res.Title = report.Title
	res.TrackCount = len(report.Tracks)
	res.FreeCount = report.FreeCount()

	files, err := formatter.WriteReport(report, opts.Format, filepath.Join(opts.OutputDir, report.ID))
	if err != nil {
		res.Error = fmt.Sprintf("export failed: %v", err)
		e.sendProgress(prog, checkFailedUpdate(step, total, url, err))
		return res
	}

	res.Files = files
	res.Success = true
	e.sendProgress(prog, checkCompletedUpdate(step, total, report.Title, len(files)))
	return res
}
