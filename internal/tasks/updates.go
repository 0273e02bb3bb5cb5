package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveQuery Phase = iota
	FetchDirectory
	RunQuery
	RecordVerdicts
	ExportReport
)

func (p Phase) String() string {
	switch p {
	case ResolveQuery:
		return "resolve_query"
	case FetchDirectory:
		return "fetch_directory"
	case RunQuery:
		return "run_query"
	case RecordVerdicts:
		return "record_verdicts"
	case ExportReport:
		return "export_report"
	default:
		return ""
	}
}

func resolvingUpdate(source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveQuery,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving %s query...", source),
	}
}

func runningQueryUpdate(endpoint string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RunQuery,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Checking tracks via %s...", endpoint),
	}
}

func fetchDirectoryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDirectory,
		Step:    1,
		Total:   1,
		Message: "Fetching your playlists...",
	}
}

func recordingUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordVerdicts,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Recording %d verdicts...", count),
	}
}

func checkingURLUpdate(step, total int, url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RunQuery,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Checking: %s...", step, total, url),
	}
}

func checkCompletedUpdate(step, total int, title string, fileCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, fileCount),
	}
}

func checkFailedUpdate(step, total int, url string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, url, err),
	}
}
