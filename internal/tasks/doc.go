// Package tasks orchestrates copyright check operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines three operations:
//
//  1. [Engine.Run] : Single check
//     - Resolves the active mode and raw inputs to one request descriptor
//     - Executes it against the checker service
//     - Wraps the returned verdicts in a [models.CheckReport]
//     - Appends each verdict to the local log when a store is attached
//
//  2. [Engine.Directory] : Playlist directory fetch
//     - Retrieves the user's playlists for playlist-scoped checks
//
//  3. [Engine.BulkCheck] : Concurrent URL checks
//     - Runs each URL through a bounded worker group
//     - Rate-limits requests to stay inside the service's limits
//     - Exports each report and writes a summary manifest
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Verdict Recording
//
// The optional [VerdictStore] interface enables automatic verdict persistence during checks.
// Recording failures never discard the report; the report is returned alongside the error.
//
// # Implementation
//
// [CheckEngine] implements [Engine] with dependencies on:
//   - [services.Checker] : checker service API client
//   - [VerdictStore] : Optional persistence layer (repositories.VerdictRepository)
package tasks
