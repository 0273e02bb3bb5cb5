// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the checker page workflow using server-side
// rendering with HTMX for dynamic updates. Each region of the page
// corresponds to a template and handler:
//
//  1. Mode Selector: radio group swapping the query form via hx-get
//  2. Query Form: per-mode fields posting to the check endpoint
//  3. Playlist Directory: HTMX partial listing the user's playlists
//  4. Results: table partial, one row per track with badge and copyrights
//  5. Track Detail: modal partial fetched with hx-get on row click
//  6. Add-to-Playlist: two-phase modal (picker fetch, then hx-post confirm)
//
// Core Components
//
//   - HTTP Server: server.BasicRouter with html/template rendering
//   - Service Integration: uses the same services.Checker and
//     tasks.CheckEngine as the TUI
//   - Session Management: cookie-based sessions for OAuth state
//   - Race Handling: each check form post carries a monotonically
//     increasing generation value; the results partial embeds it and the
//     client discards swaps whose generation is older than the one shown
//
// Routes
//
//	GET  /                      → Page shell with mode selector (requires auth)
//	GET  /auth/spotify          → OAuth initiation
//	GET  /auth/spotify/callback → OAuth completion
//	GET  /form/{mode}           → HTMX partial: query form for a mode
//	GET  /playlists             → HTMX partial: playlist directory
//	POST /check                 → Run a check, return results partial
//	GET  /tracks/{id}           → HTMX partial: track detail modal
//	POST /playlists/items       → Add track to playlist, return confirmation
//
// Templates
//
//   - base.html: layout with mode selector, auth status
//   - form.html: per-mode input fields
//   - results.html: results table with badges and confidence
//   - detail.html: modal body for one track
//   - add.html: playlist picker and confirmation states
//
// # State Management
//
// Unlike the TUI's in-memory session, the web app keeps page state on
// the client and persists only:
//   - Session cookies: authentication tokens
//   - Verdict records: repositories.VerdictRepository rows per check
//
// Dependencies
//
//   - html/template: server-side rendering
//   - net/http: HTTP server
//   - internal/server: router and OAuth callback handler
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for auth state
//  4. Mode form handler swapping field sets
//  5. Check handler mapping form posts to session.Resolve
//  6. Detail modal handler
//  7. Add-to-playlist handler with empty-selection validation
//  8. OAuth handlers wrapping services.SpotifyAuth
//  9. Error handling: payload errors render as the results title,
//     transport errors as an error banner
//
// # Testing Strategy
//
// Use httptest:
//   - Mock services.Checker for track and playlist data
//   - Validate HTMX headers and response structure
//   - Test generation handling on overlapping check posts
package web
