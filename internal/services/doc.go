// Package services defines the [Checker] interface for the copyright checker
// API and implements it as an HTTP client.
//
// # Checker Interface
//
// The checker service computes license verdicts server-side; this package only
// transports them. [Checker] exposes one method per operation, and the query
// endpoints all accept a resolved [session.Request] so callers never build
// URLs by hand.
//
// # Error Tiers
//
// The service reports its own failures inside an otherwise well-formed 200
// payload as an `{"error": ...}` object. [CheckerService] surfaces those as
// [shared.RemoteError] values carrying the service's message, while transport
// failures, non-2xx statuses, and malformed bodies wrap
// [shared.ErrAPIRequest]. Callers distinguish the tiers with [errors.As] and
// [errors.Is] respectively.
//
// # Authentication
//
// Two schemes are supported, matching the service's deployments:
//   - A bearer token from the OAuth flow ([SpotifyAuth]), set with
//     [CheckerService.WithToken].
//   - Headers imported from a logged-in dashboard session
//     ([shared.ParseCurlFile]), set with [CheckerService.WithSessionHeaders].
//
// # OAuth
//
// [SpotifyAuth] wraps the authorization code flow used by the auth command.
// The callback is handled by the server package's local listener.
package services
