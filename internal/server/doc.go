// Package server provides the local HTTP plumbing behind the auth command.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [LoggingMiddleware] logs request method, path, and duration through the shared logger.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel. It only processes one callback to prevent replay attacks.
//
// # Usage
//
// When the user runs `ccx auth`, [WaitForCallback] starts a temporary HTTP
// server on the redirect URI's host and port, handles the callback, and shuts
// down after receiving the OAuth token. The token is then persisted to the
// config file for subsequent checker requests.
package server
