package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/ccx/internal/server"
	"github.com/desertthunder/ccx/internal/services"
	"github.com/desertthunder/ccx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin performs OAuth2 authentication flow for Spotify.
//
// Starts a local HTTP server, opens browser for user authorization, and exchanges auth code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if config == nil {
		var err error
		if _, statErr := os.Stat(configPath); statErr == nil {
			config, err = shared.LoadConfig(configPath)
			if err != nil {
				r.logger.Warnf("failed to load config, using defaults %v", err)
				config = shared.DefaultConfig()
			}
		} else {
			config = shared.DefaultConfig()
		}
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrInvalidArgument)
	}

	auth, err := services.NewSpotifyAuth(config.Credentials.Spotify)
	if err != nil {
		return fmt.Errorf("failed to create Spotify auth: %w", err)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	addr, err := config.Credentials.Spotify.CallbackAddr()
	if err != nil {
		return fmt.Errorf("invalid redirect URI: %w", err)
	}

	authURL := auth.AuthURL(state)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	handler := server.NewOAuthHandler(auth.Config(), state)
	router := server.NewBasicRouter()

	token, err := server.WaitForCallback(ctx, addr, handler, router, 2*time.Minute)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	r.config = config
	r.configPath = configPath
	if err := r.saveTokens(token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: ccx check run --mode my-playlists\n")

	return nil
}

// AuthSession imports checker session headers from a browser cURL command and
// records their path in the config.
func (r *Runner) AuthSession(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	configPath := cmd.String("config")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for checker session headers")

	var headers *shared.CurlHeaders
	var err error

	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	if len(headers.AuthHeaders()) == 0 {
		return fmt.Errorf("%w: no headers found in cURL command", shared.ErrInvalidInput)
	}

	if curlFile != "" {
		r.config.Checker.HeadersPath = curlFile
		if err := shared.SaveConfig(configPath, r.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		r.writePlain("✓ Session headers path saved to %s\n", configPath)
	}

	r.writePlain("✓ Parsed %d session headers\n", len(headers.AuthHeaders()))
	return nil
}

// AuthStatus shows the stored credential state without calling any service.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify

	r.writePlainHeader("Authentication Status")

	if creds.ClientID != "" && creds.ClientSecret != "" {
		r.writePlain("Client credentials: ✓ configured\n")
	} else {
		r.writePlain("Client credentials: ✗ missing\n")
	}

	if creds.AccessToken != "" {
		r.writePlain("Access token: ✓ present\n")
	} else {
		r.writePlain("Access token: ✗ not authenticated\n")
	}

	if creds.Expiry != "" {
		r.writePlain("Token expiry: %s\n", creds.Expiry)
	}

	if r.config.Checker.HeadersPath != "" {
		r.writePlain("Session headers: %s\n", r.config.Checker.HeadersPath)
	} else {
		r.writePlain("Session headers: not configured\n")
	}

	return nil
}
