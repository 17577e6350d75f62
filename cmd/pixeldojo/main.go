// Command pixeldojo generates AI images from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pixeldojo "github.com/randomguy2443/pixeldojo-go"
	"github.com/randomguy2443/pixeldojo-go/internal/config"
	"github.com/randomguy2443/pixeldojo-go/internal/keystore"
	"github.com/randomguy2443/pixeldojo-go/internal/render"
)

const usage = `pixeldojo - AI image generation CLI

Usage:
  pixeldojo generate <prompt> [flags]   Generate images from a text prompt
  pixeldojo models                      List available models
  pixeldojo ratios                      List available aspect ratios
  pixeldojo config <show|set-key|clear-key|test>
  pixeldojo history [-n <count>]        Show recent generations
  pixeldojo gui                         Launch the GUI
  pixeldojo version                     Show version information

Environment:
  PIXELDOJO_API_KEY      API key (or use 'pixeldojo config set-key')
  PIXELDOJO_API_URL      Base URL override
  PIXELDOJO_TIMEOUT_SEC  Request timeout in seconds (default 120)
  PIXELDOJO_MAX_RETRIES  Retry attempts for transient failures (default 3)
  PIXELDOJO_DEBUG        Verbose logging

Run 'pixeldojo generate -h' for generation flags.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	switch args[0] {
	case "version", "-V", "--version":
		fmt.Printf("pixeldojo %s\n", pixeldojo.Version)
		return 0
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorLine("invalid configuration: %v", err))
		return 1
	}

	// The env var wins; the saved key file is the fallback.
	if cfg.API.Key == "" {
		if key, err := keystore.New(config.AppDir()).Load(); err == nil {
			cfg.API.Key = key
		}
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorLine("initializing logger: %v", err))
		return 1
	}
	defer logger.Sync()

	switch args[0] {
	case "generate":
		return cmdGenerate(cfg, logger, args[1:])
	case "models":
		fmt.Print(render.ModelsTable())
		return 0
	case "ratios":
		fmt.Print(render.RatiosTable())
		return 0
	case "config":
		return cmdConfig(cfg, logger, args[1:])
	case "history":
		return cmdHistory(cfg, args[1:])
	case "gui":
		fmt.Fprintln(os.Stderr, render.ErrorLine("the GUI is not included in this build; use 'pixeldojo generate' instead"))
		return 1
	default:
		fmt.Fprintln(os.Stderr, render.ErrorLine("unknown command %q", args[0]))
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
}

func newClient(cfg *config.Config, logger *zap.Logger) *pixeldojo.Client {
	// PIXELDOJO_MAX_RETRIES=0 means the user asked for no retries.
	maxRetries := cfg.API.MaxRetries
	if maxRetries == 0 {
		maxRetries = pixeldojo.NoRetries
	}

	return pixeldojo.New(pixeldojo.Config{
		APIKey:            cfg.API.Key,
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		MaxRetries:        maxRetries,
		RetryDelay:        cfg.API.RetryDelay,
		MaxConnections:    cfg.API.MaxConnections,
		RequestsPerMinute: cfg.API.RequestsPerMinute,
	}, logger)
}

// reportError translates client errors into user-facing messages and
// returns the process exit code.
func reportError(err error) int {
	switch {
	case errors.Is(err, pixeldojo.ErrAuthFailed):
		fmt.Fprintln(os.Stderr, render.ErrorLine("authentication failed; check your API key ('pixeldojo config set-key')"))
	case errors.Is(err, pixeldojo.ErrInsufficientCredits):
		fmt.Fprintln(os.Stderr, render.ErrorLine("%v", err))
	case errors.Is(err, pixeldojo.ErrRateLimited):
		fmt.Fprintln(os.Stderr, render.ErrorLine("rate limit exceeded; try again later"))
	case errors.Is(err, pixeldojo.ErrInvalidRequest):
		fmt.Fprintln(os.Stderr, render.ErrorLine("%v", err))
	default:
		fmt.Fprintln(os.Stderr, render.ErrorLine("%v", err))
	}
	return 1
}
