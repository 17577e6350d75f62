package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	pixeldojo "github.com/randomguy2443/pixeldojo-go"
	"github.com/randomguy2443/pixeldojo-go/internal/config"
	"github.com/randomguy2443/pixeldojo-go/internal/keystore"
	"github.com/randomguy2443/pixeldojo-go/internal/render"
)

func cmdConfig(cfg *config.Config, logger *zap.Logger, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, render.ErrorLine("usage: pixeldojo config <show|set-key|clear-key|test>"))
		return 1
	}

	store := keystore.New(config.AppDir())

	switch args[0] {
	case "show":
		return configShow(cfg)
	case "set-key":
		return configSetKey(store, args[1:])
	case "clear-key":
		if err := store.Delete(); err != nil {
			fmt.Fprintln(os.Stderr, render.ErrorLine("removing API key: %v", err))
			return 1
		}
		fmt.Println(render.SuccessLine("API key removed"))
		return 0
	case "test":
		return configTest(cfg, logger)
	default:
		fmt.Fprintln(os.Stderr, render.ErrorLine("unknown config command %q", args[0]))
		return 1
	}
}

func configShow(cfg *config.Config) int {
	fmt.Printf("API Key:          %s\n", render.MaskKey(cfg.API.Key))
	fmt.Printf("API URL:          %s\n", cfg.API.BaseURL)
	fmt.Printf("Timeout:          %s\n", cfg.API.Timeout)
	fmt.Printf("Max Retries:      %d\n", cfg.API.MaxRetries)
	fmt.Printf("Retry Delay:      %s\n", cfg.API.RetryDelay)
	fmt.Printf("Default Model:    %s\n", cfg.Defaults.Model)
	fmt.Printf("Default Ratio:    %s\n", cfg.Defaults.AspectRatio)
	fmt.Printf("Download Dir:     %s\n", cfg.Defaults.DownloadDir)
	fmt.Printf("History Enabled:  %t\n", cfg.History.Enabled)
	fmt.Printf("History Path:     %s\n", cfg.History.Path)
	return 0
}

func configSetKey(store *keystore.Store, args []string) int {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		fmt.Fprint(os.Stderr, "Enter your PixelDojo API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, render.ErrorLine("reading input: %v", err))
			return 1
		}
		key = strings.TrimSpace(line)
	}

	if err := store.Save(key); err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorLine("saving API key: %v", err))
		return 1
	}

	fmt.Println(render.SuccessLine("API key saved"))
	return 0
}

// configTest issues a minimal authenticated generation to verify the key.
func configTest(cfg *config.Config, logger *zap.Logger) int {
	if cfg.API.Key == "" {
		fmt.Fprintln(os.Stderr, render.ErrorLine("no API key configured"))
		return 1
	}

	fmt.Fprintln(os.Stderr, "Testing connection...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+30*time.Second)
	defer cancel()

	client := newClient(cfg, logger)
	defer client.Close()

	resp, err := client.Generate(ctx, pixeldojo.GenerateRequest{Prompt: "test"})
	if err != nil {
		return reportError(err)
	}

	fmt.Println(render.SuccessLine("connection ok; credits remaining: %.2f", resp.CreditsRemaining))
	return 0
}
