package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	pixeldojo "github.com/randomguy2443/pixeldojo-go"
	"github.com/randomguy2443/pixeldojo-go/internal/config"
	"github.com/randomguy2443/pixeldojo-go/internal/history"
	"github.com/randomguy2443/pixeldojo-go/internal/render"
)

func cmdGenerate(cfg *config.Config, logger *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	model := fs.String("model", cfg.Defaults.Model, "model to use (see 'pixeldojo models')")
	ratio := fs.String("aspect-ratio", cfg.Defaults.AspectRatio, "aspect ratio (see 'pixeldojo ratios')")
	num := fs.Int("num", cfg.Defaults.NumOutputs, "number of images (1-4)")
	seed := fs.Int64("seed", -1, "random seed for reproducibility (-1 for random)")
	output := fs.String("output", "table", "output format: table, json, urls, quiet")
	download := fs.String("download", "", "download images to this directory")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, render.ErrorLine("usage: pixeldojo generate <prompt> [flags]"))
		return 1
	}
	prompt := fs.Arg(0)

	switch *output {
	case "table", "json", "urls", "quiet":
	default:
		fmt.Fprintln(os.Stderr, render.ErrorLine("unknown output format %q", *output))
		return 1
	}

	if cfg.API.Key == "" {
		fmt.Fprintln(os.Stderr, render.ErrorLine("no API key configured; use 'pixeldojo config set-key' or set PIXELDOJO_API_KEY"))
		return 1
	}

	req := pixeldojo.GenerateRequest{
		Prompt:      prompt,
		Model:       pixeldojo.Model(*model),
		AspectRatio: pixeldojo.AspectRatio(*ratio),
		NumOutputs:  *num,
	}
	if *seed >= 0 {
		req.Seed = seed
	}

	if !req.Model.Valid() {
		fmt.Fprintln(os.Stderr, render.ErrorLine("invalid model %q", *model))
		fmt.Fprint(os.Stderr, render.ModelsTable())
		return 1
	}
	if !req.AspectRatio.Valid() {
		fmt.Fprintln(os.Stderr, render.ErrorLine("invalid aspect ratio %q", *ratio))
		fmt.Fprint(os.Stderr, render.RatiosTable())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient(cfg, logger)
	defer client.Close()

	if *output == "table" {
		fmt.Fprintln(os.Stderr, "Generating...")
	}

	resp, err := client.Generate(ctx, req)

	recordHistory(cfg, logger, req, resp, err)

	if err != nil {
		return reportError(err)
	}

	switch *output {
	case "table":
		fmt.Print(render.ResultTable(resp, prompt))
	case "json":
		out, jsonErr := render.ResultJSON(resp)
		if jsonErr != nil {
			return reportError(jsonErr)
		}
		fmt.Println(out)
	case "urls":
		fmt.Println(render.ResultURLs(resp))
	case "quiet":
	}

	if *download != "" && len(resp.Images) > 0 {
		if err := downloadImages(ctx, client, resp, *download); err != nil {
			return reportError(err)
		}
	}

	return 0
}

func downloadImages(ctx context.Context, client *pixeldojo.Client, resp *pixeldojo.GenerateResponse, dir string) error {
	fmt.Fprintf(os.Stderr, "Downloading to %s...\n", dir)

	stamp := time.Now().Format("20060102_150405")
	for i, img := range resp.Images {
		name := fmt.Sprintf("pixeldojo_%s_%d.png", stamp, i+1)
		path := filepath.Join(dir, name)
		if err := client.SaveImage(ctx, img.URL, path); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
		fmt.Println(render.SuccessLine("saved %s", path))
	}
	return nil
}

func recordHistory(cfg *config.Config, logger *zap.Logger, req pixeldojo.GenerateRequest, resp *pixeldojo.GenerateResponse, genErr error) {
	if !cfg.History.Enabled {
		return
	}

	job := history.NewJob(req.Prompt, req.Model.String(), req.AspectRatio.String())
	if genErr != nil {
		job.Error = genErr.Error()
	} else {
		job.ImageURLs = resp.ImageURLs()
		job.CreditsUsed = resp.CreditsUsed
	}

	store := history.NewStore(cfg.History.Path, cfg.History.MaxEntries)
	if err := store.Add(job); err != nil {
		logger.Warn("recording history entry", zap.Error(err))
	}
}

func cmdHistory(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	n := fs.Int("n", 10, "number of entries to show")
	clear := fs.Bool("clear", false, "clear the history")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	store := history.NewStore(cfg.History.Path, cfg.History.MaxEntries)

	if *clear {
		if err := store.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, render.ErrorLine("clearing history: %v", err))
			return 1
		}
		fmt.Println(render.SuccessLine("history cleared"))
		return 0
	}

	jobs, err := store.Recent(*n)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorLine("reading history: %v", err))
		return 1
	}

	fmt.Print(render.HistoryTable(jobs))
	return 0
}
