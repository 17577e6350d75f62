// Package render formats CLI output: result tables, JSON, plain URL lists.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	pixeldojo "github.com/randomguy2443/pixeldojo-go"
	"github.com/randomguy2443/pixeldojo-go/internal/history"
)

var (
	headerColor  = color.New(color.FgMagenta, color.Bold)
	urlColor     = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
)

func ErrorLine(format string, args ...interface{}) string {
	return errorColor.Sprint("Error: ") + fmt.Sprintf(format, args...)
}

func SuccessLine(format string, args ...interface{}) string {
	return successColor.Sprint("Success: ") + fmt.Sprintf(format, args...)
}

func WarningLine(format string, args ...interface{}) string {
	return warnColor.Sprint("Warning: ") + fmt.Sprintf(format, args...)
}

// ResultTable renders a generation result with one row per image.
func ResultTable(resp *pixeldojo.GenerateResponse, prompt string) string {
	var sb strings.Builder

	sb.WriteString(headerColor.Sprint("Generated Images"))
	sb.WriteString("\n\n")

	for i, img := range resp.Images {
		seed := "N/A"
		if img.Seed != nil {
			seed = fmt.Sprintf("%d", *img.Seed)
		}
		sb.WriteString(fmt.Sprintf("%d. %s  seed %s\n   %s\n",
			i+1,
			img.Dimensions(),
			seed,
			urlColor.Sprint(img.URL),
		))
	}

	sb.WriteString("\n")
	sb.WriteString(dimColor.Sprint("Prompt: "))
	sb.WriteString(Truncate(prompt, 80))
	sb.WriteString("\n")
	sb.WriteString(dimColor.Sprint("Credits: "))
	sb.WriteString(fmt.Sprintf("%.2f used, %.2f remaining", resp.CreditsUsed, resp.CreditsRemaining))
	sb.WriteString("\n")

	return sb.String()
}

func ResultJSON(resp *pixeldojo.GenerateResponse) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(data), nil
}

// ResultURLs is one URL per line, for piping into other tools.
func ResultURLs(resp *pixeldojo.GenerateResponse) string {
	return strings.Join(resp.ImageURLs(), "\n")
}

func ModelsTable() string {
	var sb strings.Builder

	sb.WriteString(headerColor.Sprint("Available Models"))
	sb.WriteString("\n\n")

	rows := lo.Map(pixeldojo.Models(), func(m pixeldojo.Model, _ int) string {
		return fmt.Sprintf("  %-22s %-26s %s", m, m.DisplayName(), m.Description())
	})
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteString("\n")

	return sb.String()
}

func RatiosTable() string {
	var sb strings.Builder

	sb.WriteString(headerColor.Sprint("Available Aspect Ratios"))
	sb.WriteString("\n\n")

	rows := lo.Map(pixeldojo.AspectRatios(), func(r pixeldojo.AspectRatio, _ int) string {
		w, h := r.Dimensions()
		return fmt.Sprintf("  %-6s %-16s ~%dx%d", r, r.DisplayName(), w, h)
	})
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteString("\n")

	return sb.String()
}

func HistoryTable(jobs []history.Job) string {
	if len(jobs) == 0 {
		return dimColor.Sprint("No generation history") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerColor.Sprint("Generation History"))
	sb.WriteString("\n\n")

	for _, job := range jobs {
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			job.CreatedAt.Format("2006-01-02 15:04"),
			job.Model,
			Truncate(job.Prompt, 60),
		))
		if job.Error != "" {
			sb.WriteString("   " + errorColor.Sprint("failed: ") + job.Error + "\n")
			continue
		}
		for _, url := range job.ImageURLs {
			sb.WriteString("   " + urlColor.Sprint(url) + "\n")
		}
	}

	return sb.String()
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
