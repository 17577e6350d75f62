package pixeldojo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DownloadImage fetches a generated image. When the client was built with
// WithDownloadCache, repeat fetches of the same URL are served from memory.
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(url); ok {
			c.metrics.RecordDownload("cache_hit")
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordDownload("error")
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordDownload("error")
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "image download failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordDownload("error")
		return nil, fmt.Errorf("read image data: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(url, data, c.cacheTTL)
	}
	c.metrics.RecordDownload("ok")

	return data, nil
}

// SaveImage downloads an image and writes it to path, creating parent
// directories as needed.
func (c *Client) SaveImage(ctx context.Context, url, path string) error {
	data, err := c.DownloadImage(ctx, url)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	return nil
}
