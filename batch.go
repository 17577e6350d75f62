package pixeldojo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 3

// BatchOptions applies to every prompt in a GenerateBatch call.
type BatchOptions struct {
	Model         Model
	AspectRatio   AspectRatio
	NumOutputs    int
	MaxConcurrent int
}

// BatchResult pairs a prompt with its outcome. Exactly one of Response and
// Err is set.
type BatchResult struct {
	Prompt   string
	Response *GenerateResponse
	Err      error
}

// GenerateBatch issues an independent Generate call per prompt with bounded
// concurrency. One prompt failing does not stop the others; results come
// back in prompt order.
func (c *Client) GenerateBatch(ctx context.Context, prompts []string, opts BatchOptions) []BatchResult {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(prompts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, prompt := range prompts {
		i, prompt := i, prompt
		g.Go(func() error {
			resp, err := c.Generate(ctx, GenerateRequest{
				Prompt:      prompt,
				Model:       opts.Model,
				AspectRatio: opts.AspectRatio,
				NumOutputs:  opts.NumOutputs,
			})
			results[i] = BatchResult{Prompt: prompt, Response: resp, Err: err}
			return nil
		})
	}

	// Goroutines never return errors; failures live in their result slot.
	_ = g.Wait()

	return results
}
