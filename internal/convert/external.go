package convert

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/scholarform/internal/container"
)

// ContainerExtractor converts documents by piping them through a container
// image that writes Markdown to stdout. It serves as the Registry fallback
// for formats without a built-in extractor.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
	timeout time.Duration
}

// NewContainerExtractor verifies that image is present in rt and returns an
// extractor that runs it. A zero timeout disables the per-run limit.
func NewContainerExtractor(ctx context.Context, rt container.Runtime, image string, timeout time.Duration) (*ContainerExtractor, error) {
	if err := rt.HasImage(ctx, image); err != nil {
		return nil, fmt.Errorf("conversion image unavailable in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt, image: image, timeout: timeout}, nil
}

// Extract runs the image over data and returns its output as Markdown.
func (c *ContainerExtractor) Extract(data []byte) (Extraction, error) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, bytes.NewReader(data), &out); err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrUninterpretable, err)
	}
	if out.Len() == 0 {
		return Extraction{}, fmt.Errorf("%w: %s produced no output", ErrUninterpretable, c.image)
	}

	return ExtractMarkdown(out.Bytes())
}
