package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/matching"
	"github.com/matzehuels/stablematch/pkg/observability"
	"github.com/matzehuels/stablematch/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. m may be
// nil to draw the bare instance.
func (r *Runner) Render(ctx context.Context, g *bipartite.Graph, m *matching.Matching, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	hooks := observability.Solver()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := Render(ctx, g, m, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Render generates output artifacts without hooks or logging.
func Render(ctx context.Context, g *bipartite.Graph, m *matching.Matching, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, m, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
