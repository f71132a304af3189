package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stablematch/pkg/observability"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.SolverHooks = logHooks{}

func newLogHooks(logger *log.Logger) logHooks {
	return logHooks{logger: logger}
}

func (h logHooks) OnReadStart(_ context.Context, source string) {
	h.logger.Debug("reading instance", "source", source)
}

func (h logHooks) OnReadComplete(_ context.Context, source string, vertices, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("read failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("read complete", "source", source, "vertices", vertices, "edges", edges, "duration", d)
}

func (h logHooks) OnComputeStart(_ context.Context, algorithm string, vertices int) {
	h.logger.Debug("computing matching", "algorithm", algorithm, "vertices", vertices)
}

func (h logHooks) OnComputeComplete(_ context.Context, algorithm string, pairs int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "algorithm", algorithm, "err", err)
		return
	}
	h.logger.Debug("compute complete", "algorithm", algorithm, "pairs", pairs, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}
