package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports estimate and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnEstimateStart(_ context.Context, rows int) {
	h.logger.Debug("estimate started", "rows", rows)
}

func (h *logHooks) OnEstimateComplete(_ context.Context, patches int, cheaper string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("estimate failed", "err", err, "duration", d.Round(time.Microsecond))
		return
	}
	h.logger.Debug("estimate done", "patches", patches, "cheaper", cheaper, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d.Round(time.Microsecond), "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

// requestLogHooks reports API traffic at debug level.
type requestLogHooks struct {
	logger *log.Logger
}

func (h *requestLogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *requestLogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
