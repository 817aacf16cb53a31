package xhttp

import (
	"strings"
	"time"

	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/valyala/fasthttp"
)

const slowThreshold = 500 * time.Millisecond

var skipPaths = []string{"/health", "/metrics"}

func TimeoutMiddleware(timeout time.Duration) MiddlewareFunc {
	return func(next RequestHandler) RequestHandler {
		return fasthttp.TimeoutWithCodeHandler(next, timeout,
			StatusText(fasthttp.StatusRequestTimeout), fasthttp.StatusRequestTimeout)
	}
}

func RecoverMiddleware(next RequestHandler) RequestHandler {
	return func(ctx *RequestCtx) {
		defer func() {
			if err := recover(); err != nil {
				ctx.Error(StatusText(StatusInternalServerError), StatusInternalServerError)
				logger.Error("[xhttp] panic recovered", "error", err)
			}
		}()
		next(ctx)
	}
}

func RequestLoggerMiddleware(next RequestHandler) RequestHandler {
	return func(ctx *RequestCtx) {
		path := string(ctx.Path())
		if shouldSkip(path) {
			next(ctx)
			return
		}

		start := time.Now()
		next(ctx)
		latency := time.Since(start)

		fields := []any{
			"method", string(ctx.Method()),
			"path", path,
			"status", ctx.Response.StatusCode(),
			"latency", latency.String(),
			"ip", ctx.RemoteIP().String(),
		}

		if latency > slowThreshold {
			logger.Warn("[xhttp] slow request", fields...)
			return
		}
		logger.Info("[xhttp] request", fields...)
	}
}

func shouldSkip(path string) bool {
	for _, p := range skipPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
