package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Paths polled by load balancers and scrapers are not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Headers whose values are never written to the log.
var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"X-Api-Key":     true,
}

// RequestLoggingMiddleware logs one line per completed request at a level
// chosen from the response status. Request bodies carry company
// authentication codes and are never logged; verbose adds the query
// string and headers.
func RequestLoggingMiddleware(log *zap.Logger, verbose bool) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int64("request_size", c.Request.ContentLength),
			zap.Int("response_size", c.Writer.Size()),
		}
		if verbose {
			fields = append(fields,
				zap.String("query", c.Request.URL.RawQuery),
				zap.Any("headers", headerSummary(c.Request.Header)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		if ce := log.Check(levelFor(status), "Request completed"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

func headerSummary(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for key, values := range header {
		if redactedHeaders[key] {
			out[key] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
