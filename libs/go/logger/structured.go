package logger

import (
	"time"

	"go.uber.org/zap"
)

// GatewayLogger tags every line with the filing gateway it concerns and,
// once known, the submission's correlation id. The global logger is read at
// log time so clients built before InitLogger still log.
type GatewayLogger struct {
	gateway string
	fields  []zap.Field
}

// ForGateway returns a logger for calls to the named gateway
func ForGateway(gateway string) *GatewayLogger {
	return &GatewayLogger{gateway: gateway}
}

// With returns a copy carrying extra fields
func (l *GatewayLogger) With(fields ...zap.Field) *GatewayLogger {
	merged := make([]zap.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &GatewayLogger{gateway: l.gateway, fields: merged}
}

// WithCorrelationID returns a copy tagged with the submission's correlation id
func (l *GatewayLogger) WithCorrelationID(correlationID string) *GatewayLogger {
	if correlationID == "" {
		return l
	}
	return l.With(zap.String("correlation_id", correlationID))
}

func (l *GatewayLogger) base() *zap.Logger {
	return L().With(zap.String("gateway", l.gateway)).With(l.fields...)
}

// Call records one round trip to the gateway
func (l *GatewayLogger) Call(operation, status string, elapsed time.Duration) {
	l.base().Info("Gateway call completed",
		zap.String("gateway_operation", operation),
		zap.String("submission_status", status),
		zap.Duration("duration", elapsed))
}

// Rejected records a business rejection. Only error codes are logged; the
// gateway's messages can quote submitted data.
func (l *GatewayLogger) Rejected(qualifier string, codes []string) {
	l.base().Warn("Submission rejected by gateway",
		zap.String("qualifier", qualifier),
		zap.Int("error_count", len(codes)),
		zap.Strings("error_codes", codes))
}

// Failed records a transport or parse failure
func (l *GatewayLogger) Failed(msg string, err error) {
	l.base().Error(msg, zap.Error(err))
}
