package pagination

import (
	"log/slog"
	"time"
)

// paramAttrs are the fields every pagination log line carries.
func paramAttrs(requestID string, p Params) []any {
	return []any{
		"request_id", requestID,
		"page", p.Page,
		"limit", p.Limit,
	}
}

// LogRequest records an incoming paginated listing request.
func LogRequest(logger *slog.Logger, requestID, userID string, params Params) {
	attrs := append(paramAttrs(requestID, params), "user_id", userID)
	logger.Info("Paginated request", attrs...)
}

// LogResponse records the outcome of a paginated listing request.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	attrs := append(paramAttrs(requestID, params),
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
	logger.Info("Paginated response", attrs...)
}

// LogError records a failed paginated listing request.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	attrs := append(paramAttrs(requestID, params),
		"error", err.Error(),
		"error_type", errorType)
	logger.Error("Pagination error", attrs...)
}
