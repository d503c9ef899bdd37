package middleware

import "context"

type contextKey string

const (
	// RequestIDKey stores the request ID.
	RequestIDKey contextKey = "request_id"

	// StartTimeKey stores the request start time.
	StartTimeKey contextKey = "start_time"
)

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
