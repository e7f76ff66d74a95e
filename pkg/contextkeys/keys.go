// Package contextkeys provides centralized context key definitions.
//
// All context keys used across the application are defined here to prevent
// typos and make key usage discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// AccountKey contains the authenticated *auth.Account.
	// Set by: middleware.Auth (pkg/middleware/auth.go)
	// Required by: all protected API endpoints
	AccountKey Key = "account"

	// RequestIDKey contains the request ID string (UUID).
	// Set by: httputil.RequestIDMiddleware
	// Used by: logging middleware
	RequestIDKey Key = "request_id"
)

// WithAccount adds the authenticated account to the context.
func WithAccount(ctx context.Context, account interface{}) context.Context {
	return context.WithValue(ctx, AccountKey, account)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
