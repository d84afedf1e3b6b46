package middleware

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	adminKey
)

// AdminIdentity the authenticated admin attached to a request
type AdminIdentity struct {
	UID   string
	Email string
}

// RequestIDFromContext returns the request id set by LoggingMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// AdminFromContext returns the admin set by AuthMiddleware.
func AdminFromContext(ctx context.Context) (AdminIdentity, bool) {
	admin, ok := ctx.Value(adminKey).(AdminIdentity)
	return admin, ok
}

// WithAdmin attaches an admin identity to ctx.
func WithAdmin(ctx context.Context, admin AdminIdentity) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// WithRequestID attaches a request id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
