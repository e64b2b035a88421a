package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// contextKey is a private type so context keys cannot collide with other packages.
type contextKey string

const (
	loggerKey = contextKey("logger")
	callerKey = contextKey("caller")
)

// WithLogger stores a request-scoped logger in a standard context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the process default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// SetCaller stores the resolved caller identity in the Gin context and the
// underlying request context.
func SetCaller(c *gin.Context, caller domain.Caller) {
	c.Set(string(callerKey), caller)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), callerKey, caller))
}

// GetCallerFromContext retrieves the caller identity resolved by the auth
// middleware. The boolean is false when the request was not authenticated.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	if v, exists := c.Get(string(callerKey)); exists {
		if caller, ok := v.(domain.Caller); ok {
			return caller, true
		}
	}
	if caller, ok := c.Request.Context().Value(callerKey).(domain.Caller); ok {
		return caller, true
	}
	return domain.Caller{}, false
}
