package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct{}

// GetLogger gets the request-scoped logger from context or returns the
// default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// utcClock is the production Clock, reporting wall time in UTC.
type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

// NewUTCClock returns the production clock.
func NewUTCClock() portssvc.Clock {
	return utcClock{}
}
