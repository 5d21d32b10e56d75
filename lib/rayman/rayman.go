// Package rayman tags every request with a ray id and a logger carrying
// it, so that log lines from anywhere in a request can be correlated.
package rayman

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ID string

type key int

const (
	rayKey key = iota
	loggerKey
)

func newRayID() ID {
	return ID(uuid.New().String())
}

func ContextWithRay(ctx context.Context) context.Context {
	return context.WithValue(ctx, rayKey, newRayID())
}

func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(rayKey).(ID)
	return id, ok
}

func contextWithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.Level = logrus.PanicLevel
	return l
}()

// ContextLogger returns the logger attached to ctx by LoggingHandler. A
// context without one gets a logger that drops everything.
func ContextLogger(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok {
		return l
	}
	return discard
}
