package rate

import (
	"context"

	"github.com/sirupsen/logrus"
)

type execIDKey struct{}

// WithExecID tags ctx so that log lines of the run carry exec_id.
func WithExecID(ctx context.Context, execID string) context.Context {
	return context.WithValue(ctx, execIDKey{}, execID)
}

func logEntry(ctx context.Context) *logrus.Entry {
	entry := logrus.WithContext(ctx)
	if id, ok := ctx.Value(execIDKey{}).(string); ok && id != "" {
		entry = entry.WithField("exec_id", id)
	}
	return entry
}
