package obs

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Logger returns the process logger.
func Logger() *logrus.Logger { return logger }

// Configure sets the log level and output format ("text" or "json").
func Configure(level string, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	logger.SetLevel(lvl)

	switch format {
	case "", "text":
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("configure logger: unknown format %q", format)
	}
	return nil
}

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// FromContext returns a log entry tagged with the request id, if any.
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField(string(RequestIDKey), id)
	}
	return entry
}
