// Package logging attaches a logrus-backed subscriber to the event bus so
// HTTP and GraphQL activity is logged without coupling the engine to a
// logger.
package logging

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	eventbus "github.com/davmik/gqlserve/internal/eventbus"
	events "github.com/davmik/gqlserve/internal/events"
	reqid "github.com/davmik/gqlserve/internal/reqid"
)

// Setup creates the logger and registers event subscribers. The LOGLEVEL
// environment variable overrides the given level name when set.
func Setup(level string) *logrus.Logger {
	if env := os.Getenv("LOGLEVEL"); env != "" {
		level = env
	}
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableLevelTruncation: true,
	})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	sub := &subscriber{logger: logger}
	sub.register()
	return logger
}

type subscriber struct {
	logger *logrus.Logger
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
		s.entry(ctx).WithFields(logrus.Fields{
			"method": e.Request.Method,
			"path":   e.Request.URL.Path,
		}).Debug("http request")
	})

	eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		s.entry(ctx).WithFields(logrus.Fields{
			"method":   e.Request.Method,
			"path":     e.Request.URL.Path,
			"status":   e.Status,
			"duration": e.Duration,
		}).Info("http response")
	})

	eventbus.Subscribe(func(ctx context.Context, e events.GraphQLStart) {
		s.entry(ctx).WithFields(logrus.Fields{
			"operation": e.OperationName,
			"type":      e.OperationType,
		}).Debug("graphql operation start")
	})

	eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
		entry := s.entry(ctx).WithFields(logrus.Fields{
			"operation": e.OperationName,
			"type":      e.OperationType,
			"errors":    e.ErrorCount,
			"duration":  e.Duration,
		})
		if e.ErrorCount > 0 {
			entry.Warn("graphql operation finished with errors")
			return
		}
		entry.Info("graphql operation finished")
	})
}

func (s *subscriber) entry(ctx context.Context) *logrus.Entry {
	if rid, ok := reqid.FromContext(ctx); ok {
		return s.logger.WithField("request_id", rid)
	}
	return logrus.NewEntry(s.logger)
}
