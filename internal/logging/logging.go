// Package logging configures logrus for a terminal UI: the screen belongs to
// the viewer, so log lines go to a file or nowhere.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup returns an entry tagged with a fresh session id, and a close func for
// the log file. An empty path discards output.
func Setup(path, level string) (*log.Entry, func() error, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "log level %q", level)
	}
	logger.SetLevel(lvl)

	closer := func() error { return nil }
	if path == "" {
		logger.SetOutput(io.Discard)
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		logger.SetOutput(f)
		closer = f.Close
	}
	return logger.WithField("session", uuid.NewString()), closer, nil
}

// Discard is a logger for tests and callers without configuration.
func Discard() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}
