// Package logger builds the zerolog loggers used across the client and CLI.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const filePermission = 0o664

// Build assembles a logger from an output target and level.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
	pretty bool
}

// New starts a build targeting stderr at info level.
func New() *Build {
	return &Build{writer: os.Stderr, level: zerolog.InfoLevel}
}

// ToWriter directs output to w.
func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// ToPath directs output to an append-mode log file.
func (b *Build) ToPath(path string) *Build {
	b.path = path
	return b
}

// Level sets the minimum level.
func (b *Build) Level(level zerolog.Level) *Build {
	b.level = level
	return b
}

// Pretty switches to the human-readable console format instead of JSON.
func (b *Build) Pretty() *Build {
	b.pretty = true
	return b
}

// Make produces the logger. A file target failing to open is the only error.
func (b *Build) Make() (zerolog.Logger, error) {
	w := b.writer
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
		if err != nil {
			return zerolog.Nop(), err
		}
		w = zerolog.SyncWriter(f)
	}
	if b.pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(b.level).With().Timestamp().Logger(), nil
}
