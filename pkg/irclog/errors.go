package irclog

import (
	"errors"

	"github.com/ironchicken/Parse-IRCLog/internal/logfinder"
)

// Sentinel errors.
var (
	// ErrWatcherClosed is returned by Watch after Close has been called.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyWatching is returned when Watch is called twice on the
	// same Watcher.
	ErrAlreadyWatching = errors.New("watcher is already watching")

	// ErrLogDirNotFound is returned when no IRC log directory could be
	// located.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when the log directory contains no log
	// files.
	ErrNoLogFiles = logfinder.ErrNoLogFiles
)
