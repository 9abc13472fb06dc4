package irclog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/ironchicken/Parse-IRCLog/internal/logfinder"
	"github.com/ironchicken/Parse-IRCLog/internal/tailer"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

// watcherErrBuffer is the buffer size for the error channel.
// A small buffer prevents error loss during brief moments when the consumer
// is busy processing events, while keeping memory usage minimal.
const watcherErrBuffer = 16

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Watcher follows an IRC log file and emits classified events as lines are
// appended.
type Watcher struct {
	cfg     *watchConfig
	logFile string
	log     *slog.Logger

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
	watching bool
}

// NewWatcher creates a Watcher from functional options.
// The log file is resolved here: an explicit file if given, otherwise the
// most recently modified log file in the configured or auto-detected
// directory.
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logFile := cfg.logFile
	if logFile == "" {
		dir, err := logfinder.FindLogDir(cfg.logDir)
		if err != nil {
			return nil, err
		}
		logFile, err = logfinder.FindLatestLogFile(dir)
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = discardLogger
	}

	return &Watcher{
		cfg:     cfg,
		logFile: logFile,
		log:     logger,
	}, nil
}

// LogFile returns the resolved path being watched.
func (w *Watcher) LogFile() string {
	return w.logFile
}

// Watch starts following the log file and returns the event and error
// channels. Both channels close when ctx is cancelled or the underlying
// tail ends. Watch can only be called once per Watcher instance.
//
// Returns ErrWatcherClosed if the watcher has been closed.
// Returns ErrAlreadyWatching if Watch has already been called.
func (w *Watcher) Watch(ctx context.Context) (<-chan event.Event, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	eventCh := make(chan event.Event)
	errCh := make(chan error, watcherErrBuffer)

	go w.run(ctx, eventCh, errCh)

	return eventCh, errCh, nil
}

// Close stops the watcher and releases resources.
// Safe to call multiple times. Blocks until the watch goroutine has exited.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

// run is the watch goroutine: tail the file, classify each line, deliver
// events until the context ends.
func (w *Watcher) run(ctx context.Context, eventCh chan<- event.Event, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(eventCh)
	defer close(errCh)

	t, err := tailer.New(w.logFile, w.cfg.fromStart)
	if err != nil {
		sendError(ctx, errCh, err)
		return
	}
	defer t.Stop()

	w.log.Debug("watching log file", "path", w.logFile, "from_start", w.cfg.fromStart)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			if line.Err != nil {
				sendError(ctx, errCh, line.Err)
				continue
			}
			w.processLine(ctx, line.Text, eventCh, errCh)
		}
	}
}

// processLine classifies one tailed line and delivers the resulting events.
func (w *Watcher) processLine(ctx context.Context, line string, eventCh chan<- event.Event, errCh chan<- error) {
	line = strings.TrimSuffix(line, "\r")

	result, err := w.cfg.parser.ParseLine(ctx, line)
	if err != nil {
		sendError(ctx, errCh, err)
		return
	}

	evs := result.Events
	if !result.Matched {
		if !w.cfg.keepUnknown {
			return
		}
		evs = []event.Event{{Type: event.Unknown, Text: line}}
	}

	for _, ev := range evs {
		if !w.cfg.filter.allow(ev.Type) {
			continue
		}
		if w.cfg.includeRawLine {
			ev.RawLine = line
		}
		select {
		case eventCh <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// sendError delivers err without blocking forever: if the error buffer is
// full and the context ends, the error is dropped.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	select {
	case errCh <- err:
	case <-ctx.Done():
	}
}

// Watch is a convenience function that creates a Watcher and starts it in
// one step.
//
// Example:
//
//	events, errs, err := irclog.Watch(ctx, irclog.WithLogDir("/var/log/irc"))
func Watch(ctx context.Context, opts ...WatchOption) (<-chan event.Event, <-chan error, error) {
	w, err := NewWatcher(opts...)
	if err != nil {
		return nil, nil, err
	}

	events, errs, err := w.Watch(ctx)
	if err != nil {
		w.Close()
		return nil, nil, err
	}

	// Close the watcher when the context ends so resources are released
	// even though the caller never sees the Watcher.
	go func() {
		<-ctx.Done()
		w.Close()
	}()

	return events, errs, nil
}
