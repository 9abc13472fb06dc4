// Package tailer follows a log file as it grows, surviving truncation and
// rotation. It is a thin wrapper around github.com/nxadm/tail.
package tailer

import (
	"io"

	"github.com/nxadm/tail"
)

// Line is one line read from the followed file.
type Line struct {
	Text string
	Err  error // non-nil if reading this line failed
}

// Tailer follows a single log file.
type Tailer struct {
	t     *tail.Tail
	lines chan Line
}

// New starts following path. With fromStart true, existing content is read
// before new lines; otherwise only lines appended after New are delivered.
//
// Polling is used instead of inotify so that logs on network mounts and
// bind-mounted files behave the same as local ones.
func New(path string, fromStart bool) (*Tailer, error) {
	cfg := tail.Config{
		Follow: true,
		ReOpen: true, // survive rotation: reopen the path when it reappears
		Poll:   true,
		Logger: tail.DiscardingLogger,
	}
	if !fromStart {
		cfg.Location = &tail.SeekInfo{Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return nil, err
	}

	tl := &Tailer{
		t:     t,
		lines: make(chan Line),
	}
	go tl.forward()
	return tl, nil
}

// forward converts the underlying tail lines into our Line type so callers
// do not import the tail package directly.
func (tl *Tailer) forward() {
	defer close(tl.lines)
	for line := range tl.t.Lines {
		if line == nil {
			continue
		}
		tl.lines <- Line{Text: line.Text, Err: line.Err}
	}
}

// Lines returns the channel of followed lines. The channel is closed when
// the tailer is stopped or the underlying file watch fails fatally.
func (tl *Tailer) Lines() <-chan Line {
	return tl.lines
}

// Stop stops following and releases watch resources.
func (tl *Tailer) Stop() error {
	err := tl.t.Stop()
	tl.t.Cleanup()
	return err
}
