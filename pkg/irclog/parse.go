package irclog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ironchicken/Parse-IRCLog/internal/safefile"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

// ParseLines classifies a slice of raw log lines into events, in input
// order. By default every line yields exactly one event (unrecognized lines
// become Unknown events); see WithKeepUnknown and the type filter options to
// change that.
//
// With the default classifier no error is possible; errors only arise from
// custom parsers supplied via WithParser.
func ParseLines(ctx context.Context, lines []string, opts ...ParseOption) ([]event.Event, error) {
	cfg := applyParseOptions(opts)

	events := make([]event.Event, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return events, err
		}
		evs, err := parseOne(ctx, cfg, line)
		if err != nil {
			if cfg.stopOnError {
				return events, fmt.Errorf("line %d: %w", i+1, err)
			}
			continue
		}
		events = append(events, evs...)
	}
	return events, nil
}

// ParseReader reads r line by line and classifies each line.
// Line terminators are stripped before classification: a trailing LF by the
// scanner and a trailing CR here, so CRLF logs parse the same as LF logs.
// The classification itself never alters the text it is given.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOption) ([]event.Event, error) {
	cfg := applyParseOptions(opts)

	maxLine := cfg.maxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	// The scanner's limit is the larger of the initial buffer capacity and
	// max, so keep the initial buffer within the configured limit.
	initial := 64 * 1024
	if maxLine < initial {
		initial = maxLine
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLine)

	var events []event.Event
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return events, err
		}
		line := strings.TrimSuffix(scanner.Text(), "\r")
		evs, err := parseOne(ctx, cfg, line)
		if err != nil {
			if cfg.stopOnError {
				return events, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		events = append(events, evs...)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("reading log: %w", err)
	}
	return events, nil
}

// ParseFile opens path and classifies every line in it.
// Non-regular files (FIFO, device, socket) are rejected.
func ParseFile(ctx context.Context, path string, opts ...ParseOption) ([]event.Event, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	return ParseReader(ctx, f, opts...)
}

// parseOne runs one line through the configured parser and applies the
// unknown fallback, type filter, and raw line option.
func parseOne(ctx context.Context, cfg *parseConfig, line string) ([]event.Event, error) {
	result, err := cfg.parser.ParseLine(ctx, line)
	if err != nil {
		return nil, err
	}

	var evs []event.Event
	if result.Matched {
		evs = result.Events
	} else if cfg.keepUnknown {
		evs = []event.Event{{Type: event.Unknown, Text: line}}
	}

	out := make([]event.Event, 0, len(evs))
	for _, ev := range evs {
		if !cfg.filter.allow(ev.Type) {
			continue
		}
		if cfg.includeRawLine {
			ev.RawLine = line
		}
		out = append(out, ev)
	}
	return out, nil
}
