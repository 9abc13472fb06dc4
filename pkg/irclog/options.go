package irclog

import (
	"fmt"
	"log/slog"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/ruleset"
)

// compiledFilter holds pre-built include/exclude sets for event types.
type compiledFilter struct {
	include map[event.Type]struct{}
	exclude map[event.Type]struct{}
}

// allow reports whether events of type t pass the filter.
// Exclude takes precedence over include.
func (f *compiledFilter) allow(t event.Type) bool {
	if f == nil {
		return true
	}
	if f.exclude != nil {
		if _, drop := f.exclude[t]; drop {
			return false
		}
	}
	if f.include != nil {
		_, keep := f.include[t]
		return keep
	}
	return true
}

// ParseOption configures ParseLines/ParseReader/ParseFile behavior.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for parsing.
type parseConfig struct {
	parser         Parser
	filter         *compiledFilter
	includeRawLine bool
	keepUnknown    bool
	stopOnError    bool
	maxLineBytes   int
}

// DefaultMaxLineBytes is the default per-line size limit when scanning
// readers and files. Lines longer than this fail the scan rather than
// exhausting memory.
const DefaultMaxLineBytes = 512 * 1024

// defaultParseConfig returns a parseConfig with sensible defaults.
// Unknown lines are kept: batch parsing promises one event per input line.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		parser:       defaultClassifier(),
		keepUnknown:  true,
		maxLineBytes: DefaultMaxLineBytes,
	}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithRuleSet parses with a classifier over the given rule set.
// A nil rule set has no effect (the default rules remain active).
func WithRuleSet(rules *ruleset.RuleSet) ParseOption {
	return func(c *parseConfig) {
		if rules != nil {
			c.parser = NewClassifier(rules)
		}
	}
}

// WithParser sets a custom parser for log lines.
// If p is nil, this option has no effect (the default classifier remains
// active).
func WithParser(p Parser) ParseOption {
	return func(c *parseConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParsers combines multiple parsers using ChainFirst mode: each line is
// offered to the parsers in order and the first match wins.
func WithParsers(parsers ...Parser) ParseOption {
	return func(c *parseConfig) {
		if len(parsers) > 0 {
			c.parser = &ParserChain{
				Mode:    ChainFirst,
				Parsers: parsers,
			}
		}
	}
}

// WithIncludeTypes filters events to only include the specified types.
// If called multiple times, only the last call takes effect.
func WithIncludeTypes(types ...event.Type) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = make(map[event.Type]struct{}, len(types))
		for _, t := range types {
			c.filter.include[t] = struct{}{}
		}
	}
}

// WithExcludeTypes filters out events of the specified types.
// Exclude takes precedence over include.
func WithExcludeTypes(types ...event.Type) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = make(map[event.Type]struct{}, len(types))
		for _, t := range types {
			c.filter.exclude[t] = struct{}{}
		}
	}
}

// WithIncludeRawLine includes the original log line in Event.RawLine.
// Default: false.
func WithIncludeRawLine(include bool) ParseOption {
	return func(c *parseConfig) {
		c.includeRawLine = include
	}
}

// WithKeepUnknown controls whether unrecognized lines produce Unknown
// events. Default: true (every input line yields exactly one event).
// Set false to drop lines no parser recognized.
func WithKeepUnknown(keep bool) ParseOption {
	return func(c *parseConfig) {
		c.keepUnknown = keep
	}
}

// WithStopOnError stops parsing on the first parser error instead of
// skipping the offending line. Default: false.
func WithStopOnError(stop bool) ParseOption {
	return func(c *parseConfig) {
		c.stopOnError = stop
	}
}

// WithMaxLineBytes sets the per-line size limit for ParseReader and
// ParseFile. 0 uses DefaultMaxLineBytes.
func WithMaxLineBytes(max int) ParseOption {
	return func(c *parseConfig) {
		c.maxLineBytes = max
	}
}

// WatchOption configures Watcher behavior using the functional options
// pattern.
type WatchOption func(*watchConfig)

// watchConfig holds internal configuration for the watcher.
type watchConfig struct {
	logDir         string
	logFile        string
	fromStart      bool
	parser         Parser
	filter         *compiledFilter
	includeRawLine bool
	keepUnknown    bool
	logger         *slog.Logger
}

// defaultWatchConfig returns a watchConfig with sensible defaults.
// Unknown lines are dropped while watching: live IRC logs are dominated by
// joins, parts, and client chatter the rule set does not model.
func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		parser: defaultClassifier(),
	}
}

// applyWatchOptions applies functional options to a watchConfig.
func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *watchConfig) validate() error {
	if c.logDir != "" && c.logFile != "" {
		return fmt.Errorf("log directory and log file options are mutually exclusive")
	}
	return nil
}

// WithLogDir sets the IRC log directory. The most recently modified log
// file in the directory is watched. If neither this nor WithLogFile is set,
// the directory is auto-detected (see internal client defaults and the
// IRCLOG_DIR environment variable).
func WithLogDir(dir string) WatchOption {
	return func(c *watchConfig) {
		c.logDir = dir
	}
}

// WithLogFile watches a specific log file instead of auto-detecting one.
func WithLogFile(path string) WatchOption {
	return func(c *watchConfig) {
		c.logFile = path
	}
}

// WithFromStart reads the existing file content before following new lines.
// Default: false (tail -f behavior, only new lines).
func WithFromStart(fromStart bool) WatchOption {
	return func(c *watchConfig) {
		c.fromStart = fromStart
	}
}

// WithWatchRuleSet watches with a classifier over the given rule set.
// A nil rule set has no effect.
func WithWatchRuleSet(rules *ruleset.RuleSet) WatchOption {
	return func(c *watchConfig) {
		if rules != nil {
			c.parser = NewClassifier(rules)
		}
	}
}

// WithWatchParser sets a custom parser for watched lines.
// If p is nil, this option has no effect.
func WithWatchParser(p Parser) WatchOption {
	return func(c *watchConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithWatchIncludeTypes filters watched events to the specified types.
func WithWatchIncludeTypes(types ...event.Type) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = make(map[event.Type]struct{}, len(types))
		for _, t := range types {
			c.filter.include[t] = struct{}{}
		}
	}
}

// WithWatchExcludeTypes filters out watched events of the specified types.
// Exclude takes precedence over include.
func WithWatchExcludeTypes(types ...event.Type) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = make(map[event.Type]struct{}, len(types))
		for _, t := range types {
			c.filter.exclude[t] = struct{}{}
		}
	}
}

// WithWatchIncludeRawLine includes the original log line in Event.RawLine.
func WithWatchIncludeRawLine(include bool) WatchOption {
	return func(c *watchConfig) {
		c.includeRawLine = include
	}
}

// WithWatchKeepUnknown emits Unknown events for unrecognized lines while
// watching. Default: false.
func WithWatchKeepUnknown(keep bool) WatchOption {
	return func(c *watchConfig) {
		c.keepUnknown = keep
	}
}

// WithLogger sets a custom logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}
