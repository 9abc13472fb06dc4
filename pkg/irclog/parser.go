package irclog

import (
	"context"
	"errors"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

// ParseResult represents the result of parsing a log line.
type ParseResult struct {
	// Events contains the parsed events.
	Events []event.Event

	// Matched indicates whether the parser recognized the input.
	// Unrecognized lines are not errors: the aggregation layer turns them
	// into Unknown events so no input line is ever lost.
	Matched bool
}

// Parser is the interface for log line parsers.
// Implementations include Classifier (rule-set driven classification) and
// any caller-supplied parser for dialects regex rules cannot express.
type Parser interface {
	// ParseLine parses a single log line.
	// Returns ParseResult with Matched=true if the line was recognized.
	// Returns error only for unexpected failures (not for unrecognized lines).
	ParseLine(ctx context.Context, line string) (ParseResult, error)
}

// ParserFunc is an adapter to allow ordinary functions to be used as Parsers.
type ParserFunc func(ctx context.Context, line string) (ParseResult, error)

// ParseLine implements the Parser interface.
func (f ParserFunc) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	return f(ctx, line)
}

// ChainMode specifies how ParserChain executes parsers.
type ChainMode int

const (
	// ChainAll executes all parsers and combines results (default).
	ChainAll ChainMode = iota

	// ChainFirst stops at the first parser that matches. Use this to layer
	// dialect-specific rule sets with a fixed priority order.
	ChainFirst

	// ChainContinueOnError skips parsers that return errors and continues.
	// Errors are collected and returned together at the end.
	ChainContinueOnError
)

// ParserChain combines multiple parsers.
type ParserChain struct {
	Mode    ChainMode
	Parsers []Parser
}

// ParseLine implements the Parser interface.
//
// Context Cancellation:
// If the context is cancelled during execution, ParseLine returns immediately
// with partial results (events collected before cancellation) and the context
// error. Callers should typically discard partial results when err != nil.
func (c *ParserChain) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	var allEvents []event.Event
	var errs []error
	anyMatched := false

	for _, p := range c.Parsers {
		if err := ctx.Err(); err != nil {
			return ParseResult{Events: allEvents, Matched: anyMatched}, err
		}

		// Skip nil parsers
		if p == nil {
			continue
		}

		result, err := p.ParseLine(ctx, line)
		if err != nil {
			if c.Mode == ChainContinueOnError {
				errs = append(errs, err)
				continue
			}
			return ParseResult{}, err
		}
		if result.Matched {
			anyMatched = true
			allEvents = append(allEvents, result.Events...)
			if c.Mode == ChainFirst {
				return ParseResult{Events: allEvents, Matched: true}, nil
			}
		}
	}

	if len(errs) > 0 {
		return ParseResult{Events: allEvents, Matched: anyMatched}, errors.Join(errs...)
	}

	return ParseResult{Events: allEvents, Matched: anyMatched}, nil
}
