package irclog

import (
	"context"
	"sync"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/ruleset"
)

// Classifier assigns each log line to exactly one event.
//
// Lines are tested against the rule set's message rule first, then the
// action rule, and fall back to Unknown. Message is tried before action
// deliberately: action lines are rarer and more specifically shaped, and a
// malformed line that could match both must classify the same way across
// versions. The order is part of the contract.
//
// A Classifier is stateless after construction and safe for concurrent use.
type Classifier struct {
	rules *ruleset.RuleSet
}

// NewClassifier returns a Classifier over the given rule set.
// A nil rule set selects ruleset.Default().
func NewClassifier(rules *ruleset.RuleSet) *Classifier {
	if rules == nil {
		rules = ruleset.Default()
	}
	return &Classifier{rules: rules}
}

// Rules returns the rule set this classifier matches with.
func (c *Classifier) Rules() *ruleset.RuleSet {
	return c.rules
}

// ClassifyLine classifies one line of text into exactly one Event.
//
// Unmatched lines (including empty ones) yield an Unknown event whose Text
// is the input verbatim; no error is ever produced. The function is pure:
// classifying the same line twice yields identical events.
func (c *Classifier) ClassifyLine(line string) event.Event {
	if caps, ok := c.rules.MatchMessage(line); ok {
		return eventFromCaptures(event.Message, caps)
	}
	if caps, ok := c.rules.MatchAction(line); ok {
		return eventFromCaptures(event.Action, caps)
	}
	return event.Event{Type: event.Unknown, Text: line}
}

// ParseLine implements the Parser interface.
// Unknown classifications report Matched=false so parser chains can offer
// the line to other parsers; the aggregation layer restores the Unknown
// fallback once the whole chain has passed.
func (c *Classifier) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	ev := c.ClassifyLine(line)
	if ev.Type == event.Unknown {
		return ParseResult{Matched: false}, nil
	}
	return ParseResult{Events: []event.Event{ev}, Matched: true}, nil
}

// Ensure Classifier implements Parser.
var _ Parser = (*Classifier)(nil)

// standardGroups are the capture groups bound to fixed Event fields.
// GroupChan is listed even though the default Event shape does not surface
// it: the default rules capture the channel for custom rule sets to use,
// without widening the default event.
var standardGroups = map[string]struct{}{
	ruleset.GroupTimestamp: {},
	ruleset.GroupPrefix:    {},
	ruleset.GroupNick:      {},
	ruleset.GroupChan:      {},
	ruleset.GroupText:      {},
}

// eventFromCaptures binds named captures to event fields. Any non-standard
// named group a custom rule set defines lands in Event.Data.
func eventFromCaptures(t event.Type, caps ruleset.Captures) event.Event {
	ev := event.Event{
		Type:       t,
		Timestamp:  caps[ruleset.GroupTimestamp],
		NickPrefix: caps[ruleset.GroupPrefix],
		Nick:       caps[ruleset.GroupNick],
		Text:       caps[ruleset.GroupText],
	}

	var data map[string]string
	for name, v := range caps {
		if _, std := standardGroups[name]; std || v == "" {
			continue
		}
		if data == nil {
			data = make(map[string]string)
		}
		data[name] = v
	}
	ev.Data = data

	return ev
}

// defaultClassifier is the shared classifier behind the package-level
// ParseLine. Built once, reused for every call.
var defaultClassifier = sync.OnceValue(func() *Classifier {
	return NewClassifier(nil)
})

// ParseLine classifies a single log line with the default rule set.
//
// This is the throwaway-instance entry point; construct a Classifier
// explicitly to supply custom rules.
//
// Example:
//
//	ev := irclog.ParseLine("[12:34] <bob> hello there")
//	// ev.Type == event.Message, ev.Nick == "bob"
func ParseLine(line string) event.Event {
	return defaultClassifier().ClassifyLine(line)
}
