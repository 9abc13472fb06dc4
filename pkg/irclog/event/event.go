// Package event defines the core Event type for IRC log parsing.
//
// This package is separated from the main irclog package to avoid import cycles
// between pkg/irclog and pkg/irclog/ruleset.
package event

import (
	"sort"
	"strings"
)

// Type represents the type of IRC log event.
type Type string

const (
	// Message indicates a regular channel/private message line ("<nick> text").
	Message Type = "msg"

	// Action indicates an emote line produced by /ME ("* nick waves").
	Action Type = "action"

	// Unknown indicates a line that matched no known shape.
	// Unknown events carry the original line verbatim in Text.
	Unknown Type = "unknown"
)

// allTypes is the canonical list of all event types.
// Add new event types here when extending the parser.
var allTypes = []Type{Message, Action, Unknown}

// TypeNames returns a sorted list of all valid event type names.
// This is the single source of truth for event type enumeration.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

// typeByName maps lowercase string names to Type for efficient lookup.
// Built once from allTypes at package initialization.
var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
// Returns the type and true if found, zero value and false otherwise.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}

// Event represents one classified record extracted from a single log line.
//
// Events are immutable by convention: the parser allocates a fresh Event per
// input line and never touches it again.
type Event struct {
	// Type is the event type.
	Type Type `json:"type"`

	// Timestamp is the raw matched timestamp text without brackets
	// (e.g., "12:34" or "12:34:56"). Empty if the line carried none.
	// Log files rarely record the date, so no time.Time conversion is
	// attempted here; interpretation is left to the caller.
	Timestamp string `json:"timestamp,omitempty"`

	// NickPrefix is the single-character nick decoration ("@" or "%"),
	// empty if the nick was undecorated.
	NickPrefix string `json:"nick_prefix,omitempty"`

	// Nick is the speaker's handle. Empty for Unknown events.
	Nick string `json:"nick,omitempty"`

	// Text is the message or action body. For Unknown events it is the
	// entire original line, unmodified.
	Text string `json:"text"`

	// Data holds extra named captures surfaced by custom rule sets
	// (e.g., a channel or account capture). Nil for the default rules.
	Data map[string]string `json:"data,omitempty"`

	// RawLine is the original log line (only included if requested).
	RawLine string `json:"raw_line,omitempty"`
}
