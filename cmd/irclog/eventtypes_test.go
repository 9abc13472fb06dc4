package main

import (
	"testing"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

func TestParseEventTypes(t *testing.T) {
	types, err := parseEventTypes([]string{"msg", "action"})
	if err != nil {
		t.Fatalf("parseEventTypes() error = %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("parseEventTypes() returned %d types, want 2", len(types))
	}
	if types[0] != event.Message || types[1] != event.Action {
		t.Errorf("parseEventTypes() = %v, want [msg action]", types)
	}
}

func TestParseEventTypes_Empty(t *testing.T) {
	types, err := parseEventTypes(nil)
	if err != nil {
		t.Fatalf("parseEventTypes(nil) error = %v", err)
	}
	if types != nil {
		t.Errorf("parseEventTypes(nil) = %v, want nil", types)
	}
}

func TestParseEventTypes_CaseInsensitive(t *testing.T) {
	types, err := parseEventTypes([]string{"MSG"})
	if err != nil {
		t.Fatalf("parseEventTypes() error = %v", err)
	}
	if len(types) != 1 || types[0] != event.Message {
		t.Errorf("parseEventTypes() = %v, want [msg]", types)
	}
}

func TestParseEventTypes_Invalid(t *testing.T) {
	invalid := []string{"invalid", "", "message", "emote"}
	for _, name := range invalid {
		if _, err := parseEventTypes([]string{name}); err == nil {
			t.Errorf("parseEventTypes(%q) expected error", name)
		}
	}
}
