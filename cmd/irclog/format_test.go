package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

func TestOutputJSON(t *testing.T) {
	ev := event.Event{
		Type:      event.Message,
		Timestamp: "12:34",
		Nick:      "bob",
		Text:      "hello there",
	}

	var sb strings.Builder
	if err := OutputJSON(ev, &sb); err != nil {
		t.Fatalf("OutputJSON() error = %v", err)
	}

	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		t.Error("OutputJSON() output should end with newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["type"] != "msg" {
		t.Errorf("type = %v, want msg", decoded["type"])
	}
	if decoded["nick"] != "bob" {
		t.Errorf("nick = %v, want bob", decoded["nick"])
	}
	// Empty optional fields must be omitted
	if _, ok := decoded["nick_prefix"]; ok {
		t.Error("empty nick_prefix should be omitted from JSON")
	}
}

func TestOutputPretty(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
		want string
	}{
		{
			name: "message",
			ev: event.Event{
				Type:      event.Message,
				Timestamp: "12:34",
				Nick:      "bob",
				Text:      "hello",
			},
			want: "[12:34] <bob> hello\n",
		},
		{
			name: "decorated message",
			ev: event.Event{
				Type:       event.Message,
				Timestamp:  "12:34",
				NickPrefix: "@",
				Nick:       "alice",
				Text:       "hi",
			},
			want: "[12:34] <@alice> hi\n",
		},
		{
			name: "action",
			ev: event.Event{
				Type:      event.Action,
				Timestamp: "12:34",
				Nick:      "bob",
				Text:      "waves",
			},
			want: "[12:34] * bob waves\n",
		},
		{
			name: "unknown",
			ev: event.Event{
				Type: event.Unknown,
				Text: "--- Log opened",
			},
			want: "[--:--] ? --- Log opened\n",
		},
		{
			name: "message without timestamp",
			ev: event.Event{
				Type: event.Message,
				Nick: "bob",
				Text: "hi",
			},
			want: "[--:--] <bob> hi\n",
		},
		{
			name: "custom type with data",
			ev: event.Event{
				Type:      "topic",
				Timestamp: "12:34",
				Data:      map[string]string{"channel": "#chan", "topic": "new topic"},
			},
			want: "[12:34] topic: channel=#chan topic=\"new topic\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			if err := OutputPretty(tt.ev, &sb); err != nil {
				t.Fatalf("OutputPretty() error = %v", err)
			}
			if sb.String() != tt.want {
				t.Errorf("OutputPretty() = %q, want %q", sb.String(), tt.want)
			}
		})
	}
}

func TestOutputEvent_UnknownFormat(t *testing.T) {
	var sb strings.Builder
	err := OutputEvent("xml", event.Event{}, &sb)
	if err == nil {
		t.Error("OutputEvent() expected error for unknown format")
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", `""`},
		{"has space", `"has space"`},
		{"has=equals", `"has=equals"`},
		{"tab\there", `"tab\there"`},
		{"new\nline", `"new\nline"`},
		{`quo"te`, `"quo\"te"`},
	}

	for _, tt := range tests {
		if got := quoteIfNeeded(tt.in); got != tt.want {
			t.Errorf("quoteIfNeeded(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
