package irclog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/ruleset"
)

func TestClassifyLine(t *testing.T) {
	c := irclog.NewClassifier(nil)

	tests := []struct {
		name string
		line string
		want event.Event
	}{
		{
			name: "message",
			line: "[12:34] <bob> hello there",
			want: event.Event{
				Type:      event.Message,
				Timestamp: "12:34",
				Nick:      "bob",
				Text:      "hello there",
			},
		},
		{
			name: "decorated message with channel",
			line: "[12:34] <@alice:#chan> hi",
			want: event.Event{
				Type:       event.Message,
				Timestamp:  "12:34",
				NickPrefix: "@",
				Nick:       "alice",
				Text:       "hi",
			},
		},
		{
			name: "action",
			line: "[12:34] * bob waves",
			want: event.Event{
				Type:      event.Action,
				Timestamp: "12:34",
				Nick:      "bob",
				Text:      "waves",
			},
		},
		{
			name: "decoration without container is unknown",
			line: "[12:34] %carol does a thing",
			want: event.Event{
				Type: event.Unknown,
				Text: "[12:34] %carol does a thing",
			},
		},
		{
			name: "empty line is unknown",
			line: "",
			want: event.Event{
				Type: event.Unknown,
				Text: "",
			},
		},
		{
			name: "message without timestamp",
			line: "<bob> hi",
			want: event.Event{
				Type: event.Message,
				Nick: "bob",
				Text: "hi",
			},
		},
		{
			name: "action with voice decoration",
			line: "[01:02:03] * %carol hands out cookies",
			want: event.Event{
				Type:       event.Action,
				Timestamp:  "01:02:03",
				NickPrefix: "%",
				Nick:       "carol",
				Text:       "hands out cookies",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ClassifyLine(tt.line)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The default rules capture the channel but the default event omits it;
// it must not leak into Data either.
func TestClassifyLine_ChannelNotSurfaced(t *testing.T) {
	ev := irclog.ParseLine("[12:34] <@alice:#chan> hi")
	require.Equal(t, event.Message, ev.Type)
	assert.Nil(t, ev.Data)
}

func TestClassifyLine_ExtraCapturesInData(t *testing.T) {
	rs, err := ruleset.New(ruleset.Config{
		BuildMessage: func(sub map[string]string) string {
			return `^` + sub[ruleset.SubTimestamp] +
				`\s*<(?P<nick>\w+)!(?P<account>\w+)> (?P<text>.+)$`
		},
	})
	require.NoError(t, err)

	c := irclog.NewClassifier(rs)
	ev := c.ClassifyLine("[12:34] <bob!bobby> hello")
	require.Equal(t, event.Message, ev.Type)
	assert.Equal(t, "bob", ev.Nick)
	assert.Equal(t, map[string]string{"account": "bobby"}, ev.Data)
}

// Unmatched lines must come back byte for byte, whitespace included.
func TestClassifyLine_UnknownPreservesText(t *testing.T) {
	c := irclog.NewClassifier(nil)

	lines := []string{
		"   leading spaces, no container",
		"trailing spaces   ",
		"\ttab\tseparated\t",
		"--- Day changed Tue Jan 16 2024",
	}
	for _, line := range lines {
		ev := c.ClassifyLine(line)
		require.Equal(t, event.Unknown, ev.Type, "line %q", line)
		assert.Equal(t, line, ev.Text)
		assert.Empty(t, ev.Nick)
		assert.Empty(t, ev.Timestamp)
		assert.Empty(t, ev.NickPrefix)
	}
}

func TestClassifyLine_NickNeverEmpty(t *testing.T) {
	c := irclog.NewClassifier(nil)

	lines := []string{
		"[12:34] <bob> hello",
		"<a> b",
		"[12:34] * x y",
		"12:34:56 <@op:#chan> text",
	}
	for _, line := range lines {
		ev := c.ClassifyLine(line)
		require.NotEqual(t, event.Unknown, ev.Type, "line %q", line)
		assert.NotEmpty(t, ev.Nick, "line %q", line)
	}
}

func TestClassifyLine_Idempotent(t *testing.T) {
	c := irclog.NewClassifier(nil)

	lines := []string{
		"[12:34] <bob> hello there",
		"[12:34] * bob waves",
		"unmatched",
	}
	for _, line := range lines {
		assert.Equal(t, c.ClassifyLine(line), c.ClassifyLine(line))
	}
}

// A line matching both rules must always classify as a message.
func TestClassifyLine_MessageBeforeAction(t *testing.T) {
	// Adversarial rule set: the action rule also accepts angle-bracketed
	// containers, so "<bob> hi" matches both.
	rs, err := ruleset.New(ruleset.Config{
		BuildAction: func(sub map[string]string) string {
			return `^` + sub[ruleset.SubTimestamp] +
				`\s*<(?P<nick>` + sub[ruleset.SubNick] + `)>\s+(?P<text>.+)$`
		},
	})
	require.NoError(t, err)

	line := "[12:34] <bob> hi"
	_, ok := rs.MatchMessage(line)
	require.True(t, ok, "sanity: message rule matches")
	_, ok = rs.MatchAction(line)
	require.True(t, ok, "sanity: action rule matches too")

	c := irclog.NewClassifier(rs)
	assert.Equal(t, event.Message, c.ClassifyLine(line).Type)
}

func TestClassifierParseLine(t *testing.T) {
	c := irclog.NewClassifier(nil)
	ctx := context.Background()

	result, err := c.ParseLine(ctx, "[12:34] <bob> hello")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.Len(t, result.Events, 1)
	assert.Equal(t, event.Message, result.Events[0].Type)

	// Unknown lines report no match so parser chains can keep trying.
	result, err = c.ParseLine(ctx, "nothing recognizable")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.Events)
}

func TestParseLine_DefaultRules(t *testing.T) {
	ev := irclog.ParseLine("[12:34] <bob> hello there")
	assert.Equal(t, event.Message, ev.Type)
	assert.Equal(t, "bob", ev.Nick)
	assert.Equal(t, "hello there", ev.Text)
}
