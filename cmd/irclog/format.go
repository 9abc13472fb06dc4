package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputEvent writes an event in the specified format to the writer.
func OutputEvent(format string, ev event.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(ev, out)
	case "pretty":
		return OutputPretty(ev, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as JSON Lines format.
func OutputJSON(ev event.Event, out io.Writer) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable format.
func OutputPretty(ev event.Event, out io.Writer) error {
	ts := ev.Timestamp
	if ts == "" {
		ts = "--:--"
	}

	var err error
	switch ev.Type {
	case event.Message:
		_, err = fmt.Fprintf(out, "[%s] <%s%s> %s\n", ts, ev.NickPrefix, ev.Nick, ev.Text)
	case event.Action:
		_, err = fmt.Fprintf(out, "[%s] * %s%s %s\n", ts, ev.NickPrefix, ev.Nick, ev.Text)
	case event.Unknown:
		_, err = fmt.Fprintf(out, "[%s] ? %s\n", ts, ev.Text)
	default:
		// Custom event types with Data from user rule sets
		if len(ev.Data) > 0 {
			_, err = fmt.Fprintf(out, "[%s] %s: %s\n", ts, ev.Type, formatData(ev.Data))
		} else {
			_, err = fmt.Fprintf(out, "[%s] %s: %s\n", ts, ev.Type, ev.Text)
		}
	}

	return err
}

// formatData formats a map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or control
// characters.
func formatData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(k), quoteIfNeeded(data[k])))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control
// characters. Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			sb.WriteString(fmt.Sprintf(`\x%02x`, c))
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
