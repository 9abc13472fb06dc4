// Package irclog parses IRC log files into structured events.
//
// IRC clients disagree about how a logged line looks: timestamps may or may
// not be bracketed, nicks carry operator or voice decorations, and actions
// are marked differently from client to client. This package classifies each
// line of a log against a replaceable rule set and yields one event per
// line: a message, an action, or an unknown event carrying the raw text.
//
// # Basic Usage
//
// To classify a single line with the default rules:
//
//	ev := irclog.ParseLine("[12:34] <bob> hello there")
//	fmt.Println(ev.Type, ev.Nick, ev.Text)
//	// msg bob hello there
//
// To parse a whole file:
//
//	events, err := irclog.ParseFile(ctx, "channel.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ev := range events {
//	    if ev.Type == event.Message {
//	        fmt.Printf("<%s> %s\n", ev.Nick, ev.Text)
//	    }
//	}
//
// # Custom Rule Sets
//
// The rule set is the sole configuration surface. Override individual named
// sub-patterns, or the whole composition, via the [ruleset] package:
//
//	rules, err := ruleset.New(ruleset.Config{
//	    Subpatterns: map[string]string{
//	        ruleset.SubNick: `[-\w]+`,
//	    },
//	})
//	c := irclog.NewClassifier(rules)
//
// Rule sets can also be loaded from YAML files; see [ruleset.Load].
//
// # Custom Parsers
//
// Implement the [Parser] interface for log dialects regular expressions
// cannot express, and combine parsers with [ParserChain]:
//
//	chain := &irclog.ParserChain{
//	    Mode:    irclog.ChainFirst,
//	    Parsers: []irclog.Parser{irclog.NewClassifier(nil), customParser},
//	}
//
// # Watching Logs Live
//
// To follow a growing log file:
//
//	events, errs, err := irclog.Watch(ctx, irclog.WithLogDir("~/irclogs"))
//
// See [Watcher] for the explicit-lifecycle variant.
package irclog
