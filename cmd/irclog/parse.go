package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/ruleset"
)

var (
	// parse flags
	parseFormat  string
	parseRules   string
	parseTypes   []string
	parseRaw     bool
	parseNoUnk   bool
	parseStopErr bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse IRC log files and output events",
	Long: `Parse IRC log files (or stdin if no files are given) and output one
event per line.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Parse a log file
  irclog parse '#haskell.log'

  # Parse stdin
  cat channel.log | irclog parse

  # Only messages and actions, human-readable
  irclog parse --types msg,action --format pretty channel.log

  # Use custom rules for a different client dialect
  irclog parse --rules irssi.yaml channel.log

  # Pipe to jq for filtering
  irclog parse channel.log | jq 'select(.nick == "bob")'`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	parseCmd.Flags().StringVarP(&parseRules, "rules", "r", "",
		"YAML rule file overriding the default patterns")
	parseCmd.Flags().StringSliceVarP(&parseTypes, "types", "t", nil,
		"Event types to show (comma-separated: msg,action,unknown)")
	parseCmd.Flags().BoolVar(&parseRaw, "raw", false,
		"Include raw log lines in output")
	parseCmd.Flags().BoolVar(&parseNoUnk, "no-unknown", false,
		"Drop lines that match no rule instead of emitting unknown events")
	parseCmd.Flags().BoolVar(&parseStopErr, "stop-on-error", false,
		"Stop at the first parse error instead of skipping the line")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if !ValidFormats[parseFormat] {
		return fmt.Errorf("unknown format: %s", parseFormat)
	}

	rules, err := buildRules(parseRules)
	if err != nil {
		return err
	}

	types, err := parseEventTypes(parseTypes)
	if err != nil {
		return err
	}

	opts := []irclog.ParseOption{
		irclog.WithIncludeRawLine(parseRaw),
		irclog.WithKeepUnknown(!parseNoUnk),
		irclog.WithStopOnError(parseStopErr),
	}
	if rules != nil {
		opts = append(opts, irclog.WithRuleSet(rules))
	}
	if len(types) > 0 {
		opts = append(opts, irclog.WithIncludeTypes(types...))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 {
		events, err := irclog.ParseReader(ctx, os.Stdin, opts...)
		if err != nil {
			return err
		}
		return outputEvents(events)
	}

	for _, path := range args {
		events, err := irclog.ParseFile(ctx, path, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := outputEvents(events); err != nil {
			return err
		}
	}
	return nil
}

func outputEvents(events []event.Event) error {
	for _, ev := range events {
		if err := OutputEvent(parseFormat, ev, os.Stdout); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}

// buildRules builds a RuleSet from a rule file path.
// Returns nil if no path is given (use the default rules).
func buildRules(path string) (*ruleset.RuleSet, error) {
	if path == "" {
		return nil, nil
	}
	rules, err := ruleset.NewFromFile(path)
	if err != nil {
		// Error from the ruleset package is already sanitized (no path)
		return nil, fmt.Errorf("rule file: %w", err)
	}
	return rules, nil
}
