package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog"
)

var (
	// tail flags
	tailLogDir    string
	tailLogFile   string
	tailFormat    string
	tailRules     string
	tailTypes     []string
	tailRaw       bool
	tailUnknown   bool
	tailFromStart bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow an IRC log and output events live",
	Long: `Follow an IRC log file in real-time and output parsed events.

With no flags, the newest log file in an auto-detected log directory is
followed (set IRCLOG_DIR or use --log-dir/--log-file to pick one).

Examples:
  # Follow the newest log in ~/.irssi/logs
  irclog tail --log-dir ~/.irssi/logs

  # Follow a specific file, human-readable
  irclog tail --log-file '#haskell.log' --format pretty

  # Only actions
  irclog tail --types action

  # Pipe to jq
  irclog tail | jq 'select(.type == "msg")'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailLogDir, "log-dir", "d", "",
		"IRC log directory (auto-detected if not specified)")
	tailCmd.Flags().StringVar(&tailLogFile, "log-file", "",
		"Specific log file to follow")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().StringVarP(&tailRules, "rules", "r", "",
		"YAML rule file overriding the default patterns")
	tailCmd.Flags().StringSliceVarP(&tailTypes, "types", "t", nil,
		"Event types to show (comma-separated: msg,action,unknown)")
	tailCmd.Flags().BoolVar(&tailRaw, "raw", false,
		"Include raw log lines in output")
	tailCmd.Flags().BoolVar(&tailUnknown, "unknown", false,
		"Emit unknown events for unrecognized lines")
	tailCmd.Flags().BoolVar(&tailFromStart, "from-start", false,
		"Read existing file content before following new lines")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	if !ValidFormats[tailFormat] {
		return fmt.Errorf("unknown format: %s", tailFormat)
	}

	rules, err := buildRules(tailRules)
	if err != nil {
		return err
	}

	types, err := parseEventTypes(tailTypes)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []irclog.WatchOption{
		irclog.WithLogDir(tailLogDir),
		irclog.WithFromStart(tailFromStart),
		irclog.WithWatchIncludeRawLine(tailRaw),
		irclog.WithWatchKeepUnknown(tailUnknown),
	}
	if tailLogFile != "" {
		// Mutually exclusive with the directory option; only pass one.
		opts[0] = irclog.WithLogFile(tailLogFile)
	}
	if rules != nil {
		opts = append(opts, irclog.WithWatchRuleSet(rules))
	}
	if len(types) > 0 {
		opts = append(opts, irclog.WithWatchIncludeTypes(types...))
	}

	watcher, err := irclog.NewWatcher(opts...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	events, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := OutputEvent(tailFormat, ev, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}

		case <-ctx.Done():
			return nil
		}
	}
}
