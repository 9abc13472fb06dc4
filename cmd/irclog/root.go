package main

import (
	"github.com/spf13/cobra"
)

// verbose enables warning output on stderr.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "irclog",
	Short: "Parse IRC logs into structured events",
	Long: `irclog parses IRC log files into structured events.

Log lines are classified as messages, actions, or unknown lines using a
replaceable rule set, so logs from different IRC clients can be handled by
overriding individual patterns in a YAML rule file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Print warnings to stderr")
}
