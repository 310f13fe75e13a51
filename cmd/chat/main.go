package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	natsURL   string
)

var rootCmd = &cobra.Command{
	Use:   "jarvina",
	Short: "Terminal client for the Jarvina assistant",
	Long: `Chat with a running Jarvina server from the terminal.

Run without a subcommand to start an interactive session. Type "exit" or
press Ctrl+D to leave.`,
	RunE: runREPL,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent conversation entries",
	RunE:  runHistory,
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Show saved notes",
	RunE:  runNotes,
}

var instructionsCmd = &cobra.Command{
	Use:   "instructions [text]",
	Short: "Show the custom instructions, or replace them when text is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInstructions,
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Stream assistant events published to NATS",
	RunE:  runTail,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("JARVINA_SERVER", "http://localhost:3000/api"), "base URL of the Jarvina API")
	tailCmd.Flags().StringVar(&natsURL, "nats", envOr("NATS_URL", "nats://localhost:4222"), "NATS server URL")
	historyCmd.Flags().Int("limit", 20, "number of entries to show")
	notesCmd.Flags().Int("limit", 20, "number of notes to show")

	rootCmd.AddCommand(historyCmd, notesCmd, instructionsCmd, tailCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
