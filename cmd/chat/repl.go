package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"jarvina-be/internal/constant"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	replyColor  = color.New(color.FgGreen)
	sourceColor = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
)

func runREPL(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)
	color.Cyan("Connected to %s. Type \"exit\" to quit.", serverURL)
	return chatLoop(cmd.Context(), client, os.Stdin, cmd.OutOrStdout())
}

// chatLoop sends each non-empty input line as a prompt until EOF or "exit".
// Server errors are printed and the loop continues.
func chatLoop(ctx context.Context, client *apiClient, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		promptColor.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		res, err := client.Chat(ctx, line)
		if err != nil {
			errorColor.Fprintf(out, "error: %v\n", err)
			continue
		}

		replyColor.Fprintf(out, "jarvina> %s", res.Response)
		if res.Source != constant.ChatSourceModel {
			sourceColor.Fprintf(out, " [%s]", res.Source)
		}
		fmt.Fprintln(out)
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := newAPIClient(serverURL).History(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No conversation history.")
		return nil
	}
	for _, e := range entries {
		label := promptColor
		if e.Role != constant.ChatMessageRoleUser {
			label = replyColor
		}
		sourceColor.Fprintf(out, "%s ", e.Timestamp.Format("2006-01-02 15:04:05"))
		label.Fprintf(out, "%-9s", e.Role)
		fmt.Fprintln(out, e.Content)
	}
	return nil
}

func runNotes(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	notes, err := newAPIClient(serverURL).Notes(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(notes) == 0 {
		fmt.Fprintln(out, "No saved notes.")
		return nil
	}
	for i, n := range notes {
		sourceColor.Fprintf(out, "%2d. %s  ", i+1, n.Timestamp.Format("2006-01-02 15:04"))
		fmt.Fprintln(out, n.Note)
	}
	return nil
}

func runInstructions(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		res, err := client.UpdateInstructions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		color.Green("Instructions updated.")
		fmt.Fprintln(out, res.Instructions)
		return nil
	}

	res, err := client.Instructions(cmd.Context())
	if err != nil {
		return err
	}
	if res.Instructions == "" {
		fmt.Fprintln(out, "No custom instructions set.")
		return nil
	}
	fmt.Fprintln(out, res.Instructions)
	return nil
}
