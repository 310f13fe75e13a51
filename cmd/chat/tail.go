package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"jarvina-be/pkg/events"
	"jarvina-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func runTail(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub, err := nats.NewSubscriber(natsURL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer sub.Close()

	color.Cyan("Listening for events on %s.> (Ctrl+C to stop)", nats.SubjectPrefix)
	out := cmd.OutOrStdout()
	return sub.Subscribe(ctx, nats.SubjectPrefix+".>", "", func(ctx context.Context, event events.Event) error {
		sourceColor.Fprintf(out, "%s ", event.Timestamp().Format(time.RFC3339))
		color.New(color.FgYellow).Fprintf(out, "%-16s", event.EventType())
		fmt.Fprintln(out, event.Payload())
		return nil
	})
}
