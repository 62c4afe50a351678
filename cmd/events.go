/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/mq"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

var eventTypes []string

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail job board events from the broker",
	Long: `Subscribes to the configured broker (MQ_BACKEND) and logs every job
posting, application and status change. Usage:

	careerconnect events --type application.status_changed
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if broker == nil {
			return errors.New("MQ_BACKEND is not configured")
		}
		defer broker.Close()

		wanted := make(map[types.EventType]bool, len(eventTypes))
		for _, t := range eventTypes {
			wanted[types.EventType(t)] = true
		}

		slog.Info("subscribed", "channel", broker.Channel())
		err = broker.SubscribeEvents(ctx, func(ctx context.Context, event types.Event) error {
			if len(wanted) > 0 && !wanted[event.Type] {
				return nil
			}
			slog.Info("event",
				"id", event.ID,
				"type", event.Type,
				"actor", event.ActorID,
				"job", event.JobID,
				"company", event.CompanyID,
				"application", event.ApplicationID,
				"status", event.Status,
				"occurred_at", event.OccurredAt,
			)
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().StringSliceVar(&eventTypes, "type", nil, "only log these event types")
}
