package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"servicegeek/internal/modkit"
	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
	dmod "servicegeek/internal/services/dispatch/module"
	"servicegeek/internal/services/dispatch/service"
)

func dispatchCmd(cfg config.Conf) *cobra.Command {
	cmd := &cobra.Command{Use: "dispatch", Short: "Inspect windows and push classification jobs"}
	cmd.AddCommand(dispatchSlotCmd(cfg), dispatchRequeueCmd(cfg))
	return cmd
}

func dispatchSlotCmd(cfg config.Conf) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Print the next eligible dispatch slot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = t
			}
			opts := dmod.FromConfig(cfg)
			slot := service.NextSlot(now, opts.Windows, opts.Location())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (in %s)\n", slot.Format(time.RFC3339), slot.Sub(now).Round(time.Second))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference time (RFC3339), defaults to now")
	return cmd
}

func dispatchRequeueCmd(cfg config.Conf) *cobra.Command {
	return &cobra.Command{
		Use:   "requeue <inference-id>",
		Short: "Republish a classification job with the retry delay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid inference id %q", args[0])
			}
			deps := modkit.Deps{Log: *logger.Named("ctl"), Cfg: cfg}
			d := dmod.New(deps, dmod.FromConfig(cfg), nil).Ports().(dmod.Ports).Dispatcher
			if err := d.Requeue(cmd.Context(), id); err != nil {
				return err
			}
			// a refused publish is logged by the dispatcher, not returned
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "requeue submitted for inference %d; broker outcome is in the dispatch log\n", id)
			return nil
		},
	}
}
