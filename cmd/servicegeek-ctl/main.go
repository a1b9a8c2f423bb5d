// Command servicegeek-ctl bundles operator tasks: catalog packing, schema, dispatch and tokens
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(config.New()).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(cfg config.Conf) *cobra.Command {
	root := &cobra.Command{
		Use:           "servicegeek-ctl",
		Short:         "Operator tools for the servicegeek api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opt := logger.FromEnv()
			opt.Service = "servicegeek-ctl"
			opt.Writer = os.Stderr
			if v, _ := cmd.Flags().GetBool("verbose"); !v {
				opt.Level = "warn"
			}
			logger.Init(opt)
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		templatesCmd(),
		dispatchCmd(cfg),
		dbCmd(cfg),
		tokenCmd(cfg),
	)
	return root
}
