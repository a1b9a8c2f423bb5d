package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/store"
	"servicegeek/internal/platform/store/schema"
)

func dbCmd(cfg config.Conf) *cobra.Command {
	cmd := &cobra.Command{Use: "db", Short: "Database schema tasks"}
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema, and the clickhouse audit table when enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pgCfg := cfg.Prefix("SERVICE_PGSQL_")
			chCfg := cfg.Prefix("SERVICE_CLICKHOUSE_")
			ctx := cmd.Context()

			st, err := store.Open(ctx, store.Config{
				AppName: "servicegeek-ctl",
				PG: store.PGConfig{
					Enabled:  true,
					URL:      pgCfg.MustString("DBURL"),
					MaxConns: 2,
				},
				CH: store.CHConfig{
					Enabled:    chCfg.MayBool("ENABLED", false),
					URL:        chCfg.MayString("DBURL", ""),
					ClientName: "ctl",
					ClientTag:  chCfg.MayString("CLIENT_TAG", ""),
				},
			}, store.WithLogger(*logger.Named("ctl")))
			if err != nil {
				return err
			}
			defer func() { _ = st.Close(ctx) }()

			if err := schema.ApplyPostgres(ctx, st.PG); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "postgres schema applied")
			if st.CH != nil {
				if err := schema.ApplyClickHouse(ctx, st.CH); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "clickhouse schema applied")
			}
			return nil
		},
	})
	return cmd
}
