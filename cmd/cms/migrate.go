package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create collections, tables and indexes for the declared schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conf, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer a.close(conf)

			s := conf.Schema()
			if err := conf.DB.Migrate(ctx, s); err != nil {
				return err
			}
			a.log.Info("migrations applied",
				zap.String("adapter", conf.DB.Name()),
				zap.Int("collections", len(s.Collections)),
				zap.Int("globals", len(s.Globals)))
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d collections, %d globals (%s)\n",
				len(s.Collections), len(s.Globals), conf.DB.Name())
			return nil
		},
	}
}
