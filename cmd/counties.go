package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexjj/sota-us-counties/internal/browse"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List the county values present in the joined data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("join"); err != nil {
			return err
		}
		ctx := cmd.Context()

		pipeline, cleanup, err := newPipeline(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := pipeline.Rows(ctx)
		if err != nil {
			return err
		}

		for _, label := range browse.Vocabulary(rows) {
			fmt.Fprintln(cmd.OutOrStdout(), label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}
