package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexjj/sota-us-counties/internal/browse"
	"github.com/alexjj/sota-us-counties/internal/export"
)

var (
	joinFormat    string
	joinOutput    string
	joinSearch    string
	joinCounty    string
	joinMinPoints int
	joinNoCache   bool
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Run the summit/county spatial join and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("join"); err != nil {
			return err
		}
		ctx := cmd.Context()

		pipeline, cleanup, err := newPipeline(ctx, cfg, !joinNoCache)
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := pipeline.Rows(ctx)
		if err != nil {
			return err
		}

		filtered := browse.Apply(rows, browse.Filter{
			Search:    joinSearch,
			County:    joinCounty,
			MinPoints: joinMinPoints,
		})
		zap.L().Info("filtered summit rows",
			zap.Int("total", len(rows)),
			zap.Int("matching", len(filtered)),
		)

		var out io.Writer = os.Stdout
		if joinOutput != "" {
			f, err := os.Create(joinOutput)
			if err != nil {
				return eris.Wrapf(err, "create output %s", joinOutput)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		switch joinFormat {
		case "csv":
			return export.WriteCSV(out, filtered)
		case "json":
			return export.WriteJSON(out, filtered)
		case "xlsx":
			if joinOutput == "" {
				return eris.New("xlsx output requires --output")
			}
			return export.WriteXLSX(out, filtered)
		default:
			return eris.Errorf("unknown format %q (csv, json, xlsx)", joinFormat)
		}
	},
}

func init() {
	joinCmd.Flags().StringVar(&joinFormat, "format", "csv", "output format: csv, json, xlsx")
	joinCmd.Flags().StringVarP(&joinOutput, "output", "o", "", "output file (default stdout)")
	joinCmd.Flags().StringVar(&joinSearch, "search", "", "filter by summit name or code substring")
	joinCmd.Flags().StringVar(&joinCounty, "county", "", "filter by county label substring")
	joinCmd.Flags().IntVar(&joinMinPoints, "min-points", 0, "minimum SOTA points (inclusive)")
	joinCmd.Flags().BoolVar(&joinNoCache, "no-cache", false, "recompute even if a snapshot exists")
	rootCmd.AddCommand(joinCmd)
}
