package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexjj/sota-us-counties/internal/fetcher"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the SOTA summits CSV to the configured data path",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		f := fetcher.New(fetcher.Options{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
		})

		zap.L().Info("downloading summits CSV",
			zap.String("url", cfg.Fetch.SummitsURL),
			zap.String("dest", cfg.Data.SummitsPath),
		)

		n, err := f.DownloadToFile(cmd.Context(), cfg.Fetch.SummitsURL, cfg.Data.SummitsPath)
		if err != nil {
			return err
		}

		zap.L().Info("summits CSV downloaded", zap.Int64("bytes", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
